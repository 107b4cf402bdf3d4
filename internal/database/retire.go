// server/internal/database/retire.go
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cmms-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// OpenOrdersError aborts a retirement that would cascade-delete open work
// orders. The handler checks before calling, but the count runs again
// inside the retirement writes so an order opened in between aborts the
// sequence instead of being deleted silently.
type OpenOrdersError struct {
	Count int64
}

func (e *OpenOrdersError) Error() string {
	return fmt.Sprintf("asset has %d open work orders", e.Count)
}

// RetireAsset performs the retirement sequence: insert the audit record,
// cascade-delete the asset's work orders, delete the asset. The caller is
// responsible for the open-order gate and for building the audit snapshot.
//
// On a replica-set deployment the three writes run in one transaction. On a
// standalone mongod, where transactions are unavailable, it falls back to
// the ordered sequence with the audit record written first: a crash mid-way
// leaves a detectable orphan audit record instead of an unexplained deletion.
// Detecting such orphans would be a reconciliation job, not built here.
func RetireAsset(ctx context.Context, client *mongo.Client, db *mongo.Database, record models.AuditRecord, assetID primitive.ObjectID) (primitive.ObjectID, error) {
	session, err := client.StartSession()
	if err != nil {
		return retireWrites(ctx, db, record, assetID)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return retireWrites(sessCtx, db, record, assetID)
	})
	if err != nil {
		if transactionsUnsupported(err) {
			return retireWrites(ctx, db, record, assetID)
		}
		return primitive.NilObjectID, err
	}

	return result.(primitive.ObjectID), nil
}

func retireWrites(ctx context.Context, db *mongo.Database, record models.AuditRecord, assetID primitive.ObjectID) (primitive.ObjectID, error) {
	openCount, err := db.Collection("ordenes").CountDocuments(ctx,
		bson.M{"activo_id": assetID, "estado": models.StatusOpen})
	if err != nil {
		return primitive.NilObjectID, err
	}
	if openCount > 0 {
		return primitive.NilObjectID, &OpenOrdersError{Count: openCount}
	}

	insertResult, err := db.Collection("auditoria_eliminados").InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}

	if _, err := db.Collection("ordenes").DeleteMany(ctx, bson.M{"activo_id": assetID}); err != nil {
		return primitive.NilObjectID, err
	}

	if _, err := db.Collection("activos").DeleteOne(ctx, bson.M{"_id": assetID}); err != nil {
		return primitive.NilObjectID, err
	}

	auditID, _ := insertResult.InsertedID.(primitive.ObjectID)
	return auditID, nil
}

// transactionsUnsupported recognizes the errors a standalone mongod answers
// when a session tries to start a transaction.
func transactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 20 {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "Transaction numbers are only allowed")
}
