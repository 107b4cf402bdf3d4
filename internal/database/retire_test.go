package database

import (
	"context"
	"testing"
	"time"

	"cmms-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func retirementRecord(assetID primitive.ObjectID) models.AuditRecord {
	return models.AuditRecord{
		Tipo:       models.AuditTypeAsset,
		Referencia: "Bomba-1",
		DatosRespaldo: models.Asset{
			ID:        assetID,
			Nombre:    "Bomba-1",
			Ubicacion: "Nave A",
			Categoria: "Mecánico",
		},
		MotivoBaja:       "decommissioned",
		Responsable:      "J. Ruiz",
		FechaEliminacion: time.Now(),
	}
}

// openOrderCountResponse is what the count aggregate answers: one document
// with the matching total, or an empty batch for zero.
func openOrderCountResponse(n int32) bson.D {
	if n == 0 {
		return mtest.CreateCursorResponse(0, "cmms.ordenes", mtest.FirstBatch)
	}
	return mtest.CreateCursorResponse(0, "cmms.ordenes", mtest.FirstBatch, bson.D{{Key: "n", Value: n}})
}

func TestRetireWritesSequence(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("audit insert then cascade delete then asset delete", func(mt *mtest.T) {
		assetID := primitive.NewObjectID()
		record := retirementRecord(assetID)

		mt.AddMockResponses(
			openOrderCountResponse(0),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		auditID, err := retireWrites(context.Background(), mt.DB, record, assetID)
		require.NoError(mt, err)
		assert.False(mt, auditID.IsZero())

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 4)

		// The gate only counts Abierta orders: closed or in-progress work
		// does not block retirement.
		assert.Equal(mt, "aggregate", events[0].CommandName)
		match := events[0].Command.Lookup("pipeline").Array().Lookup("0").Document().Lookup("$match").Document()
		assert.Equal(mt, string(models.StatusOpen), match.Lookup("estado").StringValue())

		// Exactly one audit record, carrying the pre-retirement snapshot.
		assert.Equal(mt, "insert", events[1].CommandName)
		assert.Equal(mt, "auditoria_eliminados", events[1].Command.Lookup("insert").StringValue())
		auditDoc := events[1].Command.Lookup("documents").Array().Lookup("0").Document()
		assert.Equal(mt, "decommissioned", auditDoc.Lookup("motivo_baja").StringValue())
		assert.Equal(mt, "J. Ruiz", auditDoc.Lookup("responsable").StringValue())
		snapshot := auditDoc.Lookup("datos_respaldo").Document()
		assert.Equal(mt, "Bomba-1", snapshot.Lookup("nombre").StringValue())
		assert.Equal(mt, "Nave A", snapshot.Lookup("ubicacion").StringValue())

		// Orders cascade before the asset goes.
		assert.Equal(mt, "delete", events[2].CommandName)
		assert.Equal(mt, "ordenes", events[2].Command.Lookup("delete").StringValue())
		assert.Equal(mt, "delete", events[3].CommandName)
		assert.Equal(mt, "activos", events[3].Command.Lookup("delete").StringValue())
	})

	mt.Run("open order aborts before any write", func(mt *mtest.T) {
		assetID := primitive.NewObjectID()

		mt.AddMockResponses(openOrderCountResponse(2))

		_, err := retireWrites(context.Background(), mt.DB, retirementRecord(assetID), assetID)

		var openErr *OpenOrdersError
		require.ErrorAs(mt, err, &openErr)
		assert.Equal(mt, int64(2), openErr.Count)

		for _, ev := range mt.GetAllStartedEvents() {
			assert.NotEqual(mt, "insert", ev.CommandName)
			assert.NotEqual(mt, "delete", ev.CommandName)
		}
	})
}
