// server/internal/api/handlers/audit_handler.go
package handlers

import (
	"context"
	"net/http"

	"cmms-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditHandler struct {
	DB *mongo.Database
}

// GetAuditTrail lists the retirement log, oldest first. The application
// only ever inserts here; there is no mutation surface to expose.
func (h *AuditHandler) GetAuditTrail(c *gin.Context) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := h.DB.Collection("auditoria_eliminados").Find(context.Background(), bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query audit trail"})
		return
	}
	defer cursor.Close(context.Background())

	var records []models.AuditRecord
	if err = cursor.All(context.Background(), &records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode audit trail"})
		return
	}

	if records == nil {
		records = []models.AuditRecord{}
	}

	c.JSON(http.StatusOK, records)
}
