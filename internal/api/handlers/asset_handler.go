// server/internal/api/handlers/asset_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cmms-api-server/internal/database"
	"cmms-api-server/internal/models"
	"cmms-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AssetHandler struct {
	Client *mongo.Client
	DB     *mongo.Database
	Hub    *socket.Hub
}

type AssetRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	Ubicacion string `json:"ubicacion" binding:"required"`
	Categoria string `json:"categoria"`
}

type RetireAssetRequest struct {
	Motivo      string `json:"motivo" binding:"required"`
	Responsable string `json:"responsable" binding:"required"`
}

// GetAllAssets lists the active equipment inventory.
func (h *AssetHandler) GetAllAssets(c *gin.Context) {
	collection := h.DB.Collection("activos")

	cursor, err := collection.Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query assets"})
		return
	}
	defer cursor.Close(context.Background())

	var assets []models.Asset
	if err = cursor.All(context.Background(), &assets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode assets"})
		return
	}

	if assets == nil {
		assets = []models.Asset{}
	}

	c.JSON(http.StatusOK, assets)
}

// GetAssetCategories answers the fixed category list the registration form
// offers. The store accepts other values; the list is a form convention.
func (h *AssetHandler) GetAssetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.AssetCategories)
}

// CreateAsset registers a new piece of equipment. Name and location are
// required; the category is free text from a fixed UI list and is stored as
// given.
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newAsset := models.Asset{
		Nombre:    req.Nombre,
		Ubicacion: req.Ubicacion,
		Categoria: req.Categoria,
	}

	result, err := h.DB.Collection("activos").InsertOne(context.Background(), newAsset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newAsset.ID = oid
	}

	c.JSON(http.StatusCreated, newAsset)
}

// UpdateAsset overwrites the mutable fields of an asset. Last writer wins;
// there is no concurrency check.
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	assetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset id"})
		return
	}

	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Collection("activos").UpdateOne(context.Background(), bson.M{"_id": assetID}, bson.M{"$set": bson.M{
		"nombre":    req.Nombre,
		"ubicacion": req.Ubicacion,
		"categoria": req.Categoria,
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update asset"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset updated successfully"})
}

// RetireAsset removes an asset from the active registry. Retirement is
// refused while the asset has open work orders; otherwise an audit record
// with a snapshot of the asset is written, its orders are cascade-deleted
// and the asset itself is deleted.
func (h *AssetHandler) RetireAsset(c *gin.Context) {
	assetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset id"})
		return
	}

	var req RetireAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var asset models.Asset
	err = h.DB.Collection("activos").FindOne(context.Background(), bson.M{"_id": assetID}).Decode(&asset)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		}
		return
	}

	openCount, err := h.DB.Collection("ordenes").CountDocuments(context.Background(),
		bson.M{"activo_id": assetID, "estado": models.StatusOpen})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check open orders"})
		return
	}
	if openCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":            "Asset has open work orders and cannot be retired",
			"ordenes_abiertas": openCount,
		})
		return
	}

	record := models.AuditRecord{
		Tipo:             models.AuditTypeAsset,
		Referencia:       asset.Nombre,
		DatosRespaldo:    asset,
		MotivoBaja:       req.Motivo,
		Responsable:      req.Responsable,
		FechaEliminacion: time.Now(),
	}

	auditID, err := database.RetireAsset(context.Background(), h.Client, h.DB, record, assetID)
	if err != nil {
		// An order opened between the check above and the writes aborts the
		// sequence; answer as the gate does.
		var openErr *database.OpenOrdersError
		if errors.As(err, &openErr) {
			c.JSON(http.StatusConflict, gin.H{
				"error":            "Asset has open work orders and cannot be retired",
				"ordenes_abiertas": openErr.Count,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retire asset", "details": err.Error()})
		return
	}

	h.Hub.Broadcast(socket.Event{Tipo: socket.EventAssetRetired, Payload: gin.H{"activo": asset.Nombre}})

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"auditoriaID": auditID.Hex(),
	})
}
