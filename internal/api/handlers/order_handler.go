// server/internal/api/handlers/order_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"cmms-api-server/internal/lifecycle"
	"cmms-api-server/internal/models"
	"cmms-api-server/internal/notify"
	"cmms-api-server/internal/socket"
	"cmms-api-server/internal/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrderHandler struct {
	DB       *mongo.Database
	Uploader *storage.Uploader
	Hub      *socket.Hub
}

type CreateOrderRequest struct {
	ActivoID    string `json:"activo_id" binding:"required"`
	Descripcion string `json:"descripcion" binding:"required"`
	Criticidad  string `json:"criticidad" binding:"required"`
	TecnicoID   string `json:"tecnico_id"`
}

type UpdateStatusRequest struct {
	Estado string `json:"estado" binding:"required"`
}

// CreateOrder raises a work order against an asset, optionally assigned to
// a technician. New orders always start in Abierta. When assigned, the
// response carries a pre-filled WhatsApp link for the out-of-band handoff.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !lifecycle.ValidCriticality(models.Criticality(req.Criticidad)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown criticality level"})
		return
	}

	assetID, err := primitive.ObjectIDFromHex(req.ActivoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset id"})
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

	newOrder := models.WorkOrder{
		ActivoID:      assetID,
		Descripcion:   req.Descripcion,
		Criticidad:    models.Criticality(req.Criticidad),
		Estado:        models.StatusOpen,
		FechaCreacion: time.Now(),
	}

	if req.TecnicoID != "" {
		technicianID, err := primitive.ObjectIDFromHex(req.TecnicoID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid technician id"})
			return
		}

		var technician models.User
		err = h.DB.Collection("usuarios").FindOne(context.Background(), bson.M{"_id": technicianID}).Decode(&technician)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Technician not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve technician"})
			}
			return
		}

		assignable := false
		for _, role := range lifecycle.AssignableRoles {
			if technician.Rol == role {
				assignable = true
				break
			}
		}
		if !assignable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User cannot be assigned work orders"})
			return
		}

		newOrder.TecnicoID = technician.ID.Hex()
		newOrder.TecnicoAsignado = technician.Nombre
	}

	result, err := h.DB.Collection("ordenes").InsertOne(context.Background(), newOrder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create work order"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newOrder.ID = oid
	}

	h.Hub.Broadcast(socket.Event{Tipo: socket.EventOrderCreated, Payload: gin.H{"orden": newOrder.ID.Hex()}})

	response := gin.H{"orden": newOrder}
	if newOrder.TecnicoAsignado != "" {
		response["whatsapp"] = notify.AssignmentLink(newOrder.ID.Hex(), newOrder.TecnicoAsignado, asset.Nombre, newOrder.Descripcion)
	}

	c.JSON(http.StatusCreated, response)
}

// UpdateStatus moves an order between the intermediate states. Closure goes
// through the cierre endpoint because it requires a report; this one refuses
// Concluida as a target and any transition out of it.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target := models.OrderStatus(req.Estado)
	if !lifecycle.ValidStatus(target) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}
	if target == models.StatusClosed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Closure requires a report; use the cierre endpoint"})
		return
	}

	var order models.WorkOrder
	err = h.DB.Collection("ordenes").FindOne(context.Background(), bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve work order"})
		}
		return
	}

	if !lifecycle.CanTransition(order.Estado, target) {
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid status transition", "estado_actual": order.Estado})
		return
	}

	_, err = h.DB.Collection("ordenes").UpdateOne(context.Background(), bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"estado": target}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update work order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "estado": target})
}

// CloseOrder concludes a work order. The report text is required; the
// evidence attachment is optional, and an upload failure is downgraded to
// the no-evidence sentinel rather than blocking the closure.
func (h *OrderHandler) CloseOrder(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	report := c.PostForm("informe")
	if report == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Closure report is required"})
		return
	}

	var order models.WorkOrder
	err = h.DB.Collection("ordenes").FindOne(context.Background(), bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve work order"})
		}
		return
	}

	if order.Estado == models.StatusClosed {
		c.JSON(http.StatusConflict, gin.H{"error": "Work order is already closed"})
		return
	}

	// Technicians close only their own orders. Admin and Programador may
	// close anyone's.
	if c.GetString("user_role") == models.RoleTechnician && order.TecnicoID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Work order is assigned to someone else"})
		return
	}

	evidenceURL := models.EvidenceNone
	file, header, err := c.Request.FormFile("evidencia")
	if err == nil && h.Uploader != nil {
		defer file.Close()
		url, uploadErr := h.Uploader.UploadEvidence(c.Request.Context(), file, header.Filename, header.Header.Get("Content-Type"))
		if uploadErr != nil {
			log.Printf("Evidence upload failed for order %s: %v", orderID.Hex(), uploadErr)
		} else {
			evidenceURL = url
		}
	}

	_, err = h.DB.Collection("ordenes").UpdateOne(context.Background(), bson.M{"_id": orderID},
		bson.M{"$set": bson.M{
			"estado":             models.StatusClosed,
			"comentarios_cierre": report,
			"evidencia_url":      evidenceURL,
		}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close work order"})
		return
	}

	h.Hub.Broadcast(socket.Event{Tipo: socket.EventOrderClosed, Payload: gin.H{"orden": orderID.Hex()}})

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"estado":        models.StatusClosed,
		"evidencia_url": evidenceURL,
	})
}

// GetOrders lists work orders for the closure screen. Technicians see their
// own pending orders; other roles see all pending orders, or the full
// history with ?historial=true.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	cursor, err := h.DB.Collection("ordenes").Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query work orders"})
		return
	}
	defer cursor.Close(context.Background())

	var orders []models.WorkOrder
	if err = cursor.All(context.Background(), &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode work orders"})
		return
	}

	includeClosed := c.Query("historial") == "true"
	visible := lifecycle.VisibleOrders(orders, c.GetString("user_role"), c.GetString("user_id"), includeClosed)
	lifecycle.SortByCriticality(visible)

	c.JSON(http.StatusOK, visible)
}
