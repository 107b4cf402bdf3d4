// server/internal/api/handlers/dashboard_handler.go
package handlers

import (
	"context"
	"net/http"

	"cmms-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type DashboardHandler struct {
	DB *mongo.Database
}

// DashboardSummary is the read-only aggregation behind the control board:
// headline counts plus the two bar-chart distributions.
type DashboardSummary struct {
	TotalOrdenes  int                        `json:"total_ordenes"`
	Abiertas      int                        `json:"abiertas"`
	Concluidas    int                        `json:"concluidas"`
	PorEstado     map[models.OrderStatus]int `json:"por_estado"`
	PorCriticidad map[models.Criticality]int `json:"por_criticidad"`
}

// Summarize aggregates work orders into the dashboard figures.
func Summarize(orders []models.WorkOrder) DashboardSummary {
	summary := DashboardSummary{
		PorEstado:     map[models.OrderStatus]int{},
		PorCriticidad: map[models.Criticality]int{},
	}

	for _, o := range orders {
		summary.TotalOrdenes++
		summary.PorEstado[o.Estado]++
		summary.PorCriticidad[o.Criticidad]++
		switch o.Estado {
		case models.StatusOpen:
			summary.Abiertas++
		case models.StatusClosed:
			summary.Concluidas++
		}
	}

	return summary
}

// GetDashboard answers the dashboard aggregation. No data is not an error:
// the client renders the empty state from the zero counts.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
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

	c.JSON(http.StatusOK, Summarize(orders))
}
