package handlers

import (
	"testing"

	"cmms-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.TotalOrdenes)
	assert.Equal(t, 0, summary.Abiertas)
	assert.Equal(t, 0, summary.Concluidas)
	assert.Empty(t, summary.PorEstado)
	assert.Empty(t, summary.PorCriticidad)
}

func TestSummarizeSingleOpenOrder(t *testing.T) {
	// A freshly created order counts as 1 open / 0 closed.
	summary := Summarize([]models.WorkOrder{
		{Estado: models.StatusOpen, Criticidad: models.CriticalityHigh},
	})

	assert.Equal(t, 1, summary.TotalOrdenes)
	assert.Equal(t, 1, summary.Abiertas)
	assert.Equal(t, 0, summary.Concluidas)
	assert.Equal(t, 1, summary.PorEstado[models.StatusOpen])
	assert.Equal(t, 1, summary.PorCriticidad[models.CriticalityHigh])
}

func TestSummarizeDistributions(t *testing.T) {
	summary := Summarize([]models.WorkOrder{
		{Estado: models.StatusOpen, Criticidad: models.CriticalityLow},
		{Estado: models.StatusOpen, Criticidad: models.CriticalityCritical},
		{Estado: models.StatusInProgress, Criticidad: models.CriticalityCritical},
		{Estado: models.StatusAwaitingParts, Criticidad: models.CriticalityMedium},
		{Estado: models.StatusClosed, Criticidad: models.CriticalityCritical},
	})

	assert.Equal(t, 5, summary.TotalOrdenes)
	assert.Equal(t, 2, summary.Abiertas)
	assert.Equal(t, 1, summary.Concluidas)

	assert.Equal(t, 2, summary.PorEstado[models.StatusOpen])
	assert.Equal(t, 1, summary.PorEstado[models.StatusInProgress])
	assert.Equal(t, 1, summary.PorEstado[models.StatusAwaitingParts])
	assert.Equal(t, 1, summary.PorEstado[models.StatusClosed])

	assert.Equal(t, 3, summary.PorCriticidad[models.CriticalityCritical])
	assert.Equal(t, 1, summary.PorCriticidad[models.CriticalityMedium])
	assert.Equal(t, 1, summary.PorCriticidad[models.CriticalityLow])
}
