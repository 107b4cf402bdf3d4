package lifecycle

import (
	"testing"
	"time"

	"cmms-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		ok   bool
	}{
		{"open to in progress", models.StatusOpen, models.StatusInProgress, true},
		{"open to awaiting parts", models.StatusOpen, models.StatusAwaitingParts, true},
		{"open to closed", models.StatusOpen, models.StatusClosed, true},
		{"in progress to closed", models.StatusInProgress, models.StatusClosed, true},
		{"awaiting parts to in progress", models.StatusAwaitingParts, models.StatusInProgress, true},
		{"closed is terminal", models.StatusClosed, models.StatusOpen, false},
		{"no reopen via in progress", models.StatusClosed, models.StatusInProgress, false},
		{"no self transition", models.StatusOpen, models.StatusOpen, false},
		{"unknown target", models.StatusOpen, models.OrderStatus("Pausada"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to))
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []models.OrderStatus{models.StatusOpen, models.StatusInProgress, models.StatusAwaitingParts, models.StatusClosed} {
		assert.True(t, ValidStatus(s), string(s))
	}
	assert.False(t, ValidStatus(models.OrderStatus("Abierto")))
	assert.False(t, ValidStatus(models.OrderStatus("")))
}

func TestCriticalityOrdering(t *testing.T) {
	assert.Less(t, CriticalityRank(models.CriticalityLow), CriticalityRank(models.CriticalityMedium))
	assert.Less(t, CriticalityRank(models.CriticalityMedium), CriticalityRank(models.CriticalityHigh))
	assert.Less(t, CriticalityRank(models.CriticalityHigh), CriticalityRank(models.CriticalityCritical))
	assert.Equal(t, -1, CriticalityRank(models.Criticality("Urgente")))
	assert.False(t, ValidCriticality(models.Criticality("Urgente")))
	assert.True(t, ValidCriticality(models.CriticalityCritical))
}

func TestSortByCriticality(t *testing.T) {
	now := time.Now()
	orders := []models.WorkOrder{
		{Descripcion: "media", Criticidad: models.CriticalityMedium, FechaCreacion: now},
		{Descripcion: "critica tarde", Criticidad: models.CriticalityCritical, FechaCreacion: now.Add(time.Hour)},
		{Descripcion: "critica temprano", Criticidad: models.CriticalityCritical, FechaCreacion: now},
		{Descripcion: "baja", Criticidad: models.CriticalityLow, FechaCreacion: now},
	}

	SortByCriticality(orders)

	require.Len(t, orders, 4)
	assert.Equal(t, "critica temprano", orders[0].Descripcion)
	assert.Equal(t, "critica tarde", orders[1].Descripcion)
	assert.Equal(t, "media", orders[2].Descripcion)
	assert.Equal(t, "baja", orders[3].Descripcion)
}

func TestVisibleOrdersTechnician(t *testing.T) {
	orders := []models.WorkOrder{
		{Descripcion: "mine open", TecnicoID: "t1", Estado: models.StatusOpen},
		{Descripcion: "mine closed", TecnicoID: "t1", Estado: models.StatusClosed},
		{Descripcion: "someone else", TecnicoID: "t2", Estado: models.StatusOpen},
		{Descripcion: "unassigned", Estado: models.StatusOpen},
	}

	visible := VisibleOrders(orders, models.RoleTechnician, "t1", false)
	require.Len(t, visible, 1)
	assert.Equal(t, "mine open", visible[0].Descripcion)

	// The history toggle does not apply to technicians.
	visible = VisibleOrders(orders, models.RoleTechnician, "t1", true)
	require.Len(t, visible, 1)
	assert.Equal(t, "mine open", visible[0].Descripcion)
}

func TestVisibleOrdersOtherRoles(t *testing.T) {
	orders := []models.WorkOrder{
		{Descripcion: "open", TecnicoID: "t1", Estado: models.StatusOpen},
		{Descripcion: "in progress", TecnicoID: "t2", Estado: models.StatusInProgress},
		{Descripcion: "closed", TecnicoID: "t1", Estado: models.StatusClosed},
	}

	visible := VisibleOrders(orders, models.RoleAdmin, "a1", false)
	require.Len(t, visible, 2)
	for _, o := range visible {
		assert.NotEqual(t, models.StatusClosed, o.Estado)
	}

	visible = VisibleOrders(orders, models.RoleScheduler, "s1", true)
	assert.Len(t, visible, 3)
}

func TestVisibleOrdersEmpty(t *testing.T) {
	visible := VisibleOrders(nil, models.RoleAdmin, "a1", false)
	assert.NotNil(t, visible)
	assert.Empty(t, visible)
}
