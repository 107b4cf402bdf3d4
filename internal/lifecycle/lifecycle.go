// Package lifecycle holds the work-order state machine and the business
// rules that gate asset retirement and order visibility. Everything here is
// pure: handlers fetch, these functions decide.
package lifecycle

import (
	"sort"

	"cmms-api-server/internal/models"
)

// transitions maps each state to the states reachable from it. Concluida is
// terminal: closed orders are never mutated again, and there is no reopen
// path.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusOpen:          {models.StatusInProgress, models.StatusAwaitingParts, models.StatusClosed},
	models.StatusInProgress:    {models.StatusAwaitingParts, models.StatusClosed},
	models.StatusAwaitingParts: {models.StatusInProgress, models.StatusClosed},
	models.StatusClosed:        nil,
}

// ValidStatus reports whether s is one of the four known order states.
func ValidStatus(s models.OrderStatus) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether an order in state from may move to state to.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

var criticalityRank = map[models.Criticality]int{
	models.CriticalityLow:      0,
	models.CriticalityMedium:   1,
	models.CriticalityHigh:     2,
	models.CriticalityCritical: 3,
}

// ValidCriticality reports whether c is one of the four ordered levels.
func ValidCriticality(c models.Criticality) bool {
	_, ok := criticalityRank[c]
	return ok
}

// CriticalityRank returns the position of c in the Baja < Media < Alta <
// Crítica ordering, or -1 for unknown values.
func CriticalityRank(c models.Criticality) int {
	if r, ok := criticalityRank[c]; ok {
		return r
	}
	return -1
}

// SortByCriticality orders a listing most critical first, oldest first
// within a level, so the closure screen surfaces the urgent work on top.
func SortByCriticality(orders []models.WorkOrder) {
	sort.SliceStable(orders, func(i, j int) bool {
		ri, rj := CriticalityRank(orders[i].Criticidad), CriticalityRank(orders[j].Criticidad)
		if ri != rj {
			return ri > rj
		}
		return orders[i].FechaCreacion.Before(orders[j].FechaCreacion)
	})
}

// VisibleOrders filters orders for the closure screen. Technicians see only
// their own non-closed orders, matched by user id so a rename does not hide
// them. Other roles see every non-closed order, or everything when
// includeClosed is set (the "show history" toggle).
func VisibleOrders(orders []models.WorkOrder, role, userID string, includeClosed bool) []models.WorkOrder {
	out := []models.WorkOrder{}
	for _, o := range orders {
		if role == models.RoleTechnician {
			if o.TecnicoID != userID || o.Estado == models.StatusClosed {
				continue
			}
		} else if o.Estado == models.StatusClosed && !includeClosed {
			continue
		}
		out = append(out, o)
	}
	return out
}

// AssignableRoles lists the roles a work order may be assigned to. The
// source system allowed scheduling work on anyone who could hold a wrench.
var AssignableRoles = []string{models.RoleTechnician, models.RoleAdmin, models.RoleScheduler}
