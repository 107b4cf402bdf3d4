package auth

import "cmms-api-server/internal/models"

// Screen names the functional areas of the application. The source system
// dispatched on free-text menu labels; here reachability is a closed table.
type Screen string

const (
	ScreenDashboard     Screen = "dashboard"
	ScreenAssetRegistry Screen = "activos"
	ScreenCreateOrder   Screen = "crear_orden"
	ScreenCloseOrders   Screen = "cierre_ots"
	ScreenUsers         Screen = "usuarios"
)

// Capabilities maps each role to the screens it may reach. Unknown roles
// have no entry and therefore reach nothing.
var Capabilities = map[string][]Screen{
	models.RoleAdmin: {
		ScreenDashboard, ScreenAssetRegistry, ScreenCreateOrder, ScreenCloseOrders, ScreenUsers,
	},
	models.RoleScheduler: {
		ScreenDashboard, ScreenCreateOrder, ScreenUsers,
	},
	models.RoleTechnician: {
		ScreenCloseOrders,
	},
}

// Allowed reports whether role may reach screen.
func Allowed(role string, screen Screen) bool {
	for _, s := range Capabilities[role] {
		if s == screen {
			return true
		}
	}
	return false
}
