// server/internal/api/routes/routes.go
package routes

import (
	"cmms-api-server/config"
	"cmms-api-server/internal/api/handlers"
	"cmms-api-server/internal/api/middleware"
	"cmms-api-server/internal/auth"
	"cmms-api-server/internal/models"
	"cmms-api-server/internal/socket"
	"cmms-api-server/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires the handlers and per-screen authorization.
func SetupRouter(
	client *mongo.Client,
	db *mongo.Database,
	uploader *storage.Uploader,
	wsHub *socket.Hub,
	cfg config.Config,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authHandler := &handlers.AuthHandler{DB: db}
	assetHandler := &handlers.AssetHandler{Client: client, DB: db, Hub: wsHub}
	orderHandler := &handlers.OrderHandler{DB: db, Uploader: uploader, Hub: wsHub}
	userHandler := &handlers.UserHandler{DB: db}
	auditHandler := &handlers.AuditHandler{DB: db}
	dashboardHandler := &handlers.DashboardHandler{DB: db}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", middleware.Authenticate(), authHandler.Logout)
		}

		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate())
		{
			// Asset registry, including retirement and its audit trail.
			assets := protected.Group("/activos")
			assets.Use(middleware.RequireScreen(auth.ScreenAssetRegistry))
			{
				assets.GET("/", assetHandler.GetAllAssets)
				assets.GET("/categorias", assetHandler.GetAssetCategories)
				assets.POST("/", assetHandler.CreateAsset)
				assets.PUT("/:id", assetHandler.UpdateAsset)
				assets.POST("/:id/baja", assetHandler.RetireAsset)
			}

			auditoria := protected.Group("/auditoria")
			auditoria.Use(middleware.RequireScreen(auth.ScreenAssetRegistry))
			{
				auditoria.GET("/", auditHandler.GetAuditTrail)
			}

			// Order planning and assignment.
			planning := protected.Group("/ordenes")
			planning.Use(middleware.RequireScreen(auth.ScreenCreateOrder))
			{
				planning.POST("/", orderHandler.CreateOrder)
				planning.PUT("/:id/estado", orderHandler.UpdateStatus)
			}

			// Order closure, the technicians' screen.
			closure := protected.Group("/ordenes")
			closure.Use(middleware.RequireScreen(auth.ScreenCloseOrders))
			{
				closure.GET("/", orderHandler.GetOrders)
				closure.POST("/:id/cierre", orderHandler.CloseOrder)
			}

			users := protected.Group("/usuarios")
			users.Use(middleware.RequireScreen(auth.ScreenUsers))
			{
				users.GET("/", userHandler.GetAllUsers)
				// Mutations are narrower than the screen: Programador can
				// browse the roster but only Admin changes it.
				users.POST("/", middleware.RequireRole(models.RoleAdmin), userHandler.CreateUser)
				users.PUT("/:id", middleware.RequireRole(models.RoleAdmin), userHandler.UpdateUser)
				users.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), userHandler.DeleteUser)
			}

			dashboard := protected.Group("/dashboard")
			dashboard.Use(middleware.RequireScreen(auth.ScreenDashboard))
			{
				dashboard.GET("/", dashboardHandler.GetDashboard)
			}
		}
	}

	return router
}
