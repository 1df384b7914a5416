package controller

import (
	"github.com/benbeisheim/roulette-backend/internal/middleware"
	"github.com/benbeisheim/roulette-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Register mounts the REST and WebSocket routes for tables.
func Register(app *fiber.App, tableService *service.TableService, allowOrigins []string) {
	tableController := NewTableController(tableService)
	wsController := NewWebSocketController(tableService)

	// WebSocket routes
	app.Use("/ws", middleware.EnsureClientID())
	app.Get("/ws/table/:tableId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         allowOrigins,
	}))

	// REST routes
	api := app.Group("/api", middleware.EnsureClientID())

	tableRoutes := api.Group("/table")
	tableRoutes.Post("/create", tableController.CreateTable)
	tableRoutes.Get("/:tableId", tableController.GetTableState)
	tableRoutes.Post("/:tableId/players", tableController.AddPlayer)
	tableRoutes.Post("/:tableId/spin/:index", tableController.Spin)
	tableRoutes.Post("/:tableId/reset", tableController.Reset)
	tableRoutes.Delete("/:tableId", tableController.CloseTable)
}
