package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It also checks that the table and client are known before allowing the upgrade.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		tableID := c.Params("tableId")
		if tableID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "table ID is required",
			})
		}

		clientID := c.Locals("clientID")
		if clientID == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "client ID is required",
			})
		}

		// The connection context is different from the upgrade context,
		// so carry the IDs across in locals
		c.Locals("wsTableID", tableID)
		c.Locals("wsClientID", clientID)

		return c.Next()
	}
}
