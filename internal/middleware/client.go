package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const ClientIDHeader = "X-Client-ID"

// EnsureClientID tags every request with a client ID, taken from the
// header, then the clientId query, or freshly generated and echoed back.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("clientID") != nil {
			return c.Next()
		}

		clientID := c.Get(ClientIDHeader)
		if clientID == "" {
			clientID = c.Query("clientId")
		}
		if clientID == "" {
			clientID = uuid.New().String()
		} else {
			// fiber reuses request buffers; the ID outlives the request on websockets
			clientID = utils.CopyString(clientID)
		}

		c.Set(ClientIDHeader, clientID)
		c.Locals("clientID", clientID)
		return c.Next()
	}
}
