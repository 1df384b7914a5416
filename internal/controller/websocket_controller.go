package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/roulette-backend/internal/service"
	"github.com/benbeisheim/roulette-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	tableService *service.TableService
}

func NewWebSocketController(tableService *service.TableService) *WebSocketController {
	return &WebSocketController{
		tableService: tableService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	tableID, _ := c.Locals("wsTableID").(string)
	if tableID == "" {
		tableID = c.Params("tableId")
	}
	clientID, _ := c.Locals("wsClientID").(string)

	if err := wsc.tableService.RegisterConnection(tableID, clientID, c); err != nil {
		log.Warnf("failed to register connection for table %s: %v", tableID, err)
		wsc.sendError(c, err.Error())
		c.Close()
		return
	}
	log.Debugw("websocket connected", "table", tableID, "client", clientID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error on table %s: %v", tableID, err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("parse error: %v", err)
			wsc.sendError(c, "malformed message")
			continue
		}

		if err := wsc.handleMessage(tableID, msg); err != nil {
			log.Debugf("handle error: %v", err)
			wsc.sendError(c, err.Error())
		}
	}

	wsc.tableService.UnregisterConnection(tableID, clientID, c)
}

// Game commands that do nothing (full roster, eliminated player) are not
// errors; only malformed or unroutable messages are.
func (wsc *WebSocketController) handleMessage(tableID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeSetName:
		var payload ws.NamePayload
		if err := decodePayload(msg, &payload); err != nil {
			return err
		}
		return wsc.tableService.SetPendingName(tableID, payload.Name)

	case ws.MessageTypeAddPlayer:
		var payload ws.NamePayload
		if len(msg.Payload) > 0 {
			if err := decodePayload(msg, &payload); err != nil {
				return err
			}
		}
		_, err := wsc.tableService.AddPlayer(tableID, payload.Name)
		return err

	case ws.MessageTypeSpin:
		var payload ws.SpinPayload
		if err := decodePayload(msg, &payload); err != nil {
			return err
		}
		_, err := wsc.tableService.Spin(tableID, payload.PlayerIndex)
		return err

	case ws.MessageTypeReset:
		return wsc.tableService.Reset(tableID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func decodePayload(msg ws.Message, v interface{}) error {
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("invalid %s payload: %w", msg.Type, err)
	}
	return nil
}

type jsonWriter interface {
	WriteJSON(v interface{}) error
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(c jsonWriter, errorMsg string) {
	payload, err := json.Marshal(ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	}); err != nil {
		log.Debugf("failed to send error: %v", err)
	}
}
