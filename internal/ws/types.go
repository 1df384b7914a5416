package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages a table handles
type MessageType string

const (
	MessageTypeSetName    MessageType = "setName"
	MessageTypeAddPlayer  MessageType = "addPlayer"
	MessageTypeSpin       MessageType = "spin"
	MessageTypeReset      MessageType = "reset"
	MessageTypeTableState MessageType = "tableState"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type NamePayload struct {
	Name string `json:"name"`
}

type SpinPayload struct {
	PlayerIndex int `json:"playerIndex"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
