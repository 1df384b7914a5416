package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/roulette-backend/internal/random"
	"github.com/benbeisheim/roulette-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a table writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections watching a specific table
type TableConnections struct {
	connections map[string]Conn // clientID -> connection
	mu          sync.RWMutex
}

// Reveal is the deferred half of a spin: the outcome is already applied,
// only its display is pending.
type Reveal struct {
	PlayerIndex int     `json:"playerIndex"`
	Outcome     Outcome `json:"outcome"`
	round       int
}

// Table owns one game and the connections rendering it.
type Table struct {
	ID          string
	mu          sync.Mutex
	state       GameState
	src         random.Source
	round       int // bumped on reset so stale reveals are dropped
	connections *TableConnections
}

func NewTable(id string, rules Rules, src random.Source) *Table {
	return &Table{
		ID:          id,
		state:       NewGameState(rules),
		src:         src,
		connections: NewTableConnections(),
	}
}

func NewTableConnections() *TableConnections {
	return &TableConnections{
		connections: make(map[string]Conn),
	}
}

func (t *Table) GetState() ClientState {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state.Snapshot()
}

func (t *Table) SetPendingName(name string) {
	t.mu.Lock()
	t.state.PendingName = name
	snapshot := t.state.Snapshot()
	t.mu.Unlock()

	t.broadcastState(snapshot)
}

// AddPlayer seats a player. An empty name falls back to the pending name,
// which is cleared once the player is seated.
func (t *Table) AddPlayer(name string) bool {
	t.mu.Lock()
	if name == "" {
		name = t.state.PendingName
	}
	added := t.state.AddPlayer(name)
	if added {
		t.state.PendingName = ""
	}
	snapshot := t.state.Snapshot()
	t.mu.Unlock()

	if added {
		log.Debugw("player seated", "table", t.ID, "name", name)
		t.broadcastState(snapshot)
	}
	return added
}

// ResolveSpin applies a spin right away and leaves the table spinning until
// the returned Reveal is handed back to RevealOutcome. Spins requested
// while another reveal is pending are ignored.
func (t *Table) ResolveSpin(index int) (Reveal, bool) {
	t.mu.Lock()
	if t.state.Spinning {
		t.mu.Unlock()
		return Reveal{}, false
	}
	outcome, ok := t.state.Spin(t.src, index)
	if !ok {
		t.mu.Unlock()
		return Reveal{}, false
	}
	t.state.BeginReveal()
	reveal := Reveal{PlayerIndex: index, Outcome: outcome, round: t.round}
	snapshot := t.state.Snapshot()
	t.mu.Unlock()

	log.Debugw("spin resolved", "table", t.ID, "player", index, "outcome", outcome)
	t.broadcastState(snapshot)
	return reveal, true
}

// RevealOutcome publishes a resolved spin. Reveals from before the last
// reset are discarded.
func (t *Table) RevealOutcome(r Reveal) bool {
	t.mu.Lock()
	if r.round != t.round || !t.state.Spinning {
		t.mu.Unlock()
		return false
	}
	t.state.Reveal(r.Outcome)
	snapshot := t.state.Snapshot()
	t.mu.Unlock()

	t.broadcastState(snapshot)
	return true
}

func (t *Table) Reset() {
	t.mu.Lock()
	t.state.Reset()
	t.round++
	snapshot := t.state.Snapshot()
	t.mu.Unlock()

	log.Debugw("table reset", "table", t.ID)
	t.broadcastState(snapshot)
}

func (t *Table) RegisterConnection(clientID string, conn Conn) error {
	if conn == nil {
		return errors.New("nil connection")
	}
	connID := fmt.Sprintf("%p", conn)

	t.connections.mu.Lock()
	if _, exists := t.connections.connections[clientID]; exists {
		// Keep the live connection and turn the newcomer away
		t.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	t.connections.connections[clientID] = conn
	t.connections.mu.Unlock()
	log.Debugf("registered connection %s for client %s on table %s", connID, clientID, t.ID)

	t.broadcastState(t.GetState())
	return nil
}

// UnregisterConnection only removes conn if it is still the client's
// current connection.
func (t *Table) UnregisterConnection(clientID string, conn Conn) {
	t.connections.mu.Lock()
	defer t.connections.mu.Unlock()

	current, exists := t.connections.connections[clientID]
	if !exists {
		return
	}
	if conn != nil && current != conn {
		log.Debugf("ignoring unregister for old connection of client %s", clientID)
		return
	}
	delete(t.connections.connections, clientID)
}

func (t *Table) ConnectionCount() int {
	t.connections.mu.RLock()
	defer t.connections.mu.RUnlock()
	return len(t.connections.connections)
}

// CloseConnections closes and forgets every watcher.
func (t *Table) CloseConnections() {
	t.connections.mu.Lock()
	defer t.connections.mu.Unlock()

	for clientID, conn := range t.connections.connections {
		conn.Close()
		delete(t.connections.connections, clientID)
	}
}

// broadcastState writes snapshot to every connection. Writes are
// serialized under the connections lock; a failed write drops the
// connection.
func (t *Table) broadcastState(snapshot ClientState) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Errorf("failed to marshal table %s state: %v", t.ID, err)
		return
	}
	msg := ws.Message{
		Type:    ws.MessageTypeTableState,
		Payload: json.RawMessage(payload),
	}

	t.connections.mu.Lock()
	defer t.connections.mu.Unlock()
	for clientID, conn := range t.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("failed to send state to client %s: %v", clientID, err)
			delete(t.connections.connections, clientID)
		}
	}
}
