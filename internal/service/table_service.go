package service

import (
	"fmt"
	"time"

	"github.com/benbeisheim/roulette-backend/internal/model"
	"github.com/google/uuid"
)

type TableService struct {
	tableManager *TableManager
	revealDelay  time.Duration
}

// PendingSpin is a spin whose outcome is already applied. Revealed
// delivers the reveal once the suspense delay has passed and the table
// has published it.
type PendingSpin struct {
	PlayerIndex int
	Outcome     model.Outcome
	Revealed    <-chan model.Reveal
}

func NewTableService(tableManager *TableManager, revealDelay time.Duration) *TableService {
	return &TableService{
		tableManager: tableManager,
		revealDelay:  revealDelay,
	}
}

func (ts *TableService) RevealDelay() time.Duration {
	return ts.revealDelay
}

func (ts *TableService) CreateTable() (string, error) {
	tableID := uuid.New().String()

	if err := ts.tableManager.CreateTable(tableID); err != nil {
		return "", fmt.Errorf("failed to create table: %w", err)
	}

	return tableID, nil
}

func (ts *TableService) CloseTable(tableID string) error {
	return ts.tableManager.RemoveTable(tableID)
}

func (ts *TableService) GetTableState(tableID string) (model.ClientState, error) {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return model.ClientState{}, err
	}
	return table.GetState(), nil
}

func (ts *TableService) SetPendingName(tableID string, name string) error {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return err
	}
	table.SetPendingName(name)
	return nil
}

// AddPlayer reports false when the name is empty or the table is full.
func (ts *TableService) AddPlayer(tableID string, name string) (bool, error) {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return false, err
	}
	return table.AddPlayer(name), nil
}

// Spin resolves a spin now and schedules its reveal. A spin that does
// nothing (unknown or eliminated player, reveal already pending) returns
// a nil PendingSpin.
func (ts *TableService) Spin(tableID string, playerIndex int) (*PendingSpin, error) {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return nil, err
	}

	reveal, ok := table.ResolveSpin(playerIndex)
	if !ok {
		return nil, nil
	}

	revealed := make(chan model.Reveal, 1)
	go func() {
		defer close(revealed)
		if ts.revealDelay > 0 {
			timer := time.NewTimer(ts.revealDelay)
			<-timer.C
		}
		if table.RevealOutcome(reveal) {
			revealed <- reveal
		}
	}()

	return &PendingSpin{
		PlayerIndex: playerIndex,
		Outcome:     reveal.Outcome,
		Revealed:    revealed,
	}, nil
}

func (ts *TableService) Reset(tableID string) error {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return err
	}
	table.Reset()
	return nil
}

func (ts *TableService) RegisterConnection(tableID string, clientID string, conn model.Conn) error {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return err
	}
	return table.RegisterConnection(clientID, conn)
}

func (ts *TableService) UnregisterConnection(tableID string, clientID string, conn model.Conn) {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return
	}
	table.UnregisterConnection(clientID, conn)
}
