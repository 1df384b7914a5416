// service/table_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/roulette-backend/internal/model"
	"github.com/benbeisheim/roulette-backend/internal/random"
	"github.com/gofiber/fiber/v2/log"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrTableExists   = errors.New("table already exists")
)

// SourceFactory hands every new table its own draw source.
type SourceFactory func() (random.Source, error)

type TableManager struct {
	tables    map[string]*model.Table
	rules     model.Rules
	newSource SourceFactory
	mu        sync.RWMutex
}

func NewTableManager(rules model.Rules, newSource SourceFactory) *TableManager {
	if newSource == nil {
		newSource = random.New
	}
	return &TableManager{
		tables:    make(map[string]*model.Table),
		rules:     rules,
		newSource: newSource,
	}
}

func (tm *TableManager) CreateTable(tableID string) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if _, exists := tm.tables[tableID]; exists {
		return ErrTableExists
	}

	src, err := tm.newSource()
	if err != nil {
		return fmt.Errorf("seed table %s: %w", tableID, err)
	}
	tm.tables[tableID] = model.NewTable(tableID, tm.rules, src)
	log.Infow("table created", "table", tableID, "rules", tm.rules)
	return nil
}

func (tm *TableManager) GetTable(tableID string) (*model.Table, error) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	table, exists := tm.tables[tableID]
	if !exists {
		return nil, ErrTableNotFound
	}

	return table, nil
}

// RemoveTable forgets the table and closes everyone watching it.
func (tm *TableManager) RemoveTable(tableID string) error {
	tm.mu.Lock()
	table, exists := tm.tables[tableID]
	if !exists {
		tm.mu.Unlock()
		return ErrTableNotFound
	}
	delete(tm.tables, tableID)
	tm.mu.Unlock()

	table.CloseConnections()
	log.Infow("table removed", "table", tableID)
	return nil
}

func (tm *TableManager) Count() int {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return len(tm.tables)
}
