// Package store keeps the saved mind map document somewhere durable.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bubblemap/internal/config"
)

// ErrNoDocument is returned by Load when nothing has been saved yet.
var ErrNoDocument = errors.New("no saved document")

type Backend interface {
	Save(ctx context.Context, doc []byte) error
	Load(ctx context.Context) ([]byte, error)
	Close() error
}

// Open builds the backend selected by the configuration.
func Open(cfg *config.Config) (Backend, error) {
	switch cfg.Store.Backend {
	case "", "file":
		return NewFile(cfg.SavePath(cfg.Store.FileName)), nil
	case "sqlite":
		return OpenSQLite(cfg.SavePath(cfg.Store.Database), cfg.Store.Key)
	case "memory":
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// Memory keeps the document in process memory.
type Memory struct {
	mu  sync.Mutex
	doc []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = append([]byte(nil), doc...)
	return nil
}

func (m *Memory) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return nil, ErrNoDocument
	}
	return append([]byte(nil), m.doc...), nil
}

func (m *Memory) Close() error {
	return nil
}
