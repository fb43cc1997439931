package db

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process run store used when no database is configured.
type Memory struct {
	mu   sync.RWMutex
	runs map[string]ScheduleRun
}

func NewMemory() *Memory {
	return &Memory{runs: make(map[string]ScheduleRun)}
}

func (m *Memory) SaveRun(ctx context.Context, run ScheduleRun) error {
	const fn = "Memory:SaveRun"
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.runs[run.ID]; exists {
		return fmt.Errorf("%s:%w: duplicate id %s", fn, ErrInsertFailed, run.ID)
	}
	m.runs[run.ID] = run
	return nil
}

func (m *Memory) LoadRun(ctx context.Context, id string) (*ScheduleRun, error) {
	const fn = "Memory:LoadRun"
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("%s:%w", fn, ErrNotFound)
	}
	return &run, nil
}
