/*
 * Copyright 2026 Pulseboard Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package store

import (
	"context"
	"sync"
	"time"

	"github.com/pulseboard/pulseboard/pkg/models"
)

// MemoryStore is an in-process Store used for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*models.ServiceRecord
	order   []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*models.ServiceRecord),
	}
}

func (m *MemoryStore) GetService(_ context.Context, id string) (*models.ServiceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, ErrServiceNotFound
	}

	clone := *record

	return &clone, nil
}

func (m *MemoryStore) CreateService(_ context.Context, record *models.ServiceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[record.ID]; ok {
		return ErrServiceExists
	}

	clone := *record
	m.records[record.ID] = &clone
	m.order = append(m.order, record.ID)

	return nil
}

func (m *MemoryStore) UpdateHeartbeat(_ context.Context, id, status string, pingAt time.Time, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return ErrServiceNotFound
	}

	record.ReportedStatus = status
	record.LastPing = &pingAt
	record.Message = message

	return nil
}

func (m *MemoryStore) SetServiceActive(_ context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return ErrServiceNotFound
	}

	record.IsActive = active

	return nil
}

func (m *MemoryStore) ListServices(_ context.Context) ([]models.ServiceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]models.ServiceRecord, 0, len(m.order))
	for _, id := range m.order {
		records = append(records, *m.records[id])
	}

	return records, nil
}

func (*MemoryStore) Close() error {
	return nil
}
