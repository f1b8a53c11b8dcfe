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

//go:generate mockgen -destination=mock_store.go -package=store github.com/pulseboard/pulseboard/pkg/store Store

// Package store pkg/store/interfaces.go
package store

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/pkg/models"
)

// Store is the record store used to persist monitored services. Rows are
// mapped to typed records at this boundary; nothing above it sees raw
// storage rows. Implementations must key records by service id.
type Store interface {
	// GetService returns the record for the given service id, or
	// ErrServiceNotFound if no record exists.
	GetService(ctx context.Context, id string) (*models.ServiceRecord, error)

	// CreateService appends a new record. Returns ErrServiceExists when a
	// record with the same id is already present; backends use their
	// natural conditional-insert primitive so concurrent first heartbeats
	// cannot produce duplicates.
	CreateService(ctx context.Context, record *models.ServiceRecord) error

	// UpdateHeartbeat writes the heartbeat fields (reported status, last
	// ping, message) of an existing record, leaving all other fields
	// untouched.
	UpdateHeartbeat(ctx context.Context, id, status string, pingAt time.Time, message string) error

	// SetServiceActive writes only the active flag of an existing record.
	SetServiceActive(ctx context.Context, id string, active bool) error

	// ListServices returns all records in insertion order.
	ListServices(ctx context.Context) ([]models.ServiceRecord, error)

	Close() error
}
