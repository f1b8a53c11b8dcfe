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
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/pulseboard/pulseboard/pkg/models"
)

// NatsStore persists service records as JSON values in a JetStream KV
// bucket, keyed by service id. Auto-registration relies on the bucket's
// atomic Create so two concurrent first heartbeats cannot both insert.
type NatsStore struct {
	nc *nats.Conn
	kv jetstream.KeyValue
}

func NewNatsStore(ctx context.Context, natsURL, bucket string) (*NatsStore, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()

		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: bucket,
	})
	if err != nil {
		nc.Close()

		return nil, fmt.Errorf("failed to create KV bucket: %w", err)
	}

	return &NatsStore{
		nc: nc,
		kv: kv,
	}, nil
}

func (n *NatsStore) GetService(ctx context.Context, id string) (*models.ServiceRecord, error) {
	entry, err := n.kv.Get(ctx, id)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, ErrServiceNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get service %s: %w", id, err)
	}

	return decodeRecord(entry.Value())
}

func (n *NatsStore) CreateService(ctx context.Context, record *models.ServiceRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode service %s: %w", record.ID, err)
	}

	_, err = n.kv.Create(ctx, record.ID, data)
	if errors.Is(err, jetstream.ErrKeyExists) {
		return ErrServiceExists
	}

	if err != nil {
		return fmt.Errorf("failed to create service %s: %w", record.ID, err)
	}

	return nil
}

func (n *NatsStore) UpdateHeartbeat(ctx context.Context, id, status string, pingAt time.Time, message string) error {
	return n.updateRecord(ctx, id, func(record *models.ServiceRecord) {
		record.ReportedStatus = status
		record.LastPing = &pingAt
		record.Message = message
	})
}

func (n *NatsStore) SetServiceActive(ctx context.Context, id string, active bool) error {
	return n.updateRecord(ctx, id, func(record *models.ServiceRecord) {
		record.IsActive = active
	})
}

// updateRecord does a read-modify-write Put. Concurrent writers for the
// same id race last-write-wins, which matches heartbeat semantics.
func (n *NatsStore) updateRecord(ctx context.Context, id string, mutate func(*models.ServiceRecord)) error {
	record, err := n.GetService(ctx, id)
	if err != nil {
		return err
	}

	mutate(record)

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode service %s: %w", id, err)
	}

	if _, err := n.kv.Put(ctx, id, data); err != nil {
		return fmt.Errorf("failed to update service %s: %w", id, err)
	}

	return nil
}

func (n *NatsStore) ListServices(ctx context.Context) ([]models.ServiceRecord, error) {
	lister, err := n.kv.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	var records []models.ServiceRecord

	for key := range lister.Keys() {
		entry, err := n.kv.Get(ctx, key)
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			continue // deleted between list and get
		}

		if err != nil {
			return nil, fmt.Errorf("failed to get service %s: %w", key, err)
		}

		record, err := decodeRecord(entry.Value())
		if err != nil {
			return nil, err
		}

		records = append(records, *record)
	}

	// KV key iteration order is unspecified; restore insertion order.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	return records, nil
}

func (n *NatsStore) Close() error {
	n.nc.Close()

	return nil
}

func decodeRecord(data []byte) (*models.ServiceRecord, error) {
	var record models.ServiceRecord

	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode service record: %w", err)
	}

	return &record, nil
}
