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
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pulseboard/pulseboard/pkg/models"
)

const servicesSchema = `
CREATE TABLE IF NOT EXISTS services (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    client_name     TEXT NOT NULL,
    reported_status TEXT NOT NULL DEFAULT '',
    last_ping       TIMESTAMPTZ,
    message         TEXT NOT NULL DEFAULT '',
    schedule_hours  DOUBLE PRECISION NOT NULL DEFAULT 24,
    trigger_url     TEXT NOT NULL DEFAULT '',
    is_active       BOOLEAN NOT NULL DEFAULT TRUE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore persists service records in a Postgres table, one row per
// service, keyed by the service id.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if _, err := pool.Exec(ctx, servicesSchema); err != nil {
		pool.Close()

		return nil, fmt.Errorf("failed to ensure services table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (p *PostgresStore) GetService(ctx context.Context, id string) (*models.ServiceRecord, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, name, client_name, reported_status, last_ping, message,
		       schedule_hours, trigger_url, is_active, created_at
		FROM services WHERE id = $1`, id)

	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrServiceNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get service %s: %w", id, err)
	}

	return record, nil
}

func (p *PostgresStore) CreateService(ctx context.Context, record *models.ServiceRecord) error {
	tag, err := p.pool.Exec(ctx, `
		INSERT INTO services
		    (id, name, client_name, reported_status, last_ping, message,
		     schedule_hours, trigger_url, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING`,
		record.ID, record.Name, record.ClientName, record.ReportedStatus,
		record.LastPing, record.Message, record.ScheduleHours,
		record.TriggerURL, record.IsActive, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create service %s: %w", record.ID, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrServiceExists
	}

	return nil
}

func (p *PostgresStore) UpdateHeartbeat(ctx context.Context, id, status string, pingAt time.Time, message string) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE services
		SET reported_status = $2, last_ping = $3, message = $4
		WHERE id = $1`, id, status, pingAt, message)
	if err != nil {
		return fmt.Errorf("failed to update heartbeat for %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}

	return nil
}

func (p *PostgresStore) SetServiceActive(ctx context.Context, id string, active bool) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE services SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to set active flag for %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}

	return nil
}

func (p *PostgresStore) ListServices(ctx context.Context) ([]models.ServiceRecord, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, client_name, reported_status, last_ping, message,
		       schedule_hours, trigger_url, is_active, created_at
		FROM services ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var records []models.ServiceRecord

	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service row: %w", err)
		}

		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	return records, nil
}

func (p *PostgresStore) Close() error {
	p.pool.Close()

	return nil
}

func scanRecord(row pgx.Row) (*models.ServiceRecord, error) {
	var record models.ServiceRecord

	err := row.Scan(
		&record.ID, &record.Name, &record.ClientName, &record.ReportedStatus,
		&record.LastPing, &record.Message, &record.ScheduleHours,
		&record.TriggerURL, &record.IsActive, &record.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &record, nil
}
