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

package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pulseboard/pulseboard/pkg/models"
	"github.com/pulseboard/pulseboard/pkg/store"
)

// ProcessHeartbeat applies one incoming heartbeat: it looks the service up,
// auto-registers it when unknown, writes the heartbeat fields and triggers
// escalation when the sender reports failure. The record write is
// authoritative; escalation is fire-and-forget and never fails a heartbeat.
func (s *Server) ProcessHeartbeat(ctx context.Context, req *models.HeartbeatRequest) (*HeartbeatResult, error) {
	if strings.TrimSpace(req.ServiceID) == "" {
		return nil, ErrEmptyServiceID
	}

	now := time.Now().UTC()

	record, err := s.store.GetService(ctx, req.ServiceID)
	if errors.Is(err, store.ErrServiceNotFound) {
		result, registerErr := s.autoRegister(ctx, req, now)
		if registerErr == nil {
			return result, nil
		}

		if !errors.Is(registerErr, store.ErrServiceExists) {
			return nil, registerErr
		}

		// Lost the first-heartbeat race; the record exists now, so fall
		// through to the regular update path.
		record, err = s.store.GetService(ctx, req.ServiceID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look up service %s: %w", req.ServiceID, err)
	}

	status := req.Status
	if status == "" {
		status = defaultReportedStatus
	}

	if err := s.store.UpdateHeartbeat(ctx, req.ServiceID, status, now, req.Message); err != nil {
		return nil, fmt.Errorf("failed to record heartbeat for %s: %w", req.ServiceID, err)
	}

	s.logger.Debug().
		Str("service_id", req.ServiceID).
		Str("status", status).
		Msg("Recorded heartbeat")

	// Disabled services are never escalated.
	if isFailureStatus(status) && record.IsActive {
		s.escalateFailure(record, req.Message, now)
	}

	return &HeartbeatResult{
		Timestamp: now,
		IsActive:  record.IsActive,
	}, nil
}

// autoRegister creates a record for a previously unknown service id. There
// is no prior baseline to regress from, so this path never escalates.
func (s *Server) autoRegister(ctx context.Context, req *models.HeartbeatRequest, now time.Time) (*HeartbeatResult, error) {
	record := &models.ServiceRecord{
		ID:             req.ServiceID,
		Name:           req.ServiceName,
		ClientName:     req.ClientName,
		ReportedStatus: defaultReportedStatus,
		LastPing:       &now,
		Message:        autoRegisterMessage,
		ScheduleHours:  defaultScheduleHours,
		IsActive:       true,
		CreatedAt:      now,
	}

	if record.Name == "" {
		record.Name = defaultServiceName
	}

	if record.ClientName == "" {
		record.ClientName = defaultClientName
	}

	if err := s.store.CreateService(ctx, record); err != nil {
		if errors.Is(err, store.ErrServiceExists) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to auto-register service %s: %w", req.ServiceID, err)
	}

	s.logger.Info().
		Str("service_id", record.ID).
		Str("client_name", record.ClientName).
		Msg("Auto-registered new service")

	return &HeartbeatResult{
		Timestamp:      now,
		IsActive:       true,
		AutoRegistered: true,
	}, nil
}
