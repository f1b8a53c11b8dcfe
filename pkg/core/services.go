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
	"fmt"
	"strings"
	"time"

	"github.com/pulseboard/pulseboard/pkg/models"
)

// ListServices returns the client-facing view of all services, freshly
// classified with a single "now" per call. When clientFilter is non-empty,
// only records whose client name matches case-insensitively are returned;
// store iteration order (insertion order) is preserved.
func (s *Server) ListServices(ctx context.Context, clientFilter string) ([]models.ServiceView, error) {
	records, err := s.store.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	now := time.Now().UTC()
	views := make([]models.ServiceView, 0, len(records))

	for i := range records {
		record := &records[i]

		if clientFilter != "" && !strings.EqualFold(record.ClientName, clientFilter) {
			continue
		}

		views = append(views, models.ServiceView{
			ID:         record.ID,
			Name:       record.Name,
			ClientName: record.ClientName,
			Status:     ClassifyHealth(now, record.LastPing, record.ScheduleHours, record.ReportedStatus),
			LastPing:   formatTimeAgo(now, record.LastPing),
			Message:    record.Message,
			TriggerURL: record.TriggerURL,
			IsActive:   record.IsActive,
		})
	}

	return views, nil
}
