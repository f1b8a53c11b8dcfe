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
	"time"

	"github.com/pulseboard/pulseboard/pkg/core/alerts"
	"github.com/pulseboard/pulseboard/pkg/models"
)

const alertDispatchTimeout = 30 * time.Second

// escalateFailure fires an alert for a failing heartbeat without blocking
// the response path. Dispatch runs on its own context so a slow webhook
// outlives the request, and failures are logged, never surfaced.
func (s *Server) escalateFailure(record *models.ServiceRecord, message string, timestamp time.Time) {
	if len(s.webhooks) == 0 {
		return
	}

	alert := &alerts.WebhookAlert{
		Level: alerts.Error,
		Title: fmt.Sprintf("Service Failure: %s", record.Name),
		Message: fmt.Sprintf("%s (%s) reported a failure at %s: %s",
			record.Name, record.ClientName, timestamp.Format(time.RFC3339), message),
		Timestamp: timestamp.UTC().Format(time.RFC3339),
		ServiceID: record.ID,
		Details: map[string]any{
			"client_name": record.ClientName,
			"message":     message,
		},
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), alertDispatchTimeout)
		defer cancel()

		if err := s.sendAlert(ctx, alert); err != nil {
			s.logger.Error().
				Err(err).
				Str("service_id", record.ID).
				Msg("Failed to send failure alert")
		}
	}()
}

func (s *Server) sendAlert(ctx context.Context, alert *alerts.WebhookAlert) error {
	var errs []error

	s.logger.Info().
		Str("alert_message", alert.Message).
		Msg("Sending alert")

	for _, webhook := range s.webhooks {
		if err := webhook.Alert(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", errFailedToSendAlerts, errs)
	}

	return nil
}
