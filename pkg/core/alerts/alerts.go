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

//go:generate mockgen -destination=mock_alerts.go -package=alerts github.com/pulseboard/pulseboard/pkg/core/alerts AlertService

// Package alerts pkg/core/alerts/alerts.go
package alerts

import (
	"context"
	"errors"
)

// Level indicates alert severity.
type Level string

const (
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// WebhookAlert is the payload delivered to escalation webhooks.
type WebhookAlert struct {
	Level     Level          `json:"level"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	ServiceID string         `json:"service_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// AlertService delivers alerts to an external system. Delivery is
// best-effort; callers log failures and never surface them.
type AlertService interface {
	Alert(ctx context.Context, alert *WebhookAlert) error
	IsEnabled() bool
}

var (
	// ErrWebhookDisabled is returned when Alert is called on a webhook
	// whose configuration disables it.
	ErrWebhookDisabled = errors.New("webhook alerter disabled")
)
