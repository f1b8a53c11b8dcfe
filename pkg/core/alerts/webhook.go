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

package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pulseboard/pulseboard/pkg/logger"
	"github.com/pulseboard/pulseboard/pkg/models"
)

const defaultWebhookTimeout = 10 * time.Second

var errWebhookStatus = fmt.Errorf("webhook returned non-success status")

// WebhookAlerter delivers alerts by POSTing them as JSON to a configured URL.
type WebhookAlerter struct {
	config models.WebhookConfig
	client *http.Client
	logger logger.Logger
}

func NewWebhookAlerter(config models.WebhookConfig, log logger.Logger) *WebhookAlerter {
	timeout := time.Duration(config.Timeout)
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}

	return &WebhookAlerter{
		config: config,
		client: &http.Client{Timeout: timeout},
		logger: log,
	}
}

func (w *WebhookAlerter) IsEnabled() bool {
	return w.config.Enabled && w.config.URL != ""
}

func (w *WebhookAlerter) Alert(ctx context.Context, alert *WebhookAlert) error {
	if !w.IsEnabled() {
		return ErrWebhookDisabled
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	for _, header := range w.config.Headers {
		req.Header.Set(header.Key, header.Value)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %d", errWebhookStatus, resp.StatusCode)
	}

	w.logger.Debug().
		Str("url", w.config.URL).
		Str("title", alert.Title).
		Msg("Delivered webhook alert")

	return nil
}
