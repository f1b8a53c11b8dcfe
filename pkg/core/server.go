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

// Package core pkg/core/server.go
package core

import (
	"github.com/pulseboard/pulseboard/pkg/core/alerts"
	"github.com/pulseboard/pulseboard/pkg/logger"
	"github.com/pulseboard/pulseboard/pkg/models"
	"github.com/pulseboard/pulseboard/pkg/store"
)

// Defaults applied when a heartbeat auto-registers an unknown service.
const (
	defaultServiceName    = "New Automation"
	defaultClientName     = "External Account"
	autoRegisterMessage   = "Service auto-registered via heartbeat"
	defaultReportedStatus = statusNominal
)

func NewServer(config *models.CoreConfig, recordStore store.Store, log logger.Logger) *Server {
	server := &Server{
		store:    recordStore,
		webhooks: make([]alerts.AlertService, 0),
		logger:   log,
		config:   config,
	}

	server.initializeWebhooks(config.Webhooks)

	return server
}

func (s *Server) initializeWebhooks(configs []models.WebhookConfig) {
	for i, config := range configs {
		s.logger.Debug().
			Int("index", i).
			Bool("enabled", config.Enabled).
			Msg("Processing webhook config")

		if config.Enabled {
			alerter := alerts.NewWebhookAlerter(config, s.logger)
			s.webhooks = append(s.webhooks, alerter)
		}
	}
}

// Store exposes the record store for wiring and tests.
func (s *Server) Store() store.Store {
	return s.store
}
