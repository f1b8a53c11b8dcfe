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
	"time"

	"github.com/pulseboard/pulseboard/pkg/core/alerts"
	"github.com/pulseboard/pulseboard/pkg/logger"
	"github.com/pulseboard/pulseboard/pkg/models"
	"github.com/pulseboard/pulseboard/pkg/store"
)

// Server orchestrates heartbeat ingestion, health classification, the
// enable/disable control plane and escalation webhooks. It holds no mutable
// request state; every operation runs against the record store.
type Server struct {
	store    store.Store
	webhooks []alerts.AlertService
	logger   logger.Logger
	config   *models.CoreConfig
}

// HeartbeatResult reports the outcome of one processed heartbeat.
type HeartbeatResult struct {
	Timestamp      time.Time
	IsActive       bool
	AutoRegistered bool
}

// Control plane actions.
const (
	ActionEnable  = "enable"
	ActionDisable = "disable"
	ActionToggle  = "toggle"
)
