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

// Package api pkg/core/api/interfaces.go
package api

//go:generate mockgen -destination=mock_server.go -package=api github.com/pulseboard/pulseboard/pkg/core/api CoreService

import (
	"context"

	"github.com/pulseboard/pulseboard/pkg/core"
	"github.com/pulseboard/pulseboard/pkg/models"
)

// CoreService is the heartbeat engine surface the API server exposes.
type CoreService interface {
	ProcessHeartbeat(ctx context.Context, req *models.HeartbeatRequest) (*core.HeartbeatResult, error)
	SetServiceActive(ctx context.Context, serviceID, action string) (bool, error)
	ListServices(ctx context.Context, clientFilter string) ([]models.ServiceView, error)
}
