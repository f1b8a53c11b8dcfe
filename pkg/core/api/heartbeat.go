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

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pulseboard/pulseboard/pkg/core"
	"github.com/pulseboard/pulseboard/pkg/models"
)

const autoRegisteredNotice = "Service auto-registered"

// @Summary Report a heartbeat
// @Description Records a liveness ping from an external automation job, auto-registering unknown services
// @Tags Heartbeat
// @Accept json
// @Produce json
// @Param request body models.HeartbeatRequest true "Heartbeat payload"
// @Success 200 {object} models.HeartbeatResponse "Heartbeat accepted"
// @Failure 400 {object} models.ErrorResponse "Missing service_id"
// @Failure 401 {object} models.ErrorResponse "Missing or invalid API key"
// @Failure 500 {object} models.ErrorResponse "Record store failure"
// @Router /api/heartbeat [post]
// @Security ApiKeyAuth
func (s *APIServer) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	var req models.HeartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)

		return
	}

	result, err := s.coreService.ProcessHeartbeat(r.Context(), &req)
	if err != nil {
		if errors.Is(err, core.ErrEmptyServiceID) {
			writeError(w, "service_id is required", http.StatusBadRequest)

			return
		}

		s.logger.Error().
			Err(err).
			Str("service_id", req.ServiceID).
			Msg("Heartbeat processing failed")
		writeError(w, "Failed to process heartbeat", http.StatusInternalServerError)

		return
	}

	resp := models.HeartbeatResponse{
		Success:   true,
		Timestamp: result.Timestamp.Format(time.RFC3339),
		IsActive:  result.IsActive,
	}

	if result.AutoRegistered {
		resp.Message = autoRegisteredNotice
	}

	if err := s.encodeJSONResponse(w, resp); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding heartbeat response")
	}
}
