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

	"github.com/pulseboard/pulseboard/pkg/core"
	"github.com/pulseboard/pulseboard/pkg/models"
	"github.com/pulseboard/pulseboard/pkg/store"
)

// @Summary Enable, disable or toggle a service
// @Description Flips the enabled flag of a monitored service without touching its health state
// @Tags Services
// @Accept json
// @Produce json
// @Param request body models.ControlRequest true "Control action"
// @Success 200 {object} models.ControlResponse "Resulting active flag"
// @Failure 400 {object} models.ErrorResponse "Missing parameters or unknown action"
// @Failure 401 {object} models.ErrorResponse "Missing or invalid bearer token"
// @Failure 404 {object} models.ErrorResponse "Unknown service id"
// @Router /api/services/control [post]
// @Security ApiKeyAuth
func (s *APIServer) handleServiceControl(w http.ResponseWriter, r *http.Request) {
	var req models.ControlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)

		return
	}

	isActive, err := s.coreService.SetServiceActive(r.Context(), req.ServiceID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrEmptyServiceID), errors.Is(err, core.ErrUnknownAction):
			writeError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, store.ErrServiceNotFound):
			writeError(w, "Service not found", http.StatusNotFound)
		default:
			s.logger.Error().
				Err(err).
				Str("service_id", req.ServiceID).
				Msg("Service control failed")
			writeError(w, "Failed to apply control action", http.StatusInternalServerError)
		}

		return
	}

	resp := models.ControlResponse{
		Success:  true,
		IsActive: isActive,
	}

	if err := s.encodeJSONResponse(w, resp); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding control response")
	}
}
