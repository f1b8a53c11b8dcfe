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
	"net/http"
)

// @Summary List monitored services
// @Description Returns all services with freshly computed health states. Filtering by client is public (it powers the status page); an unfiltered listing requires administrator authentication.
// @Tags Services
// @Accept json
// @Produce json
// @Param client query string false "Restrict results to one client"
// @Success 200 {array} models.ServiceView "Service views"
// @Failure 401 {object} models.ErrorResponse "Unfiltered listing without admin token"
// @Failure 500 {object} models.ErrorResponse "Record store failure"
// @Router /api/services [get]
// @Security ApiKeyAuth
func (s *APIServer) handleListServices(w http.ResponseWriter, r *http.Request) {
	clientFilter := r.URL.Query().Get("client")

	// Without a client filter the full fleet is exposed, so the caller
	// must be an authenticated administrator. The filtered view never
	// leaks other clients' records.
	if clientFilter == "" {
		if _, err := s.verifyRequestToken(r); err != nil {
			writeError(w, "Unauthorized", http.StatusUnauthorized)

			return
		}
	}

	views, err := s.coreService.ListServices(r.Context(), clientFilter)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list services")
		writeError(w, "Failed to fetch services", http.StatusInternalServerError)

		return
	}

	if err := s.encodeJSONResponse(w, views); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding services response")
	}
}
