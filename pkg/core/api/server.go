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

// Package api provides the HTTP API server for Pulseboard
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pulseboard/pulseboard/pkg/core/auth"
	pbHttp "github.com/pulseboard/pulseboard/pkg/http"
	"github.com/pulseboard/pulseboard/pkg/logger"
	"github.com/pulseboard/pulseboard/pkg/models"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

type APIServer struct {
	router      *mux.Router
	coreService CoreService
	authService auth.AuthService
	apiKey      string
	corsConfig  models.CORSConfig
	logger      logger.Logger
}

// NewAPIServer creates a new API server instance with the given configuration
func NewAPIServer(config models.CORSConfig, options ...func(server *APIServer)) *APIServer {
	s := &APIServer{
		router:     mux.NewRouter(),
		corsConfig: config,
	}

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

// WithCoreService wires the heartbeat engine into the API server
func WithCoreService(c CoreService) func(server *APIServer) {
	return func(server *APIServer) {
		server.coreService = c
	}
}

// WithAuthService adds an authentication service to the API server
func WithAuthService(a auth.AuthService) func(server *APIServer) {
	return func(server *APIServer) {
		server.authService = a
	}
}

// WithAPIKey sets the shared secret expected from heartbeat senders
func WithAPIKey(key string) func(server *APIServer) {
	return func(server *APIServer) {
		server.apiKey = key
	}
}

// WithLogger sets the logger used by the API server
func WithLogger(log logger.Logger) func(server *APIServer) {
	return func(server *APIServer) {
		server.logger = log
	}
}

// Router exposes the configured router, mainly for tests.
func (s *APIServer) Router() *mux.Router {
	return s.router
}

// setupRoutes configures the HTTP routes for the API server.
func (s *APIServer) setupRoutes() {
	s.router.Use(func(next http.Handler) http.Handler {
		return pbHttp.CommonMiddleware(next, s.corsConfig)
	})

	s.router.HandleFunc("/auth/login", s.handleLocalLogin).Methods(http.MethodPost, http.MethodOptions)

	s.router.Handle("/api/heartbeat",
		pbHttp.APIKeyMiddleware(s.apiKey)(http.HandlerFunc(s.handleHeartbeat))).
		Methods(http.MethodPost, http.MethodOptions)

	s.router.Handle("/api/services/control",
		s.authMiddleware(http.HandlerFunc(s.handleServiceControl))).
		Methods(http.MethodPost, http.MethodOptions)

	// Listing authenticates conditionally: a client-filtered call powers
	// the public status page, an unfiltered call is admin-only.
	s.router.HandleFunc("/api/services", s.handleListServices).Methods(http.MethodGet, http.MethodOptions)
}

func (s *APIServer) Start(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	return srv.ListenAndServe()
}

func (s *APIServer) encodeJSONResponse(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")

	return json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)

	errResponse := models.ErrorResponse{
		Message: message,
		Status:  statusCode,
	}

	if err := json.NewEncoder(w).Encode(errResponse); err != nil {
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}

// verifyRequestToken extracts and verifies the bearer token on a request.
func (s *APIServer) verifyRequestToken(r *http.Request) (*models.User, error) {
	header := r.Header.Get("Authorization")

	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return nil, errMissingToken
	}

	return s.authService.VerifyToken(r.Context(), header[len(prefix):])
}

func (s *APIServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.verifyRequestToken(r); err != nil {
			writeError(w, "Unauthorized", http.StatusUnauthorized)

			return
		}

		next.ServeHTTP(w, r)
	})
}
