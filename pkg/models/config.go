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

package models

// CoreConfig is the top-level configuration for the core service.
type CoreConfig struct {
	ListenAddr string `json:"listen_addr"`
	// Shared secret expected in the X-API-Key header of heartbeat requests.
	// Overridden by the API_KEY environment variable when set.
	APIKey   string          `json:"api_key"`
	Store    StoreConfig     `json:"store"`
	Webhooks []WebhookConfig `json:"webhooks,omitempty"`
	Auth     *AuthConfig     `json:"auth"`
	CORS     CORSConfig      `json:"cors,omitempty"`
	Logging  *LogConfig      `json:"logging,omitempty"`
}

// StoreConfig selects and configures the record store backend.
type StoreConfig struct {
	// One of "memory", "nats", "postgres"
	Type string `json:"type"`
	// NATS server URL and KV bucket name (type "nats")
	NatsURL string `json:"nats_url,omitempty"`
	Bucket  string `json:"bucket,omitempty"`
	// Postgres connection string (type "postgres")
	DSN string `json:"dsn,omitempty"`
}

// WebhookConfig configures one escalation webhook target.
type WebhookConfig struct {
	Enabled bool     `json:"enabled"`
	URL     string   `json:"url"`
	Timeout Duration `json:"timeout,omitempty"`
	Headers []Header `json:"headers,omitempty"` // Optional custom headers
}

// Header represents a custom HTTP header.
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CORSConfig holds the CORS settings for the HTTP API.
type CORSConfig struct {
	AllowedOrigins   []string `json:"allowed_origins,omitempty"`
	AllowCredentials bool     `json:"allow_credentials,omitempty"`
}

// LogConfig mirrors logger.Config so a service config file can carry the
// logging section without importing the logger package.
type LogConfig struct {
	Level      string `json:"level,omitempty"`
	Debug      bool   `json:"debug,omitempty"`
	Output     string `json:"output,omitempty"`
	TimeFormat string `json:"time_format,omitempty"`
}
