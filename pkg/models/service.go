package models

import "time"

// HealthState is the derived liveness classification for a service. It is
// never persisted; it is recomputed from the record on every read.
type HealthState string

const (
	HealthNominal HealthState = "nominal"
	HealthWarning HealthState = "warning"
	HealthOffline HealthState = "offline"
)

// ServiceRecord represents one monitored automation job.
type ServiceRecord struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	ClientName     string     `json:"client_name"`
	ReportedStatus string     `json:"reported_status,omitempty"`
	LastPing       *time.Time `json:"last_ping,omitempty"`
	Message        string     `json:"message,omitempty"`
	ScheduleHours  float64    `json:"schedule_hours"`
	TriggerURL     string     `json:"trigger_url,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ServiceView is the client-facing projection of a ServiceRecord with the
// computed health state and a human-readable "time ago" string.
type ServiceView struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	ClientName string      `json:"client_name"`
	Status     HealthState `json:"status"`
	LastPing   string      `json:"last_ping"`
	Message    string      `json:"message"`
	TriggerURL string      `json:"trigger_url,omitempty"`
	IsActive   bool        `json:"is_active"`
}
