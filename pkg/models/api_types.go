package models

// HeartbeatRequest is the payload sent by an external job to report it is
// alive. Only ServiceID is required; ServiceName and ClientName are used on
// auto-registration and ignored afterwards.
type HeartbeatRequest struct {
	// Stable external identifier of the reporting service
	ServiceID string `json:"service_id" example:"nightly-export"`
	// Optional self-reported status (free-form; "error", "failure" and
	// "warning" are interpreted by the classifier)
	Status string `json:"status,omitempty" example:"nominal"`
	// Optional free-text note shown on the dashboard
	Message string `json:"message,omitempty" example:"processed 1423 rows"`
	// Display name used when the service is auto-registered
	ServiceName string `json:"service_name,omitempty" example:"Nightly Export"`
	// Tenant label used when the service is auto-registered
	ClientName string `json:"client_name,omitempty" example:"Acme"`
}

// HeartbeatResponse acknowledges an accepted heartbeat.
type HeartbeatResponse struct {
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp" example:"2026-08-29T10:00:00Z"`
	IsActive  bool   `json:"is_active"`
	Message   string `json:"message,omitempty" example:"Service auto-registered"`
}

// ControlRequest toggles the enabled flag of a service.
type ControlRequest struct {
	ServiceID string `json:"service_id"`
	// One of "enable", "disable", "toggle"
	Action string `json:"action" example:"toggle"`
}

// ControlResponse reports the active flag after a control action.
type ControlResponse struct {
	Success  bool `json:"success"`
	IsActive bool `json:"is_active"`
}

// LoginRequest carries local administrator credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ErrorResponse represents an API error response.
// @Description Error information returned from the API.
type ErrorResponse struct {
	// Error message
	Message string `json:"message" example:"Invalid request parameters"`
	// HTTP status code
	Status int `json:"status" example:"400"`
}
