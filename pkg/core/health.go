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

// Package core pkg/core/health.go
package core

import (
	"math"
	"strings"
	"time"

	"github.com/pulseboard/pulseboard/pkg/models"
)

const (
	// defaultScheduleHours is the expected ping interval applied when a
	// record carries no usable schedule.
	defaultScheduleHours = 24
	// offlineGraceFactor extends the schedule by 20% before silence is
	// escalated from warning to offline.
	offlineGraceFactor = 1.2
)

const (
	statusError   = "error"
	statusFailure = "failure"
	statusWarning = "warning"
	statusNominal = "nominal"
)

// ClassifyHealth derives the health state of a service from its last ping
// time, expected schedule and self-reported status. Pure: same inputs and
// the same now always yield the same state.
//
// An explicit error/failure or warning report always overrides time-based
// freshness; a service can self-report unhealthy right after pinging.
func ClassifyHealth(now time.Time, lastPing *time.Time, scheduleHours float64, reportedStatus string) models.HealthState {
	if lastPing == nil {
		return models.HealthOffline
	}

	switch normalizeStatus(reportedStatus) {
	case statusError, statusFailure:
		return models.HealthOffline
	case statusWarning:
		return models.HealthWarning
	}

	if scheduleHours <= 0 || math.IsNaN(scheduleHours) {
		scheduleHours = defaultScheduleHours
	}

	elapsed := now.Sub(*lastPing).Hours()

	switch {
	case elapsed > scheduleHours*offlineGraceFactor:
		return models.HealthOffline
	case elapsed >= scheduleHours:
		return models.HealthWarning
	default:
		return models.HealthNominal
	}
}

// normalizeStatus lowercases and trims a reported status. Senders are
// free-text; normalization happens only at the classifier boundary.
func normalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// isFailureStatus reports whether a status should trigger escalation.
func isFailureStatus(status string) bool {
	normalized := normalizeStatus(status)

	return normalized == statusError || normalized == statusFailure
}
