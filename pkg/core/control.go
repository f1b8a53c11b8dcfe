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
	"context"
	"fmt"
	"strings"
)

// SetServiceActive applies a control action to a service's enabled flag and
// returns the resulting value. The flag is orthogonal to computed health:
// services are disabled, never deleted.
func (s *Server) SetServiceActive(ctx context.Context, serviceID, action string) (bool, error) {
	if strings.TrimSpace(serviceID) == "" {
		return false, ErrEmptyServiceID
	}

	record, err := s.store.GetService(ctx, serviceID)
	if err != nil {
		return false, err
	}

	var active bool

	switch action {
	case ActionEnable:
		active = true
	case ActionDisable:
		active = false
	case ActionToggle:
		active = !record.IsActive
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	if err := s.store.SetServiceActive(ctx, serviceID, active); err != nil {
		return false, fmt.Errorf("failed to set active flag for %s: %w", serviceID, err)
	}

	s.logger.Info().
		Str("service_id", serviceID).
		Str("action", action).
		Bool("is_active", active).
		Msg("Applied service control action")

	return active, nil
}
