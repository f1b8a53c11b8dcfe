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

import "errors"

var (
	// ErrEmptyServiceID indicates a request without the required service id.
	ErrEmptyServiceID = errors.New("service_id is required")
	// ErrUnknownAction indicates a control request with an unrecognized action.
	ErrUnknownAction = errors.New("unknown control action")

	errFailedToSendAlerts = errors.New("failed to send alerts")
)
