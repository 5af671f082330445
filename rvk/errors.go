// Copyright 2026 The rvkc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package rvk

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidResponse indicates the RVK service returned a body that
	// could not be decoded.
	ErrInvalidResponse = errors.New("invalid response from RVK service")

	// ErrSourceRequired is returned when an Accessor is constructed
	// without a source.
	ErrSourceRequired = errors.New("hierarchy source required")

	// ErrInvalidMaxAttempts is returned when RetryWithBackoff is called
	// with a non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)

// APIError represents a non-retryable error response from the RVK API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("RVK API error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("RVK API error: status %d", e.StatusCode)
}
