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


package core

import "errors"

// Hierarchy access errors. These form the taxonomy every layer wraps with
// fmt.Errorf("%w: ...") so callers can test with errors.Is.
var (
	// ErrUpstreamUnavailable indicates the RVK source could not be reached.
	// Retryable; surfaced once retries are exhausted.
	ErrUpstreamUnavailable = errors.New("hierarchy source unavailable")

	// ErrNotFound indicates a notation that does not exist upstream.
	ErrNotFound = errors.New("notation not found")

	// ErrEmptyHierarchy indicates the source returned zero top-level groups.
	// Distinct from an empty search result, which is a valid outcome.
	ErrEmptyHierarchy = errors.New("hierarchy source returned no top-level groups")

	// ErrMalformedHierarchy indicates a cycle or a traversal ceiling overflow.
	ErrMalformedHierarchy = errors.New("malformed hierarchy")

	// ErrBrokenAncestry indicates a parent link that cannot be resolved.
	ErrBrokenAncestry = errors.New("broken ancestry")
)

// Extraction errors
var (
	// ErrRecordRequired indicates a nil record was passed to an extractor.
	ErrRecordRequired = errors.New("record required")

	// ErrExtractionFailed indicates the extractor backend produced no
	// usable output after retries.
	ErrExtractionFailed = errors.New("concept extraction failed")
)

// Domain validation errors
var (
	// ErrInvalidConcept indicates a Concept failed validation.
	ErrInvalidConcept = errors.New("invalid concept")

	// ErrEmptyConceptText indicates the concept Text field is empty.
	ErrEmptyConceptText = errors.New("concept text cannot be empty")

	// ErrInvalidConceptKind indicates an unknown ConceptKind value.
	ErrInvalidConceptKind = errors.New("invalid concept kind")

	// ErrNegativeRank indicates a concept rank below zero.
	ErrNegativeRank = errors.New("concept rank cannot be negative")

	// ErrInvalidNode indicates a NotationNode failed validation.
	ErrInvalidNode = errors.New("invalid notation node")

	// ErrEmptyNotation indicates the notation code is empty.
	ErrEmptyNotation = errors.New("notation cannot be empty")

	// ErrInvalidCandidate indicates a MatchCandidate failed validation.
	ErrInvalidCandidate = errors.New("invalid match candidate")

	// ErrInvalidMatchKind indicates an unknown MatchKind value.
	ErrInvalidMatchKind = errors.New("invalid match kind")

	// ErrConfidenceOutOfRange indicates a confidence outside [0,1].
	ErrConfidenceOutOfRange = errors.New("confidence must be between 0 and 1")

	// ErrDepthMismatch indicates a candidate depth that differs from its node's depth.
	ErrDepthMismatch = errors.New("candidate depth does not match node depth")

	// ErrInvalidResult indicates a ClassificationResult failed validation.
	ErrInvalidResult = errors.New("invalid classification result")

	// ErrPathDepthMismatch indicates a result path whose length is not depth+1.
	ErrPathDepthMismatch = errors.New("path length does not match depth")

	// ErrInvalidRun indicates a ClassificationRun failed validation.
	ErrInvalidRun = errors.New("invalid classification run")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
