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

import (
	"fmt"
	"time"
)

// ValidateConcept validates a Concept according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - Kind must be valid (keyword, discipline or place)
//   - Rank must not be negative
//
// NOT validated (populated by the place normalizer):
//   - Normalized (empty until a place concept is normalized)
func ValidateConcept(c *Concept) error {
	if c == nil {
		return fmt.Errorf("%w: concept is nil", ErrInvalidConcept)
	}

	if c.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, ErrEmptyConceptText)
	}

	if err := ValidateConceptKind(c.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, err)
	}

	if c.Rank < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, ErrNegativeRank)
	}

	return nil
}

// ValidateConceptKind validates that a ConceptKind has a valid value.
func ValidateConceptKind(kind ConceptKind) error {
	switch kind {
	case KindKeyword, KindDiscipline, KindPlace:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidConceptKind, string(kind))
}

// ValidateNode validates a NotationNode according to domain rules.
//
// Validation rules:
//   - Notation must not be empty
//   - Depth must not be negative
//   - Depth zero and an empty parent link imply each other
//
// NOT validated (populated incrementally by the accessor):
//   - Children (empty until the node has been listed)
//   - Label (upstream data may carry blank labels)
func ValidateNode(n *NotationNode) error {
	if n == nil {
		return fmt.Errorf("%w: node is nil", ErrInvalidNode)
	}

	if n.Notation == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNode, ErrEmptyNotation)
	}

	if n.Depth < 0 {
		return fmt.Errorf("%w: notation %s has depth %d", ErrInvalidNode, n.Notation, n.Depth)
	}

	if (n.Depth == 0) != (n.Parent == "") {
		return fmt.Errorf("%w: notation %s has depth %d with parent %q",
			ErrInvalidNode, n.Notation, n.Depth, n.Parent)
	}

	return nil
}

// ValidateMatchKind validates that a MatchKind has a valid value.
func ValidateMatchKind(kind MatchKind) error {
	switch kind {
	case MatchExactLabel, MatchAlias, MatchDisciplineCategory:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidMatchKind, string(kind))
}

// ValidateCandidate validates a MatchCandidate according to domain rules.
//
// Validation rules:
//   - Node and Concept must be valid
//   - Kind must be valid
//   - Confidence must lie in [0,1]
//   - Depth must equal the node's depth
func ValidateCandidate(mc *MatchCandidate) error {
	if mc == nil {
		return fmt.Errorf("%w: candidate is nil", ErrInvalidCandidate)
	}

	if err := ValidateNode(&mc.Node); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, err)
	}

	if err := ValidateConcept(&mc.Concept); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, err)
	}

	if err := ValidateMatchKind(mc.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, err)
	}

	if mc.Confidence < 0 || mc.Confidence > 1 {
		return fmt.Errorf("%w: %w (%f)", ErrInvalidCandidate, ErrConfidenceOutOfRange, mc.Confidence)
	}

	if mc.Depth != mc.Node.Depth {
		return fmt.Errorf("%w: %w (candidate %d, node %d)",
			ErrInvalidCandidate, ErrDepthMismatch, mc.Depth, mc.Node.Depth)
	}

	return nil
}

// ValidateResult validates a ClassificationResult according to domain rules.
//
// Validation rules:
//   - Notation must not be empty
//   - Confidence must lie in [0,1]
//   - Path length must equal Depth+1
func ValidateResult(r *ClassificationResult) error {
	if r == nil {
		return fmt.Errorf("%w: result is nil", ErrInvalidResult)
	}

	if r.Notation == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResult, ErrEmptyNotation)
	}

	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("%w: %w (%f)", ErrInvalidResult, ErrConfidenceOutOfRange, r.Confidence)
	}

	if len(r.Path) != r.Depth+1 {
		return fmt.Errorf("%w: %w (path %d, depth %d)",
			ErrInvalidResult, ErrPathDepthMismatch, len(r.Path), r.Depth)
	}

	return nil
}

// ValidateRun validates a ClassificationRun according to domain rules.
//
// Validation rules:
//   - CreatedAt must not be in the future
//   - Every result must be valid
//
// NOT validated:
//   - ID (0 is a legal, if unlikely, content hash)
//   - Concepts and Results may be empty (a run with no match is still a run)
func ValidateRun(run *ClassificationRun) error {
	if run == nil {
		return fmt.Errorf("%w: run is nil", ErrInvalidRun)
	}

	if !IsValidTimestamp(run.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidRun, ErrInvalidTimestamp)
	}

	for i := range run.Results {
		if err := ValidateResult(&run.Results[i]); err != nil {
			return fmt.Errorf("%w: result %d: %w", ErrInvalidRun, i, err)
		}
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
