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


// Package heuristic implements deterministic concept extraction without a
// model: subject headings and title words become concepts, classified by
// gazetteer and discipline-vocabulary lookups. Used when no AI host is
// configured; also the predictable baseline in tests.
package heuristic

import (
	"context"
	"errors"
	"strings"

	"github.com/fachref/rvkc/ai"
	"github.com/fachref/rvkc/core"
	"github.com/fachref/rvkc/place"
	"github.com/fachref/rvkc/search"
)

// defaultMaxConcepts caps extraction; matches the model-backed default.
const defaultMaxConcepts = 8

// ErrPlacesRequired is returned when no place normalizer is provided.
var ErrPlacesRequired = errors.New("place normalizer required")

// gazetteer is the place lookup the extractor classifies terms with.
type gazetteer interface {
	Canonical(surface string) (string, bool)
}

// Extractor derives concepts from a record by rule. Same record, same
// concepts; no network, no model.
type Extractor struct {
	places      gazetteer
	maxConcepts int
}

var _ ai.ConceptExtractor = (*Extractor)(nil)

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxConcepts caps the number of extracted concepts.
func WithMaxConcepts(max int) Option {
	return func(e *Extractor) {
		if max > 0 {
			e.maxConcepts = max
		}
	}
}

// NewExtractor creates a rule-based extractor. The place normalizer is
// required for classifying geographic terms.
func NewExtractor(places *place.Normalizer, opts ...Option) (*Extractor, error) {
	if places == nil {
		return nil, ErrPlacesRequired
	}

	e := &Extractor{
		places:      places,
		maxConcepts: defaultMaxConcepts,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ExtractConcepts builds ranked concepts from the record's subject
// headings, falling back to title words. Subjects come first: a cataloger
// already judged them central.
func (e *Extractor) ExtractConcepts(_ context.Context, rec *core.Record) ([]core.Concept, error) {
	if rec == nil {
		return nil, core.ErrRecordRequired
	}

	seen := make(map[string]bool)
	concepts := make([]core.Concept, 0, e.maxConcepts)

	add := func(term string) {
		term = strings.TrimSpace(term)
		key := place.NormalizeKey(term)
		if term == "" || seen[key] || len(concepts) >= e.maxConcepts {
			return
		}
		seen[key] = true
		concepts = append(concepts, core.Concept{
			Text: term,
			Kind: e.classify(term),
			Rank: len(concepts),
		})
	}

	for _, subject := range rec.Subjects {
		add(subject)
	}
	for _, token := range search.Tokenize(rec.Title) {
		add(token)
	}

	return concepts, nil
}

// classify decides a term's concept kind: gazetteer hit means place,
// discipline vocabulary hit means discipline, everything else keyword.
func (e *Extractor) classify(term string) core.ConceptKind {
	if _, ok := e.places.Canonical(term); ok {
		return core.KindPlace
	}
	if search.KnownDiscipline(term) {
		return core.KindDiscipline
	}
	return core.KindKeyword
}
