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


// Package place maps geographic surface forms to their canonical
// country-level region. The gazetteer is static; an overlay can extend it
// per deployment. Lookup is exact after normalization, never fuzzy, and a
// miss is not an error: an unresolved place stays searchable by its
// literal text.
package place

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/fachref/rvkc/core"
)

// Normalizer resolves place concepts to their canonical country-level
// region. It is immutable after construction and safe for concurrent use.
type Normalizer struct {
	aliases    map[string]string   // surface form -> canonical region key
	indicators map[string][]string // canonical region key -> surface forms
	display    map[string]string   // canonical region key -> display label
}

// Option configures a Normalizer.
type Option func(*Normalizer) error

// aliasFile is the YAML shape accepted by WithAliasFile.
type aliasFile struct {
	Aliases    map[string]string   `yaml:"aliases"`
	Indicators map[string][]string `yaml:"indicators"`
}

// WithAliases merges extra surface form -> canonical region aliases into
// the static table. Keys and values are normalized before insertion.
func WithAliases(aliases map[string]string) Option {
	return func(n *Normalizer) error {
		for surface, region := range aliases {
			n.addAlias(surface, region)
		}
		return nil
	}
}

// WithAliasFile loads a YAML overlay of aliases and region indicators:
//
//	aliases:
//	  görlitz: deutschland
//	indicators:
//	  deutschland: [görlitz, zwickau]
func WithAliasFile(path string) Option {
	return func(n *Normalizer) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading alias file: %w", err)
		}
		var overlay aliasFile
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			return fmt.Errorf("parsing alias file %s: %w", path, err)
		}
		for surface, region := range overlay.Aliases {
			n.addAlias(surface, region)
		}
		for region, surfaces := range overlay.Indicators {
			key := NormalizeKey(region)
			for _, surface := range surfaces {
				n.indicators[key] = append(n.indicators[key], NormalizeKey(surface))
			}
		}
		return nil
	}
}

// NewNormalizer creates a place normalizer over the static gazetteer plus
// any overlay options.
func NewNormalizer(opts ...Option) (*Normalizer, error) {
	n := &Normalizer{
		aliases:    buildAliasIndex(),
		indicators: make(map[string][]string, len(regionIndicators)),
		display:    make(map[string]string, len(regionDisplay)),
	}
	for region, indicators := range regionIndicators {
		n.indicators[region] = append([]string(nil), indicators...)
	}
	for region, label := range regionDisplay {
		n.display[region] = label
	}

	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}

	return n, nil
}

// Normalize resolves a place concept's country-level form. Non-place
// concepts are returned unchanged. A place concept gets Normalized set to
// the canonical region label on an alias hit, or to its own surface text
// on a miss. Pure: same input, same output; never an error.
func (n *Normalizer) Normalize(c core.Concept) core.Concept {
	if c.Kind != core.KindPlace {
		return c
	}

	normalized := c
	if region, ok := n.aliases[NormalizeKey(c.Text)]; ok {
		normalized.Normalized = n.displayName(region)
	} else {
		normalized.Normalized = c.Text
	}
	return normalized
}

// Canonical looks up the canonical region for a surface form.
func (n *Normalizer) Canonical(surface string) (string, bool) {
	region, ok := n.aliases[NormalizeKey(surface)]
	if !ok {
		return "", false
	}
	return n.displayName(region), true
}

// IsRegion reports whether name is a canonical gazetteer region.
func (n *Normalizer) IsRegion(name string) bool {
	_, ok := n.indicators[NormalizeKey(name)]
	return ok
}

// IndicatorsFor returns the surface forms indicating a region, or nil for
// an unknown region.
func (n *Normalizer) IndicatorsFor(region string) []string {
	return n.indicators[NormalizeKey(region)]
}

func (n *Normalizer) addAlias(surface, region string) {
	key := NormalizeKey(region)
	n.aliases[NormalizeKey(surface)] = key
	if _, ok := n.display[key]; !ok {
		n.display[key] = strings.TrimSpace(region)
	}
}

func (n *Normalizer) displayName(region string) string {
	if label, ok := n.display[region]; ok {
		return label
	}
	return region
}

// NormalizeKey canonicalizes a surface form for table lookup: NFKC
// normalization (umlaut and width variants collapse to one spelling),
// control characters stripped, lowercased, trimmed.
func NormalizeKey(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.ToLower(strings.TrimSpace(s))
}
