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


// Package rvkc suggests RVK (Regensburger Verbundklassifikation)
// notations for bibliographic records. The Classifier wires the pipeline
// together: concept extraction, hierarchical search over the live RVK
// tree, and optional persistence of classification runs.
package rvkc

import (
	"context"
	"log/slog"
	"time"

	"github.com/fachref/rvkc/ai"
	"github.com/fachref/rvkc/ai/heuristic"
	"github.com/fachref/rvkc/core"
	"github.com/fachref/rvkc/place"
	"github.com/fachref/rvkc/rvk"
	"github.com/fachref/rvkc/search"
	"github.com/fachref/rvkc/storage"
)

// Classifier is the top-level entry point: it turns a record into ranked
// notation suggestions. Safe for concurrent use.
type Classifier struct {
	accessor  *rvk.Accessor
	places    *place.Normalizer
	extractor ai.ConceptExtractor
	searcher  *search.Searcher
	runs      storage.RunRepository
	searchOpt search.Options
	logger    *slog.Logger

	searcherOpts []search.Option
	placeOpts    []place.Option
}

// Option configures a Classifier.
type Option func(*Classifier) error

// WithExtractor sets the concept extractor. Default is the rule-based
// heuristic extractor, which needs no model.
func WithExtractor(extractor ai.ConceptExtractor) Option {
	return func(c *Classifier) error {
		c.extractor = extractor
		return nil
	}
}

// WithRunRepository enables persistence: every classified record's run is
// saved for later review.
func WithRunRepository(runs storage.RunRepository) Option {
	return func(c *Classifier) error {
		c.runs = runs
		return nil
	}
}

// WithSearchOptions overrides the search tuning.
func WithSearchOptions(opts search.Options) Option {
	return func(c *Classifier) error {
		c.searchOpt = opts
		return nil
	}
}

// WithWorkers sets the searcher's subtree exploration pool size.
// 0 disables concurrent exploration.
func WithWorkers(size int) Option {
	return func(c *Classifier) error {
		c.searcherOpts = append(c.searcherOpts, search.WithWorkers(size))
		return nil
	}
}

// WithAliasFile overlays a YAML gazetteer file onto the built-in place
// tables.
func WithAliasFile(path string) Option {
	return func(c *Classifier) error {
		c.placeOpts = append(c.placeOpts, place.WithAliasFile(path))
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		c.searcherOpts = append(c.searcherOpts, search.WithLogger(logger))
		return nil
	}
}

// NewClassifier creates a classifier over a hierarchy source, typically
// an *rvk.Client against the live RVK API.
func NewClassifier(source rvk.Source, opts ...Option) (*Classifier, error) {
	c := &Classifier{
		searchOpt: search.DefaultOptions(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	accessor, err := rvk.NewAccessor(source, rvk.WithAccessorLogger(c.logger))
	if err != nil {
		return nil, err
	}
	c.accessor = accessor

	places, err := place.NewNormalizer(c.placeOpts...)
	if err != nil {
		return nil, err
	}
	c.places = places

	searcher, err := search.NewSearcher(accessor, places, c.searcherOpts...)
	if err != nil {
		return nil, err
	}
	c.searcher = searcher

	if c.extractor == nil {
		extractor, err := heuristic.NewExtractor(places)
		if err != nil {
			searcher.Release()
			return nil, err
		}
		c.extractor = extractor
	}

	return c, nil
}

// ClassifyRecord runs the full pipeline for one record: extract concepts,
// search the hierarchy, assemble a run, and persist it when a repository
// is configured.
func (c *Classifier) ClassifyRecord(ctx context.Context, rec *core.Record) (*core.ClassificationRun, error) {
	if rec == nil {
		return nil, core.ErrRecordRequired
	}

	concepts, err := c.extractor.ExtractConcepts(ctx, rec)
	if err != nil {
		return nil, err
	}

	results, err := c.searcher.Search(ctx, concepts, c.searchOpt)
	if err != nil {
		return nil, err
	}

	run := &core.ClassificationRun{
		ID:    rec.ContentID(),
		Title: rec.Title,
		// Persistence keeps microsecond resolution; truncate up front so
		// a saved run reads back identical.
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		Concepts:  concepts,
		Results:   results,
	}

	if c.runs != nil {
		if err := c.runs.SaveRun(ctx, run); err != nil {
			return nil, err
		}
	}

	c.logger.Debug("record classified",
		"title", rec.Title,
		"concepts", len(concepts),
		"results", len(results))
	return run, nil
}

// Classify searches with pre-extracted concepts, bypassing extraction.
func (c *Classifier) Classify(ctx context.Context, concepts []core.Concept) ([]core.ClassificationResult, error) {
	return c.searcher.Search(ctx, concepts, c.searchOpt)
}

// Lookup resolves a notation to its node and full label path, fetching
// ancestors on demand.
func (c *Classifier) Lookup(ctx context.Context, notation string) (core.NotationNode, []string, error) {
	node, err := c.accessor.Node(ctx, notation)
	if err != nil {
		return core.NotationNode{}, nil, err
	}
	path, err := c.accessor.Path(node)
	if err != nil {
		return core.NotationNode{}, nil, err
	}
	return node, path, nil
}

// Runs exposes the configured run repository, nil when persistence is
// disabled.
func (c *Classifier) Runs() storage.RunRepository {
	return c.runs
}

// Close releases the searcher's worker pool and the run repository.
// The caller owns the storage backend's lifecycle.
func (c *Classifier) Close() error {
	c.searcher.Release()
	if c.runs != nil {
		return c.runs.Close()
	}
	return nil
}
