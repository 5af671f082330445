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


package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/fachref/rvkc/ai"
	"github.com/fachref/rvkc/core"
)

// ConceptExtractor implements ai.ConceptExtractor using OpenAI-compatible
// chat APIs.
type ConceptExtractor struct {
	client      llms.Model
	temperature float64
	minSalience int
	maxConcepts int
	logger      *slog.Logger
}

// wireConcept matches the structure the model is asked to emit.
type wireConcept struct {
	Term     string `json:"term"`
	Kind     string `json:"kind"`
	Salience int    `json:"salience"`
}

// extraction is the wrapper structure for the model's JSON response.
type extraction struct {
	Concepts []wireConcept `json:"concepts"`
}

// NewConceptExtractor creates a model-backed concept extractor.
//
// Returns the ai.ConceptExtractor interface to enforce abstraction.
func NewConceptExtractor(config *ai.Config) (ai.ConceptExtractor, error) {
	return newConceptExtractor(config)
}

func newConceptExtractor(config *ai.Config) (*ConceptExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &ConceptExtractor{
		client:      client,
		temperature: config.Temperature,
		minSalience: config.MinSalience,
		maxConcepts: config.MaxConcepts,
		logger:      slog.Default().With("component", "openai-extractor"),
	}, nil
}

// ExtractConcepts extracts ranked concepts from a record using the model.
// It filters by salience, caps the concept count, and coerces unknown
// kinds to keywords.
func (e *ConceptExtractor) ExtractConcepts(ctx context.Context, rec *core.Record) ([]core.Concept, error) {
	if rec == nil {
		return nil, core.ErrRecordRequired
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildRecordPrompt(rec)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result extraction
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content,
			llms.WithTemperature(e.temperature), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return []core.Concept{}, nil
		}

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(response.Choices[0].Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse extractor response after retries", "err", lastErr)
		return nil, errors.Join(core.ErrExtractionFailed, lastErr)
	}

	extracted := make([]ai.ExtractedConcept, 0, len(result.Concepts))
	for _, c := range result.Concepts {
		if c.Salience >= e.minSalience && strings.TrimSpace(c.Term) != "" {
			extracted = append(extracted, ai.ExtractedConcept{
				Term:     strings.TrimSpace(c.Term),
				Kind:     c.Kind,
				Salience: c.Salience,
			})
		}
	}

	concepts, coerced := ai.Ranked(extracted)
	if coerced {
		e.logger.Warn("model returned unknown concept kinds, coerced to keyword")
	}
	if len(concepts) > e.maxConcepts {
		concepts = concepts[:e.maxConcepts]
	}

	e.logger.Debug("extracted concepts",
		"total", len(result.Concepts),
		"kept", len(concepts))
	return concepts, nil
}
