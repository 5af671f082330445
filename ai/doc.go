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


// Package ai defines the concept extraction abstraction used to turn
// bibliographic records into ranked search concepts.
//
// The ConceptExtractor interface decouples the classification pipeline
// from any particular extraction backend. Three implementations exist:
//
//   - ai/openai: model-backed extraction via OpenAI-compatible chat APIs
//   - ai/heuristic: deterministic rule-based extraction, no model needed
//   - ai/mock: test double with function-field behavior injection
//
// Extractors return concepts ordered by salience with Rank fields
// assigned; downstream scoring discounts lower-ranked concepts.
package ai
