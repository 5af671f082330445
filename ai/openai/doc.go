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


// Package openai implements concept extraction against OpenAI-compatible
// chat APIs (OpenAI, Ollama, LocalAI, vLLM).
//
// The extractor prompts the model with a German cataloging instruction
// and the record's fields, requests JSON mode at temperature 0, and
// hardens parsing against the usual small-model failure modes: markdown
// code fences, missing key quotes, the occasional unparseable response
// (up to 3 attempts).
package openai
