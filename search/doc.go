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

// Package search implements hierarchical classification search over the
// RVK notation tree.
//
// The Searcher walks the hierarchy breadth-first from the scored
// top-level groups, matching each visited node against the ranked
// concepts of a record:
//   - Exact and containment matches against node labels
//   - Synonym expansion for common German cataloging vocabulary
//   - Discipline terms mapped to their Hauptgruppen
//   - Geographic matching with country-over-subdivision precedence
//
// Candidates are filtered by depth preference, deduplicated and ranked
// by confidence before being returned as classification suggestions.
package search
