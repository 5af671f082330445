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


// Package rvk provides read-only access to the Regensburg Classification
// (Regensburger Verbundklassifikation) hierarchy.
//
// The Client talks to the public RVK lookup API with rate limiting and
// retry-with-backoff on transient failures. The Accessor sits on top of a
// Client (or any Source) and maintains a session-scoped cache of
// core.NotationNode values, so repeated lookups during one classification
// request never re-query the remote service. Path reconstruction walks the
// cache only and never triggers new fetches.
package rvk
