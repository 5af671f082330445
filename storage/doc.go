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


// Package storage defines the persistence abstraction for classification
// history: the RunRepository interface, the storage error taxonomy, and
// the binary serialization of persisted runs (hand-written mus-go codecs
// from core, wrapped with truncation checks).
//
// The badger sub-package provides the embedded BadgerDB implementation.
package storage
