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


package storage

import (
	"errors"

	"github.com/fachref/rvkc/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, errors.Join(ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalRun serializes a ClassificationRun to bytes.
func MarshalRun(run *core.ClassificationRun) []byte {
	buf := make([]byte, core.ClassificationRunMUS.Size(*run))
	core.ClassificationRunMUS.Marshal(*run, buf)
	return buf
}

// UnmarshalRun deserializes a ClassificationRun from bytes. A value that
// does not consume the whole buffer means a partial or mixed-up write and
// is reported as truncated data.
func UnmarshalRun(data []byte) (*core.ClassificationRun, error) {
	run, n, err := core.ClassificationRunMUS.Unmarshal(data)
	if err != nil {
		return nil, errors.Join(ErrSerializationFailed, err)
	}
	if n != len(data) {
		return nil, ErrTruncatedData
	}
	// Stored timestamps are UTC; the codec decodes into the local zone.
	run.CreatedAt = run.CreatedAt.UTC()
	return &run, nil
}
