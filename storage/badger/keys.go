package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/fachref/rvkc/core"
)

// Key prefixes for different data types
const (
	runPrefix     = "run"
	runTimePrefix = "runts"
)

// makeRunKey generates the primary key for a run by ID.
func makeRunKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", runPrefix, id))
}

// makeRunTimeKey generates a composite key for the time index.
// Format: prefix:timestamp:id
func makeRunTimeKey(timestamp time.Time, id core.ID) []byte {
	prefixBytes := []byte(runTimePrefix + ":")
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
