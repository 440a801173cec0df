// Package ids generates prefixed, lexically sortable identifiers.
package ids

import (
	"crypto/rand"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator returns a new identifier on every call.
type Generator func() string

var (
	entropyMu sync.Mutex
	entropy   io.Reader = ulid.Monotonic(rand.Reader, 0)
)

// New returns a generator producing "<prefix>_<ULID>" identifiers.
func New(prefix string) Generator {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), "_")
	return func() string {
		entropyMu.Lock()
		id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
		entropyMu.Unlock()
		if prefix == "" {
			return id.String()
		}
		return prefix + "_" + id.String()
	}
}

// Sequence returns a deterministic generator ("<prefix>_1", "<prefix>_2", ...), used by tests.
func Sequence(prefix string) Generator {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + "_" + strconv.Itoa(n)
	}
}
