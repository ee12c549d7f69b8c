package id

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator creates opaque, sortable identifiers.
type Generator interface {
	New() string
}

// ULID generates lexically sortable ids from the current time and a
// monotonic entropy source.
type ULID struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

func NewULID() *ULID {
	return &ULID{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		now:     time.Now,
	}
}

func (g *ULID) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}
