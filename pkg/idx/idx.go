// Package idx generates the sortable identifiers used for users, accounts and
// sessions.
package idx

import (
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a canonical 26 character ULID string.
type ID string

// Zero is the empty ID.
const Zero ID = ""

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

// Generator hands out ULIDs from a monotonic entropy source. It is safe for
// concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewGenerator returns a Generator reading randomness from r. A nil clock
// uses time.Now.
func NewGenerator(r io.Reader, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		entropy: ulid.Monotonic(r, 0),
		now:     now,
	}
}

// New returns an ID stamped with the generator's clock.
func (g *Generator) New() ID {
	return g.NewAt(g.now())
}

// NewAt returns an ID stamped with t. IDs minted inside the same millisecond
// stay strictly increasing.
func (g *Generator) NewAt(t time.Time) ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := ulid.MustNew(ulid.Timestamp(t.UTC()), g.entropy)
	return ID(u.String())
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
)

func std() *Generator {
	defaultOnce.Do(func() {
		defaultGen = NewGenerator(rand.Reader, nil)
	})
	return defaultGen
}

// New returns a new ID from the process wide generator.
func New() ID { return std().New() }

// NewAt returns an ID from the process wide generator stamped with t.
func NewAt(t time.Time) ID { return std().NewAt(t) }

// Parse validates s as a ULID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id == Zero }

func (id ID) String() string { return string(id) }

// Time returns the millisecond timestamp embedded in id, or the zero time for
// an invalid id.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}

// Compare orders a and b lexically, which for ULIDs is creation order.
func Compare(a, b ID) int {
	return strings.Compare(string(a), string(b))
}
