package ids

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }

type Generator interface {
	New() (string, error)
}

// ULID generates monotonic ULIDs. Safe for concurrent use.
type ULID struct {
	mu      sync.Mutex
	entropy io.Reader
	clock   Clock
}

func NewULID() *ULID {
	return &ULID{entropy: ulid.Monotonic(rand.Reader, 0), clock: RealClock{}}
}

func (g *ULID) New() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(g.clock.Now()), g.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Valid reports whether s parses as a ULID. Used to reject garbage path params early.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
