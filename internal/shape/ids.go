package shape

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync"
)

// IDGen hands out shape IDs.
type IDGen interface {
	Next(k Kind) string
}

// Sequence numbers shapes from 1 in creation order: line-1, line-2, fill-3.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequence returns a deterministic generator. A non-empty prefix is
// prepended to every ID.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) Next(k Kind) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.prefix + k.String() + "-" + strconv.Itoa(s.n)
}

// RandomIDs generates kind-prefixed random IDs.
type RandomIDs struct{}

func (RandomIDs) Next(k Kind) string {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return k.String() + "-" + hex.EncodeToString(b[:])
}
