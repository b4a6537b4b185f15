package topology

import (
	"sync/atomic"

	"github.com/rs/xid"
)

// An IDGenerator hands out device IDs. Each topology owns one, so IDs never
// leak from one build to another.
type IDGenerator interface {
	Generate() uint64
}

// NewSequentialIDGenerator returns a generator whose first ID is 1.
func NewSequentialIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() uint64 {
	return atomic.AddUint64(&g.nextID, 1)
}

// newRunID returns a globally unique identifier for a topology instance.
func newRunID() string {
	return xid.New().String()
}
