package services

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
)

// Ensure IDGenerator implements the interface.
var _ driven.IDGenerator = (*IDGenerator)(nil)

// IDGenerator builds identifiers of the form "<unix micros>_<random uint64>".
// Collisions are not checked.
type IDGenerator struct {
	now    func() time.Time
	random func() uint64
}

// NewIDGenerator creates a generator backed by the wall clock and math/rand/v2.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{
		now:    time.Now,
		random: rand.Uint64,
	}
}

// Generate returns a new identifier.
func (g *IDGenerator) Generate() domain.DocumentID {
	return domain.DocumentID(fmt.Sprintf("%d_%d", g.now().UnixMicro(), g.random()))
}
