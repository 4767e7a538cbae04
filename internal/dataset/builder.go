package dataset

import (
	"math/rand"
	"time"
)

// Builder shuffles an example pool and splits it into training and
// validation partitions. It must only run once the pool is complete: it is
// a barrier over the whole run, not a streaming consumer.
type Builder struct {
	rng *rand.Rand
}

// NewBuilder creates a Builder drawing shuffle order from rng.
// A nil rng gets a time-seeded source, making dataset composition
// non-deterministic by default; tests pass a fixed seed.
func NewBuilder(rng *rand.Rand) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Builder{rng: rng}
}

// Split shuffles the pool in place and splits it at floor(0.8·N):
// the first 80% becomes the training partition, the remainder validation.
// An empty pool yields two empty partitions.
func (b *Builder) Split(pool []Example) (training, validation []Example) {
	b.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	// 4N/5 in integer arithmetic is exactly floor(0.8·N).
	split := len(pool) * 4 / 5
	return pool[:split], pool[split:]
}
