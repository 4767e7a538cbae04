package pipeline

import (
	"sync"

	"github.com/alnah/go-stylegen/internal/dataset"
)

// collector is the single accumulation point of the run: an append-only
// example pool shared by the per-transcript workers and read once, after
// the barrier, by the dataset builder.
type collector struct {
	mu       sync.Mutex
	examples []dataset.Example
}

// add appends a batch of examples.
func (c *collector) add(batch []dataset.Example) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.examples = append(c.examples, batch...)
}

// drain returns the accumulated pool. Call only after all workers finished.
func (c *collector) drain() []dataset.Example {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.examples
}
