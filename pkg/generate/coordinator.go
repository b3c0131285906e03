package generate

import (
	"context"
	"errors"
	"sync"

	"github.com/matzehuels/planforge/pkg/blueprint"
)

// ErrSuperseded is returned by a request that a newer one cancelled.
var ErrSuperseded = errors.New("generation superseded by a newer request")

// Coordinator serializes generation requests from one client. Starting a
// request cancels the pending one, which then returns [ErrSuperseded].
type Coordinator struct {
	src Source

	mu      sync.Mutex
	seq     uint64
	pending context.CancelCauseFunc
}

// NewCoordinator wraps src.
func NewCoordinator(src Source) *Coordinator {
	return &Coordinator{src: src}
}

// Generate cancels any pending request and starts a new one.
func (c *Coordinator) Generate(ctx context.Context, bt blueprint.BuildingType, country string) (*blueprint.Spec, error) {
	ctx, cancel := context.WithCancelCause(ctx)

	c.mu.Lock()
	if c.pending != nil {
		c.pending(ErrSuperseded)
	}
	c.seq++
	seq := c.seq
	c.pending = cancel
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.seq == seq {
			c.pending = nil
		}
		c.mu.Unlock()
		cancel(nil)
	}()

	spec, err := c.src.Generate(ctx, bt, country)
	if errors.Is(context.Cause(ctx), ErrSuperseded) {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	return spec, nil
}

// Pending reports whether a request is in flight.
func (c *Coordinator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Cancel aborts the pending request, if any, with context.Canceled.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		c.pending(context.Canceled)
		c.pending = nil
	}
}
