package fiber

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Group spawns several fibers and waits for all of them to finish,
// collecting the first non-nil error. It is the concurrent-coordination
// idiom runtime/internal/singleflight.go's call type exists to provide for
// a single in-flight call; Group generalizes it to N coroutines using
// golang.org/x/sync/errgroup rather than hand-rolling a WaitGroup plus
// error slot.
type Group struct {
	eg  *errgroup.Group
	ctx context.Context
}

// NewGroup returns a Group whose spawned fibers receive ctx (and the
// fiber.Handle Spawn binds into it) as their context.
func NewGroup(ctx context.Context) *Group {
	eg, gctx := errgroup.WithContext(ctx)
	return &Group{eg: eg, ctx: gctx}
}

// Go spawns fn as a new fiber under the group. fn's returned error becomes
// the group's error if no earlier member already failed.
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		errc := make(chan error, 1)
		Spawn(g.ctx, func(ctx context.Context) {
			errc <- fn(ctx)
		})
		return <-errc
	})
}

// Wait blocks until every fiber spawned through Go has returned, and
// returns the first non-nil error, if any.
func (g *Group) Wait() error {
	return g.eg.Wait()
}
