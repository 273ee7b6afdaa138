// Package fixtures holds test helpers shared by the client packages.
package fixtures

import (
	"context"
	"time"

	"github.com/tilinna/clock"
)

// NewAdvancingClock attaches a virtual clock to a context which jumps straight
// to each pending timer, and a cancel function to stop it. The clock also
// stops if the context is canceled.
func NewAdvancingClock(ctx context.Context) (context.Context, *clock.Mock, func()) {
	clck := clock.NewMock(time.Unix(1, 0))
	ctx = clock.Context(ctx, clck)
	ch := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				return
			case <-ctx.Done():
				return
			default:
				if _, d := clck.AddNext(); d == 0 {
					time.Sleep(1) // Allows the system to actually idle, runtime.Gosched() does not.
				}
			}
		}
	}()
	return ctx, clck, func() {
		close(ch)
	}
}
