package planner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"ecoroute/internal/maps"
	"ecoroute/internal/types"
)

// ModeResult is the settled outcome of one per-mode directions request.
// Exactly one of Response and Err is set.
type ModeResult struct {
	Mode     Mode
	Profile  string
	Response *maps.DirectionsResponse
	Err      error
}

// Gateway fans a directions request out to every resolved mode.
type Gateway struct {
	provider     maps.DirectionsProvider
	timeout      time.Duration
	alternatives bool
}

func NewGateway(provider maps.DirectionsProvider, timeout time.Duration) *Gateway {
	return &Gateway{provider: provider, timeout: timeout, alternatives: true}
}

// Fetch issues all requests concurrently and waits for every one to settle or for
// the deadline. A failing mode never cancels the others; modes still pending at the
// deadline are reported as ErrProviderUnavailable and their requests are cancelled.
func (g *Gateway) Fetch(ctx context.Context, origin, destination types.Coordinate, profiles []ModeProfile) []ModeResult {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var (
		mu      sync.Mutex
		settled = make([]bool, len(profiles))
		results = make([]ModeResult, len(profiles))
	)

	var eg errgroup.Group
	for i, mp := range profiles {
		eg.Go(func() error {
			res := g.fetchOne(ctx, origin, destination, mp)
			mu.Lock()
			results[i] = res
			settled[i] = true
			mu.Unlock()
			// Never propagate: one mode's failure must not stop the join.
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = eg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}

	mu.Lock()
	defer mu.Unlock()
	out := make([]ModeResult, len(profiles))
	for i, mp := range profiles {
		if settled[i] {
			out[i] = results[i]
			continue
		}
		out[i] = ModeResult{
			Mode:    mp.Mode,
			Profile: mp.Profile,
			Err:     fmt.Errorf("%w: %w", ErrProviderUnavailable, context.Cause(ctx)),
		}
	}
	return out
}

func (g *Gateway) fetchOne(ctx context.Context, origin, destination types.Coordinate, mp ModeProfile) ModeResult {
	res := ModeResult{Mode: mp.Mode, Profile: mp.Profile}
	resp, err := g.provider.Directions(ctx, maps.DirectionsRequest{
		Profile:      mp.Profile,
		Origin:       origin,
		Destination:  destination,
		Alternatives: g.alternatives,
	})
	switch {
	case err != nil:
		res.Err = fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	case resp == nil || len(resp.Routes) == 0:
		res.Err = fmt.Errorf("%w: %w", ErrProviderUnavailable, maps.ErrNoRoute)
	default:
		res.Response = resp
	}
	return res
}

// failureOf summarizes a failed result for the caller.
func failureOf(r ModeResult) ModeFailure {
	return ModeFailure{Mode: r.Mode, Error: r.Err.Error()}
}
