package gateway

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config selects the throughput contract enforced against the upstream
// provider. It is built once at startup and passed in; the gateway never reads
// environment state itself.
//
// When Reservoir > 0 the gateway runs in quota-refill mode: Reservoir permits
// replenish every ReservoirInterval, independent of per-call spacing. Otherwise
// MinInterval spaces successive dispatches. MaxConcurrent bounds in-flight
// operations in both modes.
type Config struct {
	MinInterval       time.Duration
	Reservoir         int
	ReservoirInterval time.Duration
	MaxConcurrent     int
}

// TierConfig returns the contract for a deployment tier of the upstream
// provider. The test tier allows 10 tx/sec with strict 100ms spacing; the
// production tier refills 40 permits every second.
func TierConfig(tier string) Config {
	if tier == "production" {
		return Config{
			Reservoir:         40,
			ReservoirInterval: time.Second,
			MaxConcurrent:     50,
		}
	}
	return Config{
		MinInterval:   100 * time.Millisecond,
		MaxConcurrent: 50,
	}
}

// Gateway is the single chokepoint for upstream calls. It throttles dispatch
// rate and bounds concurrency; it never retries on the caller's behalf.
type Gateway struct {
	pacer pacer
	slots chan struct{}
}

func New(cfg Config) *Gateway {
	g := &Gateway{pacer: newPacer(cfg)}
	if cfg.MaxConcurrent > 0 {
		g.slots = make(chan struct{}, cfg.MaxConcurrent)
	}
	return g
}

// Do runs op once a concurrency slot and a dispatch permit are available. The
// slot is held until op returns, so an abandoned caller still drains naturally
// instead of leaking a permit. Waits are cut short by ctx.
func (g *Gateway) Do(ctx context.Context, op func(context.Context) error) error {
	if g.slots != nil {
		select {
		case g.slots <- struct{}{}:
			defer func() { <-g.slots }()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := g.pacer.wait(ctx); err != nil {
		return err
	}
	return op(ctx)
}

type pacer interface {
	wait(ctx context.Context) error
}

func newPacer(cfg Config) pacer {
	switch {
	case cfg.Reservoir > 0:
		interval := cfg.ReservoirInterval
		if interval <= 0 {
			interval = time.Second
		}
		limit := rate.Limit(float64(cfg.Reservoir) / interval.Seconds())
		return &reservoirPacer{limiter: rate.NewLimiter(limit, cfg.Reservoir)}
	case cfg.MinInterval > 0:
		return &spacingPacer{interval: cfg.MinInterval}
	default:
		return noopPacer{}
	}
}

// spacingPacer grants dispatches at least interval apart. The grant time is
// recorded before the operation runs, so spacing is measured between
// dispatches, not completions.
type spacingPacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func (p *spacingPacer) wait(ctx context.Context) error {
	for {
		now := time.Now()
		p.mu.Lock()
		if p.last.IsZero() || now.Sub(p.last) >= p.interval {
			p.last = now
			p.mu.Unlock()
			return nil
		}
		wait := p.interval - now.Sub(p.last)
		p.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

type reservoirPacer struct {
	limiter *rate.Limiter
}

func (p *reservoirPacer) wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

type noopPacer struct{}

func (noopPacer) wait(context.Context) error { return nil }
