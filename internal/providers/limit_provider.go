package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domaingames "igdb-games-service/internal/domain/games"
)

// IGDB allows four requests per second per client.
const defaultRateInterval = 250 * time.Millisecond

// rateLimitedProvider wraps a GameProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	inner    GameProvider
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu          sync.Mutex
	nextAllowed time.Time
}

// NewRateLimitedProvider returns a GameProvider that spaces upstream calls by interval.
// Calls wait for their slot; a cancelled context ends the wait with ctx.Err().
func NewRateLimitedProvider(inner GameProvider, interval time.Duration, logger *slog.Logger) GameProvider {
	if interval <= 0 {
		interval = defaultRateInterval
	}
	return &rateLimitedProvider{
		inner:    inner,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *rateLimitedProvider) FetchGames(ctx context.Context, q Query) ([]domaingames.Game, error) {
	if p.inner == nil {
		if p.logger != nil {
			p.logger.Warn("provider unavailable", slog.String("provider", "rate-limited"))
		}
		return nil, ErrProviderUnavailable
	}

	if slot, wait := p.reserve(); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			p.release(slot)
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	return p.inner.FetchGames(ctx, q)
}

// reserve claims the next free slot and returns it with how long the caller must wait for it.
func (p *rateLimitedProvider) reserve() (time.Time, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	slot := p.nextAllowed
	if slot.Before(now) {
		slot = now
	}
	p.nextAllowed = slot.Add(p.interval)
	return slot, slot.Sub(now)
}

// release hands back an unused slot. Only the latest reservation can be returned; earlier
// ones already have later callers queued behind them.
func (p *rateLimitedProvider) release(slot time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.nextAllowed.Equal(slot.Add(p.interval)) {
		p.nextAllowed = slot
	}
}
