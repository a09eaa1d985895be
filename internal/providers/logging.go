package providers

import (
	"context"
	"log/slog"
	"time"

	domaingames "igdb-games-service/internal/domain/games"
	"igdb-games-service/internal/logging"
	"igdb-games-service/internal/metrics"
)

// instrumentedProvider records metrics and logs failures for every upstream fetch.
// Cancellations are neither logged nor counted as errors.
type instrumentedProvider struct {
	inner   GameProvider
	name    string
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewInstrumentedProvider wraps inner with logging and metrics under the given provider name.
func NewInstrumentedProvider(inner GameProvider, name string, logger *slog.Logger, recorder *metrics.Recorder) GameProvider {
	if name == "" {
		name = "provider"
	}
	return &instrumentedProvider{
		inner:   inner,
		name:    name,
		logger:  logger,
		metrics: recorder,
	}
}

func (p *instrumentedProvider) FetchGames(ctx context.Context, q Query) ([]domaingames.Game, error) {
	if p.inner == nil {
		return nil, ErrProviderUnavailable
	}

	start := time.Now()
	games, err := p.inner.FetchGames(ctx, q)
	duration := time.Since(start)

	if IsCancelled(err) {
		p.metrics.RecordCancellation(p.name)
		return nil, err
	}

	p.metrics.RecordProviderAttempt(p.name, duration, err)
	logger := logging.FromContext(ctx, p.logger)

	if err != nil {
		if rl, ok := AsRateLimitError(err); ok {
			p.metrics.RecordRateLimit(p.name, rl.RetryAfter)
		}
		logWithProvider(ctx, logger, slog.LevelError, p.name, "provider fetch failed",
			slog.String(logging.FieldMode, q.Mode.String()),
			slog.String(logging.FieldQuery, q.Label()),
			slog.String(logging.FieldErrorKind, ErrorKind(err)),
			slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
			slog.Any("error", err),
		)
		return nil, err
	}

	logWithProvider(ctx, logger, slog.LevelDebug, p.name, "provider fetch complete",
		slog.String(logging.FieldMode, q.Mode.String()),
		slog.String(logging.FieldQuery, q.Label()),
		slog.Int(logging.FieldCount, len(games)),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	)
	return games, nil
}

// logWithProvider emits a log entry if logger is non-nil and always includes provider name.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldProvider, provider))
	logger.Log(ctx, level, msg, args...)
}
