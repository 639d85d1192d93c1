package runner

import (
	"context"
	"errors"
	"time"

	"github.com/username/holiday-stats/internal/holidayapi"
	"github.com/username/holiday-stats/internal/report"
	"github.com/username/holiday-stats/internal/stats"
	"go.uber.org/zap"
)

// Summary lists which country codes were reported and which failed
type Summary struct {
	Succeeded []string
	Failed    []string
	Skipped   []string // Not attempted because the context was cancelled
	Duration  time.Duration
}

// Runner fetches, aggregates and prints holidays per country code
type Runner struct {
	source     holidayapi.Source
	aggregator *stats.Aggregator
	reporter   *report.Reporter
	logger     *zap.Logger
}

// New creates a new Runner
func New(source holidayapi.Source, reporter *report.Reporter, logger *zap.Logger) *Runner {
	return &Runner{
		source:     source,
		aggregator: stats.NewAggregator(logger),
		reporter:   reporter,
		logger:     logger,
	}
}

// Run processes codes one at a time in input order.
// A failed fetch is printed and logged; the next code is still processed.
func (r *Runner) Run(ctx context.Context, codes []string) Summary {
	start := time.Now()
	var summary Summary

	r.logger.Info("Starting holiday report", zap.Strings("countries", codes))

	for i, code := range codes {
		if ctx.Err() != nil {
			summary.Skipped = append(summary.Skipped, codes[i:]...)
			r.logger.Warn("Run cancelled, skipping remaining countries",
				zap.Strings("skipped", summary.Skipped))
			break
		}

		resp, err := r.source.Holidays(ctx, code)
		if err != nil {
			r.reporter.FetchFailed(code, err)
			r.logger.Error("Fetch failed",
				zap.String("country", code),
				zap.String("kind", errorKind(err)),
				zap.Error(err))
			summary.Failed = append(summary.Failed, code)
			continue
		}

		rep := r.aggregator.Aggregate(resp.Holidays, code)
		r.reporter.Print(rep)

		r.logger.Info("Country reported",
			zap.String("country", code),
			zap.Int("total", rep.Total),
			zap.Int("public", rep.Public),
			zap.Int("weekday", rep.Weekday),
			zap.Int("weekend", rep.Weekend),
			zap.Int("prime", rep.Prime))
		summary.Succeeded = append(summary.Succeeded, code)
	}

	summary.Duration = time.Since(start)
	r.logger.Info("Holiday report finished",
		zap.Int("succeeded", len(summary.Succeeded)),
		zap.Int("failed", len(summary.Failed)),
		zap.Duration("duration", summary.Duration))

	return summary
}

func errorKind(err error) string {
	var transportErr *holidayapi.TransportError
	var statusErr *holidayapi.StatusError
	var decodeErr *holidayapi.DecodeError

	switch {
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &statusErr):
		return "status"
	case errors.As(err, &decodeErr):
		return "decode"
	default:
		return "unknown"
	}
}
