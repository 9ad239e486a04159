// Package bench repeats a single scenario to measure server latency.
// Iterations are strictly sequential over fresh connections, exactly
// like a normal run; the rate limiter only spaces them out so the
// target is probed, not flooded.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/wirecheck/packages/scenario"
)

const (
	// DefaultCount is the number of iterations when none is given.
	DefaultCount = 20
	// DefaultRate is the target exchanges per second.
	DefaultRate = 5.0

	// Histogram range: 1us to 60s, 3 significant digits.
	histogramMin = 1
	histogramMax = 60_000_000
)

type Config struct {
	Count int
	Rate  float64
}

type Runner struct {
	exchange scenario.Exchanger
	config   *Config
}

func NewRunner(cfg *Config, exchange scenario.Exchanger) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Count <= 0 {
		cfg.Count = DefaultCount
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRate
	}
	return &Runner{exchange: exchange, config: cfg}
}

// Summary is the latency distribution of one bench run.
type Summary struct {
	Scenario string
	Count    int
	Errors   int
	Empty    int // exchanges that timed out with zero bytes
	Duration time.Duration
	Min      time.Duration
	Mean     time.Duration
	P50      time.Duration
	P95      time.Duration
	P99      time.Duration
	Max      time.Duration
}

// Run performs Count exchanges of the scenario against addr. Latency is
// only recorded for exchanges that produced a response; connection
// failures count as errors and the run keeps going. Cancelling the
// context stops between iterations.
func (r *Runner) Run(ctx context.Context, sc *scenario.Scenario, addr string) (*Summary, error) {
	payload := sc.Request.Bytes()
	hist := hdrhistogram.New(histogramMin, histogramMax, 3)
	limiter := rate.NewLimiter(rate.Limit(r.config.Rate), 1)

	summary := &Summary{Scenario: sc.Name}
	start := time.Now()

	for i := 0; i < r.config.Count; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("bench interrupted: %w", err)
		}

		exchangeStart := time.Now()
		raw, err := r.exchange.RoundTrip(addr, payload)
		elapsed := time.Since(exchangeStart)

		summary.Count++
		if err != nil {
			summary.Errors++
			continue
		}
		if len(raw) == 0 {
			summary.Empty++
		}

		latencyUs := elapsed.Microseconds()
		if latencyUs < histogramMin {
			latencyUs = histogramMin
		}
		if latencyUs > histogramMax {
			latencyUs = histogramMax
		}
		_ = hist.RecordValue(latencyUs)
	}

	summary.Duration = time.Since(start)
	if hist.TotalCount() > 0 {
		summary.Min = time.Duration(hist.Min()) * time.Microsecond
		summary.Mean = time.Duration(hist.Mean()) * time.Microsecond
		summary.P50 = time.Duration(hist.ValueAtQuantile(50)) * time.Microsecond
		summary.P95 = time.Duration(hist.ValueAtQuantile(95)) * time.Microsecond
		summary.P99 = time.Duration(hist.ValueAtQuantile(99)) * time.Microsecond
		summary.Max = time.Duration(hist.Max()) * time.Microsecond
	}

	return summary, nil
}
