package scenario

import (
	"net"
	"strconv"
	"time"

	"github.com/abdul-hamid-achik/wirecheck/packages/rawhttp"
	"github.com/abdul-hamid-achik/wirecheck/packages/transport"
)

const (
	// DefaultPause is the delay between scenarios, for operator
	// readability only.
	DefaultPause = 500 * time.Millisecond
)

// Scenario is one named exchange: a pre-built request and a description
// of what the operator should expect to see.
type Scenario struct {
	Name        string
	Description string
	Request     *rawhttp.Request
}

// Result is the outcome of running one scenario. Raw holds whatever the
// peer sent back, unparsed; Err is set only for connection or mid-read
// failures, never for server-side rejections.
type Result struct {
	Scenario     *Scenario
	RequestBytes []byte
	Raw          []byte
	StartedAt    time.Time
	Duration     time.Duration
	Err          error
}

// StatusLine extracts the response status line when the peer sent one.
func (r *Result) StatusLine() (rawhttp.StatusLine, bool) {
	return rawhttp.ParseStatusLine(r.Raw)
}

// RunResult aggregates one pass over a catalogue.
type RunResult struct {
	Results   []*Result
	Completed int
	Failed    int
	Duration  time.Duration
}

// Exchanger performs one request/response exchange. Satisfied by
// *transport.Transport.
type Exchanger interface {
	RoundTrip(addr string, payload []byte) ([]byte, error)
}

// Config carries the injected run parameters. The target host and port
// live here and nowhere else; nothing in the harness reads them from
// package-level state.
type Config struct {
	Host    string
	Port    int
	Timeout time.Duration
	Pause   time.Duration
}

// Addr returns the dial target.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type Runner struct {
	exchange Exchanger
	config   *Config
}

type RunnerOption func(*Runner)

// WithExchanger replaces the TCP transport, mainly for tests.
func WithExchanger(e Exchanger) RunnerOption {
	return func(r *Runner) {
		r.exchange = e
	}
}

func NewRunner(cfg *Config, opts ...RunnerOption) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Pause == 0 {
		cfg.Pause = DefaultPause
	}

	r := &Runner{config: cfg}
	for _, opt := range opts {
		opt(r)
	}

	if r.exchange == nil {
		transportOpts := []transport.Option{}
		if cfg.Timeout > 0 {
			transportOpts = append(transportOpts, transport.WithTimeout(cfg.Timeout))
		}
		r.exchange = transport.New(transportOpts...)
	}

	return r
}

// RunOne executes a single scenario over a fresh connection.
func (r *Runner) RunOne(sc *Scenario) *Result {
	payload := sc.Request.Bytes()

	result := &Result{
		Scenario:     sc,
		RequestBytes: payload,
		StartedAt:    time.Now(),
	}

	raw, err := r.exchange.RoundTrip(r.config.Addr(), payload)
	result.Duration = time.Since(result.StartedAt)
	result.Raw = raw
	result.Err = err
	return result
}

// Run executes scenarios strictly in order, one connection each, with a
// pause between them. A failed scenario is recorded and the run moves
// on; there is no retry and no aggregate verdict. The report callback,
// when non-nil, is invoked after each scenario so output appears as the
// run progresses.
func (r *Runner) Run(scenarios []*Scenario, report func(*Result)) *RunResult {
	start := time.Now()
	run := &RunResult{}

	for i, sc := range scenarios {
		result := r.RunOne(sc)

		run.Results = append(run.Results, result)
		if result.Err != nil {
			run.Failed++
		} else {
			run.Completed++
		}

		if report != nil {
			report(result)
		}

		if i < len(scenarios)-1 {
			time.Sleep(r.config.Pause)
		}
	}

	run.Duration = time.Since(start)
	return run
}
