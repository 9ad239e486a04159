package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/wirecheck/packages/scenario"
)

// JSONOutput is the complete JSON dump of one run.
type JSONOutput struct {
	Target    string         `json:"target"`
	Exchanges []JSONExchange `json:"exchanges"`
	Completed int            `json:"completed"`
	Failed    int            `json:"failed"`
	Duration  float64        `json:"duration"`
	Time      string         `json:"time"`
}

// JSONExchange is one scenario's exchange. Request and response are the
// raw bytes rendered lossily as text; StatusCode is present only when
// the peer sent a parseable status line.
type JSONExchange struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Request     string  `json:"request"`
	Response    string  `json:"response,omitempty"`
	StatusCode  int     `json:"statusCode,omitempty"`
	Duration    float64 `json:"duration"`
	Error       string  `json:"error,omitempty"`
}

// JSONFormatter accumulates exchanges and writes them on Flush.
type JSONFormatter struct {
	writer    io.Writer
	target    string
	exchanges []JSONExchange
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer:    os.Stdout,
		exchanges: make([]JSONExchange, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatHeader(version, addr string) {
	f.target = addr
}

func (f *JSONFormatter) FormatResult(r *scenario.Result) {
	exchange := JSONExchange{
		Name:        r.Scenario.Name,
		Description: r.Scenario.Description,
		Request:     DecodeLossy(r.RequestBytes),
		Response:    DecodeLossy(r.Raw),
		Duration:    float64(r.Duration.Milliseconds()),
	}

	if sl, ok := r.StatusLine(); ok {
		exchange.StatusCode = sl.Code
	}
	if r.Err != nil {
		exchange.Error = r.Err.Error()
	}

	f.exchanges = append(f.exchanges, exchange)
}

func (f *JSONFormatter) FormatSummary(run *scenario.RunResult) {
	// Totals are emitted by Flush
}

func (f *JSONFormatter) FormatError(err error) {
	// Errors are included in individual exchanges
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	var completed, failed int
	for _, e := range f.exchanges {
		if e.Error != "" {
			failed++
		} else {
			completed++
		}
	}

	output := JSONOutput{
		Target:    f.target,
		Exchanges: f.exchanges,
		Completed: completed,
		Failed:    failed,
		Duration:  float64(totalDuration.Milliseconds()),
		Time:      time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
