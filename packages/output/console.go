package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"

	"github.com/abdul-hamid-achik/wirecheck/packages/scenario"
)

const banner = "============================================================"

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatHeader prints the run banner with the target address.
func (f *ConsoleFormatter) FormatHeader(version, addr string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s\n", banner)
	fmt.Fprintf(f.writer, "%s\n", bold("wirecheck "+version))
	fmt.Fprintf(f.writer, "Target: %s\n", addr)
	fmt.Fprintf(f.writer, "%s\n", banner)
}

// FormatResult prints one exchange: the request as sent and the raw
// response as received, decoded lossily for the terminal.
func (f *ConsoleFormatter) FormatResult(r *scenario.Result) {
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n", banner)
	fmt.Fprintf(f.writer, "%s %s\n", bold("Scenario:"), r.Scenario.Name)
	if r.Scenario.Description != "" {
		fmt.Fprintf(f.writer, "%s\n", r.Scenario.Description)
	}
	fmt.Fprintf(f.writer, "%s\n", banner)

	fmt.Fprintf(f.writer, "Sending request:\n%s\n", DecodeLossy(r.RequestBytes))
	fmt.Fprintf(f.writer, "%s\n", strings.Repeat("-", 60))

	if r.Err != nil {
		fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), r.Err)
		return
	}

	if len(r.Raw) == 0 {
		fmt.Fprintf(f.writer, "Received no response before timeout\n")
		return
	}

	fmt.Fprintf(f.writer, "Received response (%d bytes, %dms):\n", len(r.Raw), r.Duration.Milliseconds())
	fmt.Fprintf(f.writer, "%s\n", DecodeLossy(r.Raw))

	if f.verbose {
		if sl, ok := r.StatusLine(); ok {
			fmt.Fprintf(f.writer, "%s %s %d %s\n", cyan("Status:"), sl.Proto, sl.Code, sl.Reason)
		}
		if body, ok := responseBody(r.Raw); ok && gjson.ValidBytes(body) {
			fmt.Fprintf(f.writer, "%s response body is valid JSON\n", cyan("Note:"))
		}
	}
}

// FormatSummary prints run totals. There is no pass/fail judgment, only
// how many exchanges completed and how many could not be performed.
func (f *ConsoleFormatter) FormatSummary(run *scenario.RunResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n", banner)
	fmt.Fprintf(f.writer, "Scenarios: ")
	if run.Completed > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d completed", run.Completed)))
	}
	if run.Failed > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d failed", run.Failed)))
	}
	fmt.Fprintf(f.writer, "%d total\n", len(run.Results))
	fmt.Fprintf(f.writer, "Time:  %dms\n", run.Duration.Milliseconds())
	fmt.Fprintf(f.writer, "%s\n", banner)
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

// DecodeLossy renders raw bytes as UTF-8 text, substituting one
// replacement character per undecodable byte. Display must never fail on
// whatever a server happens to send.
func DecodeLossy(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	var b strings.Builder
	b.Grow(len(raw))
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.Write(raw[:size])
		}
		raw = raw[size:]
	}
	return b.String()
}

// responseBody returns the bytes after the header block, when present.
func responseBody(raw []byte) ([]byte, bool) {
	idx := bytes.Index(raw, []byte("\r\n\r\n"))
	if idx < 0 {
		return nil, false
	}
	body := raw[idx+4:]
	if len(body) == 0 {
		return nil, false
	}
	return body, true
}
