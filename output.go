package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// statusKind selects the prefix printed in front of a status line.
type statusKind int

const (
	statusSuccess statusKind = iota
	statusFailure
	statusFatal
)

func (s statusKind) String() string {
	return []string{"[+]", "[!]", "[-]"}[s]
}

func (s statusKind) Color() *color.Color {
	return []*color.Color{
		color.New(color.FgHiGreen),           // success
		color.New(color.FgYellow),            // per-file failure
		color.New(color.FgHiRed, color.Bold), // fatal
	}[s]
}

// reporter writes the human-readable status lines of a run.
// Only the prefix is colored so the lines stay grep-friendly.
type reporter struct {
	out io.Writer
}

func newReporter(out io.Writer) *reporter {
	return &reporter{out: out}
}

func (r *reporter) emit(kind statusKind, format string, args ...interface{}) {
	kind.Color().Fprint(r.out, kind.String())
	fmt.Fprintf(r.out, " %s\n", fmt.Sprintf(format, args...))
}

// Success prints a "[+]" line.
func (r *reporter) Success(format string, args ...interface{}) {
	r.emit(statusSuccess, format, args...)
}

// Failure prints a "[!]" line for a non-fatal, per-file problem.
func (r *reporter) Failure(format string, args ...interface{}) {
	r.emit(statusFailure, format, args...)
}

// Fatal prints a "[-]" line. The caller decides the exit code.
func (r *reporter) Fatal(format string, args ...interface{}) {
	r.emit(statusFatal, format, args...)
}

// printSummary writes the closing line of a batch. Every "[!]" line printed
// during the run is counted in exactly one of its totals.
func printSummary(r *reporter, stats RunStats, opts Options) {
	output := fmt.Sprintf("%d renamed", stats.Renamed)
	if opts.ToJPEG {
		output = fmt.Sprintf("%d converted", stats.Converted)
	}
	failed := stats.ScrubFailed + stats.TimesFailed + stats.OutputFailed
	line := fmt.Sprintf("Done: %d of %d file(s) scrubbed, %s, %d failed, %d skipped",
		stats.Scrubbed, stats.Collected, output, failed, stats.Skipped)
	if opts.Verify {
		line += fmt.Sprintf(", %d failed verification", stats.VerifyFailures)
	}
	r.Success("%s", line)
}
