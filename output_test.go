package main

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

// Status lines are compared as plain text.
func init() {
	color.NoColor = true
}

func TestReporterPrefixes(t *testing.T) {
	rep, out := newTestReporter()
	rep.Success("Scrubbed: %s", "a.jpg")
	rep.Failure("Failed to scrub: %s", "b.jpg")
	rep.Fatal("No image files found.")

	assert.Equal(t,
		"[+] Scrubbed: a.jpg\n"+
			"[!] Failed to scrub: b.jpg\n"+
			"[-] No image files found.\n",
		out.String())
}

func TestPrintSummary(t *testing.T) {
	stats := RunStats{Collected: 3, Scrubbed: 2, ScrubFailed: 1, Renamed: 3, Converted: 0}

	rep, out := newTestReporter()
	printSummary(rep, stats, Options{})
	assert.Equal(t, "[+] Done: 2 of 3 file(s) scrubbed, 3 renamed, 1 failed, 0 skipped\n", out.String())

	rep, out = newTestReporter()
	printSummary(rep, RunStats{Collected: 1, Scrubbed: 1, Converted: 1}, Options{ToJPEG: true})
	assert.Equal(t, "[+] Done: 1 of 1 file(s) scrubbed, 1 converted, 0 failed, 0 skipped\n", out.String())
}

func TestPrintSummary_CountsEveryFailure(t *testing.T) {
	stats := RunStats{
		Collected:      4,
		Scrubbed:       3,
		ScrubFailed:    1,
		TimesFailed:    1,
		OutputFailed:   1,
		Renamed:        3,
		VerifyFailures: 2,
	}

	rep, out := newTestReporter()
	printSummary(rep, stats, Options{Verify: true})
	assert.Equal(t,
		"[+] Done: 3 of 4 file(s) scrubbed, 3 renamed, 3 failed, 0 skipped, 2 failed verification\n",
		out.String())
}
