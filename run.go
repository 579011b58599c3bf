package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// pipeline drives every collected file through scrub, optional timestamp
// reset and convert-or-rename, strictly one file at a time.
type pipeline struct {
	opts     Options
	scrubber scrubber
	codecs   *codecRegistry
	rep      *reporter
	stats    RunStats
}

func newPipeline(opts Options, s scrubber, codecs *codecRegistry, rep *reporter) *pipeline {
	return &pipeline{opts: opts, scrubber: s, codecs: codecs, rep: rep}
}

// run is the batch entry point used by the root command. It returns the process exit code.
func run(ctx context.Context, paths []string, opts Options, out io.Writer) int {
	rep := newReporter(out)

	files := collectFiles(paths, opts, rep)
	if len(files) == 0 {
		rep.Fatal("No image files found.")
		return 1
	}

	tool, err := newExifTool(opts.ExifTool)
	if err != nil {
		rep.Fatal("%v", err)
		return 1
	}

	return runFiles(ctx, files, opts, tool, rep)
}

// runFiles prepares the destination directory and processes files in order.
// Per-file failures are reported but never change the exit code.
func runFiles(ctx context.Context, files []string, opts Options, s scrubber, rep *reporter) int {
	if opts.DestDir != "" {
		dest, err := filepath.Abs(opts.DestDir)
		if err != nil {
			rep.Fatal("Cannot resolve destination %s: %v", opts.DestDir, err)
			return 1
		}
		if err := os.MkdirAll(dest, 0o755); err != nil {
			rep.Fatal("Cannot create destination %s: %v", dest, err)
			return 1
		}
		opts.DestDir = dest
	}

	p := newPipeline(opts, s, newCodecRegistry(), rep)
	stats, err := p.Run(ctx, files)
	printSummary(rep, stats, opts)
	if err != nil {
		rep.Fatal("%v", err)
		return 1
	}
	return 0
}

// Run processes files in collection order; the sequence index is the 1-based position.
// It stops early only when ctx is cancelled.
func (p *pipeline) Run(ctx context.Context, files []string) (RunStats, error) {
	p.stats.Collected = len(files)
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return p.stats, fmt.Errorf("interrupted with %d file(s) left unprocessed: %w", len(files)-i, err)
		}
		p.processFile(ctx, i+1, path)
	}
	return p.stats, nil
}

func (p *pipeline) processFile(ctx context.Context, index int, path string) {
	p.scrub(ctx, path)

	if p.opts.ResetTime {
		if err := resetTimestamps(path); err != nil {
			p.stats.TimesFailed++
			p.rep.Failure("Failed to reset timestamps: %s: %v", path, err)
		} else {
			p.stats.TimesReset++
			p.rep.Success("Reset timestamps: %s", path)
		}
	}

	want := destinationPath(path, index, p.opts.DestDir, p.opts.ToJPEG)
	dst, err := resolveCollision(path, want, p.opts.OnCollision)
	if err != nil {
		if p.opts.OnCollision == CollisionSkip {
			p.stats.Skipped++
			p.rep.Failure("Skipped %s, destination exists: %s", path, want)
		} else {
			p.stats.OutputFailed++
			p.rep.Failure("Cannot write %s: %v", path, err)
		}
		return
	}

	if p.opts.ToJPEG {
		if err := convertToJPEG(p.codecs, path, dst); err != nil {
			p.stats.OutputFailed++
			p.rep.Failure("Failed to convert %s to JPEG: %v", path, err)
			return
		}
		p.stats.Converted++
		p.rep.Success("Converted to JPEG: %s", dst)
		return
	}

	if err := moveFile(path, dst); err != nil {
		p.stats.OutputFailed++
		p.rep.Failure("Failed to rename %s: %v", path, err)
		return
	}
	p.stats.Renamed++
	p.rep.Success("Renamed to: %s", dst)
}

func (p *pipeline) scrub(ctx context.Context, path string) {
	if err := p.scrubber.Scrub(ctx, path); err != nil {
		p.stats.ScrubFailed++
		p.rep.Failure("Failed to scrub: %s: %v", path, err)
		return
	}
	p.stats.Scrubbed++
	p.rep.Success("Scrubbed: %s", path)

	if !p.opts.Verify {
		return
	}
	fields, err := residualMetadata(path)
	switch {
	case err != nil:
		p.stats.VerifyFailures++
		p.rep.Failure("Cannot verify %s: %v", path, err)
	case len(fields) > 0:
		p.stats.VerifyFailures++
		names := make([]string, len(fields))
		for i, f := range fields {
			names[i] = string(f)
		}
		p.rep.Failure("Metadata still present in %s: %s", path, strings.Join(names, ", "))
	}
}

