package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const defaultExifTool = "exiftool"

var errToolNotFound = errors.New("metadata tool not found")

// scrubber removes metadata from a file in place.
type scrubber interface {
	Scrub(ctx context.Context, path string) error
}

// exifTool shells out to exiftool once per file.
type exifTool struct {
	bin string
}

// newExifTool resolves bin on PATH so a missing tool is caught before any file is touched.
func newExifTool(bin string) (*exifTool, error) {
	if bin == "" {
		bin = defaultExifTool
	}
	resolved, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (install exiftool or pass --exiftool)", errToolNotFound, bin)
	}
	return &exifTool{bin: resolved}, nil
}

// scrubArgs clears every tag plus the embedded thumbnail and rewrites the file without a backup copy.
func scrubArgs(path string) []string {
	// exiftool would read a leading dash as an option.
	if strings.HasPrefix(path, "-") {
		path = "./" + path
	}
	return []string{"-all=", "-thumbnailimage=", "-overwrite_original", path}
}

// Scrub runs the tool and blocks until it exits. There is no timeout; only
// cancelling ctx stops a hung invocation.
func (t *exifTool) Scrub(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, t.bin, scrubArgs(path)...)

	var stderrBuf bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderrBuf

	if err := cmd.Run(); err != nil {
		if msg := lastLine(stderrBuf.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// lastLine returns the final non-empty line of s.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
