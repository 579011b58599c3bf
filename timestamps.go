package main

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// resetTimestamps sets the access and modification times of path to now,
// creating an empty file when path does not exist (touch semantics).
func resetTimestamps(path string) error {
	now := time.Now()
	err := os.Chtimes(path, now, now)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}
