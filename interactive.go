package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// interactiveCandidates lists the directories and image files below root that the picker offers.
func interactiveCandidates(root string) ([]string, error) {
	candidates := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		if d.IsDir() || isImage(path) {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for images: %w", err)
	}
	return candidates, nil
}

// interactiveFinder is swapped out in tests.
var interactiveFinder = runInteractiveFinder

// selectInteractive asks the user for input paths. It reports an abort on rep
// and returns a nil slice so the caller can stop without processing anything.
func selectInteractive(rep *reporter) ([]string, error) {
	paths, err := interactiveFinder()
	if err != nil {
		return nil, fmt.Errorf("interactive mode: %w", err)
	}
	if len(paths) == 0 {
		rep.Fatal("Interactive selection aborted.")
		return nil, nil
	}
	return paths, nil
}

// runInteractiveFinder lets the user pick files and directories from the
// working directory. A nil slice with a nil error means the user aborted.
func runInteractiveFinder() ([]string, error) {
	candidates, err := interactiveCandidates(".")
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, errors.New("no images or directories found to select from")
	}

	idx, err := fuzzyfinder.FindMulti(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select images or directories to scrub. Tab to multi-select, Enter to confirm."
			}
			path := candidates[i]
			info, statErr := os.Stat(path)
			if statErr != nil {
				return fmt.Sprintf("Path: %s\nError getting info: %v", path, statErr)
			}
			if info.IsDir() {
				return fmt.Sprintf("Path: %s\nType: Directory", path)
			}
			return fmt.Sprintf("Path: %s\nType: Image\nSize: %d bytes", path, info.Size())
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, fmt.Errorf("fuzzy finder error: %w", err)
	}

	selected := make([]string, len(idx))
	for i, index := range idx {
		selected[i] = candidates[index]
	}
	return selected, nil
}
