package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// ignoreFileName is looked up at the root of every directory argument.
const ignoreFileName = ".metascrubignore"

// imageExtensions are the recognized image extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tiff": true,
	".heic": true,
}

// isImage reports whether path carries a recognized image extension, ignoring case.
func isImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// collectFiles expands file and directory arguments into an ordered list of
// image paths. Arguments keep their order, directory contents follow the
// lexical order of the walk, and duplicates from overlapping arguments are kept.
// Arguments that do not exist are skipped without a message.
func collectFiles(paths []string, opts Options, rep *reporter) []string {
	var collected []string
	for _, p := range paths {
		files, err := processLocalPath(p, opts, rep)
		if err != nil {
			rep.Failure("Could not read %s: %v", p, err)
			continue
		}
		collected = append(collected, files...)
	}
	return collected
}

// processLocalPath handles a single file or directory argument.
func processLocalPath(path string, opts Options, rep *reporter) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		// Neither an existing file nor an existing directory.
		return nil, nil
	}

	if info.IsDir() {
		return walkDirectory(path, opts, rep)
	}
	if info.Mode().IsRegular() && isImage(path) {
		return []string{path}, nil
	}
	return nil, nil
}

// walkDirectory recursively walks root, honoring --max-depth and the root's ignore file.
func walkDirectory(root string, opts Options, rep *reporter) ([]string, error) {
	var files []string
	var ignoreMatcher gitignore.IgnoreMatcher

	if !opts.NoIgnore {
		ignorePath := filepath.Join(root, ignoreFileName)
		if _, err := os.Stat(ignorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(ignorePath, root)
			if err != nil {
				rep.Failure("Could not parse %s: %v", ignorePath, err)
			} else {
				ignoreMatcher = matcher
			}
		}
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			rep.Failure("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		isDir := d.IsDir()

		if ignoreMatcher != nil && ignoreMatcher.Match(path, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if isDir {
			relPath, _ := filepath.Rel(root, path)
			if opts.MaxDepth > 0 && countPathSeparators(relPath)+1 >= opts.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}

		if !isImage(path) || !isRegularFile(path, d) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// isRegularFile resolves symlinks so a link to an image counts like the image itself.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// countPathSeparators counts the number of path separators in a relative path.
func countPathSeparators(path string) int {
	path = filepath.ToSlash(path)
	if path == "." || path == "" {
		return 0
	}
	return strings.Count(strings.Trim(path, "/"), "/")
}
