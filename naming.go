package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

const outputPrefix = "photo_"

var errDestinationExists = errors.New("destination already exists")

// renameFunc is swapped in tests to simulate rename failures such as EXDEV.
var renameFunc = os.Rename

// outputName formats the sequential name for a 1-based index. The index is
// padded to at least three digits and widens past 999 (photo_1000).
func outputName(index int, ext string) string {
	return fmt.Sprintf("%s%03d%s", outputPrefix, index, ext)
}

// outputExt is ".jpg" when converting, otherwise the source extension in lowercase.
func outputExt(src string, toJPEG bool) string {
	if toJPEG {
		return ".jpg"
	}
	return strings.ToLower(filepath.Ext(src))
}

// destinationPath places the sequential name in destDir, or next to src when destDir is empty.
func destinationPath(src string, index int, destDir string, toJPEG bool) string {
	dir := destDir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	return filepath.Join(dir, outputName(index, outputExt(src, toJPEG)))
}

// resolveCollision applies policy when dst is already taken. Under
// CollisionOverwrite dst is returned untouched and the platform's rename or
// create semantics decide. A dst that is the source file itself is not a collision.
func resolveCollision(src, dst string, policy CollisionPolicy) (string, error) {
	if policy == CollisionOverwrite || !exists(dst) || samePath(src, dst) {
		return dst, nil
	}

	switch policy {
	case CollisionSuffix:
		for n := 1; ; n++ {
			candidate := suffixedPath(dst, n)
			if !exists(candidate) {
				return candidate, nil
			}
		}
	default:
		return "", fmt.Errorf("%w: %s", errDestinationExists, dst)
	}
}

// suffixedPath inserts "_n" before the extension: photo_001.jpg -> photo_001_2.jpg.
func suffixedPath(path string, n int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), n, ext)
}

// moveFile renames src to dst, naming the cross-filesystem case explicitly
// since no copy-and-delete fallback is attempted.
func moveFile(src, dst string) error {
	if err := renameFunc(src, dst); err != nil {
		if errors.Is(err, syscall.EXDEV) {
			return fmt.Errorf("cannot move across filesystems, keep --dest on the same volume as the source: %w", err)
		}
		return err
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
