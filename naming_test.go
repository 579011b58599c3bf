package main

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		index int
		ext   string
		want  string
	}{
		{1, ".jpg", "photo_001.jpg"},
		{42, ".png", "photo_042.png"},
		{999, ".heic", "photo_999.heic"},
		{1000, ".jpg", "photo_1000.jpg"},
		{12345, ".tiff", "photo_12345.tiff"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, outputName(tt.index, tt.ext))
	}
}

func TestOutputExt(t *testing.T) {
	assert.Equal(t, ".jpg", outputExt("IMG_0001.HEIC", true))
	assert.Equal(t, ".jpg", outputExt("scan.png", true))
	assert.Equal(t, ".heic", outputExt("IMG_0001.HEIC", false))
	assert.Equal(t, ".jpeg", outputExt("a.JPEG", false))
	assert.Equal(t, ".tiff", outputExt("a.tiff", false))
}

func TestDestinationPath(t *testing.T) {
	src := filepath.Join("photos", "trip", "IMG_1.PNG")

	assert.Equal(t, filepath.Join("photos", "trip", "photo_003.png"), destinationPath(src, 3, "", false))
	assert.Equal(t, filepath.Join("out", "photo_003.jpg"), destinationPath(src, 3, "out", true))
	assert.Equal(t, filepath.Join("out", "photo_1000.png"), destinationPath(src, 1000, "out", false))
}

func TestResolveCollision_FreeDestination(t *testing.T) {
	dir := t.TempDir()
	src := touch(t, dir, "a.png")
	dst := filepath.Join(dir, "photo_001.png")

	for _, policy := range []CollisionPolicy{CollisionOverwrite, CollisionSkip, CollisionError, CollisionSuffix} {
		got, err := resolveCollision(src, dst, policy)
		require.NoError(t, err, policy)
		assert.Equal(t, dst, got, policy)
	}
}

func TestResolveCollision_TakenDestination(t *testing.T) {
	dir := t.TempDir()
	src := touch(t, dir, "a.png")
	dst := touch(t, dir, "photo_001.png")
	touch(t, dir, "photo_001_1.png")

	got, err := resolveCollision(src, dst, CollisionOverwrite)
	require.NoError(t, err)
	assert.Equal(t, dst, got)

	got, err = resolveCollision(src, dst, CollisionSuffix)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "photo_001_2.png"), got)

	for _, policy := range []CollisionPolicy{CollisionSkip, CollisionError} {
		_, err = resolveCollision(src, dst, policy)
		assert.ErrorIs(t, err, errDestinationExists, policy)
	}
}

func TestResolveCollision_SourceIsDestination(t *testing.T) {
	dir := t.TempDir()
	src := touch(t, dir, "photo_001.png")

	got, err := resolveCollision(src, src, CollisionError)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := touch(t, dir, "a.png")
	dst := filepath.Join(dir, "photo_001.png")

	require.NoError(t, moveFile(src, dst))
	assert.NoFileExists(t, src)
	assert.FileExists(t, dst)
}

func TestMoveFile_CrossDevice(t *testing.T) {
	orig := renameFunc
	t.Cleanup(func() { renameFunc = orig })
	renameFunc = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
	}

	err := moveFile("a.png", "/mnt/other/photo_001.png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, syscall.EXDEV))
	assert.Contains(t, err.Error(), "across filesystems")
}

func TestParseCollisionPolicy(t *testing.T) {
	p, err := parseCollisionPolicy("")
	require.NoError(t, err)
	assert.Equal(t, CollisionOverwrite, p)

	p, err = parseCollisionPolicy("suffix")
	require.NoError(t, err)
	assert.Equal(t, CollisionSuffix, p)

	_, err = parseCollisionPolicy("rename")
	assert.Error(t, err)
}
