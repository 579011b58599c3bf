package main

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jdeng/goheif"
	"golang.org/x/image/tiff"
)

type decodeFunc func(io.Reader) (image.Image, error)

// codecRegistry maps sniffed MIME types and file extensions to decoders.
// It is built once at startup and handed to whoever needs to decode; nothing
// is registered in the image package's global format table.
type codecRegistry struct {
	byMIME map[string]decodeFunc
	byExt  map[string]decodeFunc
}

func newCodecRegistry() *codecRegistry {
	r := &codecRegistry{
		byMIME: make(map[string]decodeFunc),
		byExt:  make(map[string]decodeFunc),
	}
	r.register(jpeg.Decode, []string{"image/jpeg"}, ".jpg", ".jpeg")
	r.register(png.Decode, []string{"image/png"}, ".png")
	r.register(tiff.Decode, []string{"image/tiff"}, ".tiff", ".tif")
	r.register(goheif.Decode, []string{"image/heic", "image/heif"}, ".heic", ".heif")
	return r
}

func (r *codecRegistry) register(fn decodeFunc, mimes []string, exts ...string) {
	for _, m := range mimes {
		r.byMIME[m] = fn
	}
	for _, e := range exts {
		r.byExt[e] = fn
	}
}

// decoderFor prefers the sniffed content type; phones happily save JPEG bytes
// under a .heic name. The extension is only a fallback.
func (r *codecRegistry) decoderFor(path string) (decodeFunc, error) {
	if mtype, err := mimetype.DetectFile(path); err == nil {
		for m := mtype; m != nil; m = m.Parent() {
			if fn, ok := r.byMIME[m.String()]; ok {
				return fn, nil
			}
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if fn, ok := r.byExt[ext]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("no decoder for %s", filepath.Base(path))
}

// decode opens and decodes the image at path.
func (r *codecRegistry) decode(path string) (image.Image, error) {
	fn, err := r.decoderFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := fn(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}
