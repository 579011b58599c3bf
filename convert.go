package main

import (
	"bufio"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
)

const jpegQuality = 95

// convertToJPEG decodes src and writes it as a JPEG to dst. src is never modified.
// The encoded bytes go to a temporary file in dst's directory first so a
// failed encode never leaves a truncated dst behind.
func convertToJPEG(codecs *codecRegistry, src, dst string) error {
	img, err := codecs.decode(src)
	if err != nil {
		return err
	}

	dir := filepath.Dir(dst)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	w := bufio.NewWriter(tmp)
	if err := jpeg.Encode(w, toRGB(img), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}

// toRGB returns an opaque three-channel version of img. Alpha is dropped, not
// composited: a half-transparent red pixel comes out fully red. Grayscale and
// paletted sources are expanded so the encoder never writes a one-channel JPEG.
func toRGB(img image.Image) image.Image {
	switch m := img.(type) {
	case *image.YCbCr:
		return m
	case *image.RGBA:
		if m.Opaque() {
			return m
		}
	case *image.NRGBA:
		if m.Opaque() {
			return m
		}
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			dst.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst
}
