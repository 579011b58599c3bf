package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// identifyingFields are the EXIF fields that must be gone after a scrub.
// Structural TIFF tags (dimensions, strip offsets) survive any scrub of a
// TIFF file and are deliberately not listed.
var identifyingFields = []exif.FieldName{
	exif.Make,
	exif.Model,
	exif.Software,
	exif.Artist,
	exif.Copyright,
	exif.ImageDescription,
	exif.DateTime,
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.GPSLatitude,
	exif.GPSLongitude,
	exif.ThumbJPEGInterchangeFormat,
}

// residualMetadata lists the identifying EXIF fields still readable in path.
// A file without any EXIF block yields an empty list; a block that is present
// but cannot be parsed is an error.
func residualMetadata(path string) ([]exif.FieldName, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil && exif.IsCriticalError(err) {
		if noExif(err) {
			return nil, nil
		}
		return nil, err
	}
	if x == nil {
		return nil, nil
	}

	var found []exif.FieldName
	for _, name := range identifyingFields {
		if _, err := x.Get(name); err == nil {
			found = append(found, name)
		}
	}
	return found, nil
}

// noExif reports whether a decode error means the file simply carries no EXIF
// block: the stream ended before an APP1 segment, or the APP1 segment is not EXIF (XMP).
// goexif exports no sentinel for the latter, so its message is matched.
func noExif(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		strings.Contains(err.Error(), "failed to find exif intro marker")
}
