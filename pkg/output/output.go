// Package output encodes rendered framebuffers as PPM, PNG or OpenEXR images.
package output

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

var (
	// ErrUnsupportedBitDepth is returned when a format cannot store the requested bits per channel
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	// ErrUnknownFormat is returned for format names or file extensions that have no encoder
	ErrUnknownFormat = errors.New("unknown image format")
)

// Source is a rectangular grid of linear colors, row 0 at the top
type Source interface {
	Size() (width, height int)
	PixelAt(x, y int) core.Vec3
}

// Format identifies an image file format
type Format int

const (
	FormatPPM Format = iota
	FormatPNG
	FormatEXR
)

// String returns the format's flag name
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatEXR:
		return "exr"
	default:
		return "ppm"
	}
}

// DefaultBitDepth returns the bits per channel used when none is requested
func (f Format) DefaultBitDepth() int {
	if f == FormatEXR {
		return 16
	}
	return 8
}

// ParseFormat converts a format name such as "png" to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "exr":
		return FormatEXR, nil
	default:
		return FormatPPM, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromExtension picks the format matching filename's extension
func FormatFromExtension(filename string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return FormatPPM, fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, filename)
	}
	return ParseFormat(ext)
}

// Options controls encoding
type Options struct {
	BitDepth int       // Bits per channel (0 = format default)
	ModTime  time.Time // PNG tIME chunk; zero omits it
	SRGB     bool      // PNG gAMA and sRGB chunks
}

// Encode writes src to w in the given format
func Encode(w io.Writer, src Source, format Format, options Options) error {
	if options.BitDepth == 0 {
		options.BitDepth = format.DefaultBitDepth()
	}

	switch format {
	case FormatPPM:
		return WritePPM(w, src, options.BitDepth)
	case FormatPNG:
		return WritePNG(w, src, options)
	case FormatEXR:
		return WriteEXR(w, src, options.BitDepth)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
}
