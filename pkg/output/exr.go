package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/mrjoshuak/go-openexr/exr"
)

// exrChannels are the stored channels; the writer orders them alphabetically on disk
var exrChannels = []string{"R", "G", "B"}

// WriteEXR writes src as an uncompressed scanline OpenEXR image with linear
// half (16 bit) or float (32 bit) R, G and B channels
func WriteEXR(w io.Writer, src Source, bits int) error {
	var pixelType exr.PixelType
	switch bits {
	case 16:
		pixelType = exr.PixelTypeHalf
	case 32:
		pixelType = exr.PixelTypeFloat
	default:
		return fmt.Errorf("%w: EXR supports 16 or 32 bits per channel, got %d", ErrUnsupportedBitDepth, bits)
	}

	width, height := src.Size()
	header := exr.NewScanlineHeader(width, height)
	header.SetCompression(exr.CompressionNone)

	channels := exr.NewChannelList()
	for _, name := range exrChannels {
		channels.Add(exr.Channel{Name: name, Type: pixelType, XSampling: 1, YSampling: 1})
	}
	header.SetChannels(channels)

	fb := exr.NewFrameBuffer()
	slices := make([]*exr.Slice, len(exrChannels))
	for i, name := range exrChannels {
		slices[i] = exr.NewSlice(pixelType, width, height)
		fb.Set(name, slices[i])
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixel := src.PixelAt(x, y)
			slices[0].SetFloat32(x, y, float32(pixel.X))
			slices[1].SetFloat32(x, y, float32(pixel.Y))
			slices[2].SetFloat32(x, y, float32(pixel.Z))
		}
	}

	// The writer patches its offset table, so it needs a seekable destination
	var file seekBuffer
	writer, err := exr.NewScanlineWriter(&file, header)
	if err != nil {
		return fmt.Errorf("while creating EXR writer: %w", err)
	}
	writer.SetFrameBuffer(fb)
	if err := writer.WritePixels(height); err != nil {
		writer.Close()
		return fmt.Errorf("while writing EXR scanlines: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("while finishing EXR: %w", err)
	}

	if _, err := w.Write(file.data); err != nil {
		return fmt.Errorf("while writing EXR: %w", err)
	}
	return nil
}

// seekBuffer is an in-memory io.WriteSeeker
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if end := b.pos + len(p); end > len(b.data) {
		b.data = append(b.data, make([]byte, end-len(b.data))...)
	}
	n := copy(b.data[b.pos:], p)
	b.pos += n
	return n, nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(b.pos)
	case io.SeekEnd:
		base = int64(len(b.data))
	default:
		return 0, errors.New("seek: invalid whence")
	}
	pos := base + offset
	if pos < 0 {
		return 0, errors.New("seek: negative position")
	}
	b.pos = int(pos)
	return pos, nil
}
