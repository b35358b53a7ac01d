package output

import (
	"bufio"
	"fmt"
	"io"
)

// WritePPM writes src as a binary (P6) PPM with bits per channel, 1 to 8.
// Colors are tonemapped to sRGB and dithered.
func WritePPM(w io.Writer, src Source, bits int) error {
	if bits < 1 || bits > 8 {
		return fmt.Errorf("%w: PPM supports 1 to 8 bits per channel, got %d", ErrUnsupportedBitDepth, bits)
	}

	width, height := src.Size()
	buf := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(buf, "P6\n%d %d\n%d\n", width, height, 1<<bits-1); err != nil {
		return fmt.Errorf("while writing PPM header: %w", err)
	}

	dither := NewDither(bits, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := dither.Quantize(Tonemap(src.PixelAt(x, y)))
			if _, err := buf.Write([]byte{byte(p[0]), byte(p[1]), byte(p[2])}); err != nil {
				return fmt.Errorf("while writing PPM pixels: %w", err)
			}
		}
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("while flushing PPM: %w", err)
	}
	return nil
}
