package output

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"time"
)

// pngHeaderEnd is the length of the signature plus the IHDR chunk, where
// ancillary chunks are spliced in
const pngHeaderEnd = 8 + 4 + 4 + 13 + 4

// pngPerceptualIntent is the sRGB rendering intent written to the sRGB chunk
const pngPerceptualIntent = 0

// WritePNG writes src as an RGB PNG with options.BitDepth bits per channel, 1 to 16.
// Depths up to 8 are stored in 8-bit samples, larger ones in 16-bit samples, with
// the most significant bits replicated into the unused low bits and an sBIT chunk
// recording the true depth.
func WritePNG(w io.Writer, src Source, options Options) error {
	bits := options.BitDepth
	if bits < 1 || bits > 16 {
		return fmt.Errorf("%w: PNG supports 1 to 16 bits per channel, got %d", ErrUnsupportedBitDepth, bits)
	}

	var encoded bytes.Buffer
	if err := png.Encode(&encoded, quantizeImage(src, bits)); err != nil {
		return fmt.Errorf("while encoding PNG: %w", err)
	}
	data := encoded.Bytes()
	if len(data) < pngHeaderEnd || !bytes.Equal(data[12:16], []byte("IHDR")) {
		return fmt.Errorf("while encoding PNG: unexpected stream layout")
	}

	var chunks bytes.Buffer
	if bits != 8 && bits != 16 {
		writePNGChunk(&chunks, "sBIT", []byte{byte(bits), byte(bits), byte(bits)})
	}
	if !options.ModTime.IsZero() {
		writePNGChunk(&chunks, "tIME", pngTime(options.ModTime))
	}
	if options.SRGB {
		gamma := make([]byte, 4)
		binary.BigEndian.PutUint32(gamma, uint32(math.Round(100000/2.2)))
		writePNGChunk(&chunks, "gAMA", gamma)
		writePNGChunk(&chunks, "sRGB", []byte{pngPerceptualIntent})
	}

	for _, part := range [][]byte{data[:pngHeaderEnd], chunks.Bytes(), data[pngHeaderEnd:]} {
		if _, err := w.Write(part); err != nil {
			return fmt.Errorf("while writing PNG: %w", err)
		}
	}
	return nil
}

// quantizeImage tonemaps and dithers src into an opaque 8- or 16-bit image
func quantizeImage(src Source, bits int) image.Image {
	width, height := src.Size()
	bounds := image.Rect(0, 0, width, height)
	dither := NewDither(bits, width)

	if bits <= 8 {
		img := image.NewRGBA(bounds)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				p := dither.Quantize(Tonemap(src.PixelAt(x, y)))
				img.SetRGBA(x, y, color.RGBA{
					R: uint8(replicateBits(p[0], bits, 8)),
					G: uint8(replicateBits(p[1], bits, 8)),
					B: uint8(replicateBits(p[2], bits, 8)),
					A: 0xff,
				})
			}
		}
		return img
	}

	img := image.NewRGBA64(bounds)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := dither.Quantize(Tonemap(src.PixelAt(x, y)))
			img.SetRGBA64(x, y, color.RGBA64{
				R: replicateBits(p[0], bits, 16),
				G: replicateBits(p[1], bits, 16),
				B: replicateBits(p[2], bits, 16),
				A: 0xffff,
			})
		}
	}
	return img
}

// replicateBits widens a bits-wide level to storage bits by repeating its most
// significant bits, so 0 stays all zeroes and the maximum becomes all ones
func replicateBits(level uint16, bits, storage int) uint16 {
	value := level << (storage - bits)
	for written := storage; written > bits; written -= bits {
		value |= value >> bits
	}
	return value
}

// writePNGChunk appends a length-prefixed, CRC-terminated chunk
func writePNGChunk(buf *bytes.Buffer, tag string, payload []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(payload)))
	buf.Write(length[:])

	crc := crc32.NewIEEE()
	crc.Write([]byte(tag))
	crc.Write(payload)
	buf.WriteString(tag)
	buf.Write(payload)

	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	buf.Write(sum[:])
}

// pngTime encodes t in UTC as a tIME payload
func pngTime(t time.Time) []byte {
	t = t.UTC()
	payload := make([]byte, 7)
	binary.BigEndian.PutUint16(payload, uint16(t.Year()))
	payload[2] = byte(t.Month())
	payload[3] = byte(t.Day())
	payload[4] = byte(t.Hour())
	payload[5] = byte(t.Minute())
	payload[6] = byte(t.Second())
	return payload
}
