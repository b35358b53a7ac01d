package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/output"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// runApp runs the command line with args, capturing both output streams
func runApp(args ...string) (stdout, stderr *bytes.Buffer, err error) {
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	app := newApp()
	app.Writer = stdout
	app.ErrWriter = stderr
	err = app.Run(append([]string{"tracer"}, args...))
	return stdout, stderr, err
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		explicit    string
		expected    output.Format
		expectError bool
	}{
		{"stdout defaults to ppm", "-", "", output.FormatPPM, false},
		{"no extension defaults to ppm", "render", "", output.FormatPPM, false},
		{"png extension", "out/render.png", "", output.FormatPNG, false},
		{"exr extension", "render.EXR", "", output.FormatEXR, false},
		{"explicit wins over extension", "render.png", "exr", output.FormatEXR, false},
		{"explicit on stdout", "-", "png", output.FormatPNG, false},
		{"unknown extension", "render.jpg", "", output.FormatPPM, true},
		{"unknown explicit", "render.png", "gif", output.FormatPPM, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := resolveFormat(tt.filename, tt.explicit)
			if tt.expectError {
				if !errors.Is(err, output.ErrUnknownFormat) {
					t.Errorf("Expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if format != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, format)
			}
		})
	}
}

func TestResolveSeed(t *testing.T) {
	seed, err := resolveSeed(true, 1234)
	if err != nil || seed != 1234 {
		t.Errorf("Expected the given seed 1234, got %d (%v)", seed, err)
	}

	a, errA := resolveSeed(false, 0)
	b, errB := resolveSeed(false, 0)
	if errA != nil || errB != nil {
		t.Fatalf("Unexpected error: %v %v", errA, errB)
	}
	if a == b {
		t.Errorf("Expected two random seeds to differ, both were %d", a)
	}
}

func TestApp_RendersPNG(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sphere.png")
	_, stderr, err := runApp("-S", "sphere", "-w", "16", "-s", "2", "-d", "4", "-t", "3",
		"-r", "1", "--sample-seed", "2", "-o", filename)
	if err != nil {
		t.Fatalf("Render failed: %v\n%s", err, stderr)
	}

	f, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Expected a valid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("Expected 16x16 image, got %dx%d", b.Dx(), b.Dy())
	}

	if !strings.Contains(stderr.String(), "100.00%") {
		t.Errorf("Expected progress to reach 100%%, got %q", stderr.String())
	}
	if strings.Contains(stderr.String(), "using seed") {
		t.Errorf("Expected no seed echo when seeds are given")
	}
}

func TestApp_WritesPPMToStdout(t *testing.T) {
	stdout, stderr, err := runApp("-S", "sphere", "-w", "8", "-s", "1", "-d", "2", "-v")
	if err != nil {
		t.Fatalf("Render failed: %v\n%s", err, stderr)
	}

	if !bytes.HasPrefix(stdout.Bytes(), []byte("P6\n8 8\n255\n")) {
		t.Errorf("Expected a P6 header, got %q", stdout.Bytes()[:min(16, stdout.Len())])
	}
	if want := 11 + 8*8*3; stdout.Len() != want {
		t.Errorf("Expected %d bytes, got %d", want, stdout.Len())
	}

	log := stderr.String()
	for _, want := range []string{"using seed:", "using sample seed:", "thread   0:", "total:", "bvh:"} {
		if !strings.Contains(log, want) {
			t.Errorf("Expected verbose output to contain %q, got %q", want, log)
		}
	}
}

func TestApp_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero threads", []string{"-t", "0"}},
		{"zero width", []string{"-w", "0"}},
		{"zero samples", []string{"-s", "0"}},
		{"empty output", []string{"-o", ""}},
		{"unknown format", []string{"-f", "gif"}},
		{"unknown debug mode", []string{"--debug", "normals"}},
		{"unsupported bit depth", []string{"-S", "sphere", "-w", "4", "-s", "1", "-b", "12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runApp(tt.args...); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}

func TestRun_UnknownScene(t *testing.T) {
	opts := options{
		threads: 1, width: 4, samples: 1, depth: 1,
		output: "-", scene: "nonexistent", textureDir: t.TempDir(),
	}
	err := run(context.Background(), opts, &bytes.Buffer{}, &bytes.Buffer{})
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := options{threads: 2, width: 8, samples: 1, depth: 1, output: "-", scene: "sphere"}
	var stdout bytes.Buffer
	err := run(ctx, opts, &stdout, &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected no image after cancellation, got %d bytes", stdout.Len())
	}
}

// renderBytes runs a small fixed-seed render of the sphere scene to a buffer
func renderBytes(t *testing.T, threads int, format output.Format) []byte {
	t.Helper()
	opts := options{
		threads: threads, width: 16, samples: 4, depth: 8, tileSize: 8,
		worldSeed: 42, sampleSeed: 7,
		output: "-", format: format, scene: "sphere",
	}
	var stdout bytes.Buffer
	if err := run(context.Background(), opts, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return stdout.Bytes()
}

func TestRun_DeterministicOutput(t *testing.T) {
	for _, format := range []output.Format{output.FormatPPM, output.FormatEXR} {
		t.Run(format.String(), func(t *testing.T) {
			first := renderBytes(t, 2, format)
			second := renderBytes(t, 2, format)
			if len(first) == 0 {
				t.Fatalf("Expected image bytes")
			}
			if !bytes.Equal(first, second) {
				t.Errorf("Expected identical %v output for identical seeds", format)
			}
		})
	}
}

func TestRun_ThreadCountDoesNotChangeImage(t *testing.T) {
	for _, format := range []output.Format{output.FormatPPM, output.FormatEXR} {
		t.Run(format.String(), func(t *testing.T) {
			single := renderBytes(t, 1, format)
			many := renderBytes(t, 4, format)
			if !bytes.Equal(single, many) {
				t.Errorf("Expected 1 and 4 threads to produce identical %v output", format)
			}
		})
	}
}

func TestApp_NoTimestampPNGIsReproducible(t *testing.T) {
	dir := t.TempDir()
	var images [2][]byte
	for i := range images {
		filename := filepath.Join(dir, fmt.Sprintf("sphere%d.png", i))
		_, stderr, err := runApp("-S", "sphere", "-w", "8", "-s", "2", "-d", "4", "-t", "2",
			"-r", "3", "--sample-seed", "5", "--no-timestamp", "-o", filename)
		if err != nil {
			t.Fatalf("Render failed: %v\n%s", err, stderr)
		}
		if images[i], err = os.ReadFile(filename); err != nil {
			t.Fatalf("Expected output file: %v", err)
		}
	}

	if bytes.Contains(images[0], []byte("tIME")) {
		t.Errorf("Expected no tIME chunk with --no-timestamp")
	}
	if !bytes.Equal(images[0], images[1]) {
		t.Errorf("Expected identical PNG bytes for identical seeds")
	}
}
