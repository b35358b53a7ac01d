package main

import (
	"bufio"
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/integrator"
	"github.com/df07/go-tile-pathtracer/pkg/output"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"
)

// stdoutName selects standard output as the image destination
const stdoutName = "-"

// options holds the parsed command line
type options struct {
	threads    int
	width      int
	samples    int
	depth      int
	tileSize   int
	worldSeed  uint64
	sampleSeed uint64
	output     string
	format     output.Format
	bitDepth   int
	scene      string
	textureDir string
	debug      integrator.DebugMode
	verbose    bool
	// noTimestamp omits the PNG modification time so identical renders are byte-identical
	noTimestamp bool
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// -v is verbose, so the version flag only has a long form
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "tracer"
	app.Usage = "render a preset scene with a tiled, multithreaded path tracer"
	app.Version = "0.1.0"
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "threads, t",
			Value: defaultThreads(),
			Usage: "number of render threads",
		},
		cli.IntFlag{
			Name:  "width, w",
			Value: 600,
			Usage: "image width in pixels; the height follows the scene's aspect ratio",
		},
		cli.IntFlag{
			Name:  "samples, s",
			Value: 100,
			Usage: "samples per pixel",
		},
		cli.IntFlag{
			Name:  "depth, d",
			Value: 50,
			Usage: "maximum ray bounce depth",
		},
		cli.Uint64Flag{
			Name:  "seed, r",
			Usage: "seed for scene generation (default: random)",
		},
		cli.Uint64Flag{
			Name:  "sample-seed",
			Usage: "seed for pixel sampling (default: random)",
		},
		cli.StringFlag{
			Name:  "output, o",
			Value: stdoutName,
			Usage: "output file, or - for standard output",
		},
		cli.StringFlag{
			Name:  "format, f",
			Usage: "image format: ppm, png or exr (default: from the output extension, else ppm)",
		},
		cli.IntFlag{
			Name:  "bit-depth, b",
			Usage: "bits per channel: ppm 1-8, png 1-16, exr 16 or 32 (default: 8, or 16 for exr)",
		},
		cli.StringFlag{
			Name:  "scene, S",
			Value: "weekend",
			Usage: "scene to render: " + strings.Join(scene.Names(), ", "),
		},
		cli.StringFlag{
			Name:  "textures",
			Value: scene.DefaultOptions().TextureDir,
			Usage: "directory holding image textures",
		},
		cli.IntFlag{
			Name:  "tile-size",
			Value: renderer.DefaultTileSize,
			Usage: "tile edge length in pixels",
		},
		cli.StringFlag{
			Name:  "debug",
			Usage: "render a diagnostic view instead of color: depth or bvh",
		},
		cli.BoolFlag{
			Name:  "no-timestamp",
			Usage: "leave the modification time out of PNG output",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "print per-thread statistics and host information",
		},
	}
	app.Action = render
	return app
}

// defaultThreads returns the logical CPU count reported by the OS
func defaultThreads() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

func parseOptions(c *cli.Context) (options, error) {
	opts := options{
		threads:    c.Int("threads"),
		width:      c.Int("width"),
		samples:    c.Int("samples"),
		depth:      c.Int("depth"),
		tileSize:   c.Int("tile-size"),
		output:     c.String("output"),
		bitDepth:   c.Int("bit-depth"),
		scene:      c.String("scene"),
		textureDir: c.String("textures"),
		verbose:    c.Bool("verbose"),

		noTimestamp: c.Bool("no-timestamp"),
	}

	switch {
	case opts.threads <= 0:
		return opts, fmt.Errorf("threads must be positive, got %d", opts.threads)
	case opts.width <= 0:
		return opts, fmt.Errorf("width must be positive, got %d", opts.width)
	case opts.samples <= 0:
		return opts, fmt.Errorf("samples must be positive, got %d", opts.samples)
	case opts.depth < 0:
		return opts, fmt.Errorf("depth must not be negative, got %d", opts.depth)
	case opts.output == "":
		return opts, errors.New("output must not be empty")
	}

	var err error
	if opts.format, err = resolveFormat(opts.output, c.String("format")); err != nil {
		return opts, err
	}
	if opts.debug, err = integrator.ParseDebugMode(c.String("debug")); err != nil {
		return opts, err
	}

	errOut := c.App.ErrWriter
	if opts.worldSeed, err = resolveSeed(c.IsSet("seed"), c.Uint64("seed")); err != nil {
		return opts, err
	}
	if !c.IsSet("seed") {
		fmt.Fprintf(errOut, "using seed: %d\n", opts.worldSeed)
	}
	if opts.sampleSeed, err = resolveSeed(c.IsSet("sample-seed"), c.Uint64("sample-seed")); err != nil {
		return opts, err
	}
	if !c.IsSet("sample-seed") {
		fmt.Fprintf(errOut, "using sample seed: %d\n", opts.sampleSeed)
	}

	return opts, nil
}

// resolveFormat picks the explicit format if given, else the one named by the
// output extension, else PPM
func resolveFormat(filename, explicit string) (output.Format, error) {
	if explicit != "" {
		return output.ParseFormat(explicit)
	}
	if filename == stdoutName {
		return output.FormatPPM, nil
	}
	if filepath.Ext(filename) == "" {
		return output.FormatPPM, nil
	}
	return output.FormatFromExtension(filename)
}

// resolveSeed returns value when it was given, otherwise a fresh seed from the OS
func resolveSeed(given bool, value uint64) (uint64, error) {
	if given {
		return value, nil
	}
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("reading random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func render(c *cli.Context) error {
	opts, err := parseOptions(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return run(ctx, opts, c.App.Writer, c.App.ErrWriter)
}

// run builds the scene, renders it and writes the image
func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	worldRandom := rand.New(rand.NewSource(int64(opts.worldSeed)))
	s, err := scene.Build(opts.scene, worldRandom, scene.Options{TextureDir: opts.textureDir})
	if err != nil {
		return err
	}
	world, err := s.BuildBVH(worldRandom)
	if err != nil {
		return err
	}

	var logger core.Logger
	if opts.verbose {
		logger = renderer.NewWriterLogger(stderr)
		printHost(stderr)
		stats := world.Stats()
		fmt.Fprintf(stderr, "bvh: %d objects, %d nodes, %d leaves, depth %d\n",
			stats.Objects, stats.Nodes, stats.Leaves, stats.MaxDepth)
	}

	camera := s.Camera()
	config := renderer.Config{
		Width:           opts.width,
		Height:          camera.ImageHeight(opts.width),
		SamplesPerPixel: opts.samples,
		MaxDepth:        opts.depth,
		TileSize:        opts.tileSize,
		NumWorkers:      opts.threads,
		SampleSeed:      opts.sampleSeed,
		Debug:           opts.debug,
	}
	tracer := renderer.NewRaytracer(world, camera, s.Background, config, logger)

	fb, stats, err := tracer.Render(ctx, func(p renderer.Progress) {
		fmt.Fprintf(stderr, "\rprogress: %6.2f%% | eta: %ss  ", 100*p.Fraction, renderer.FormatETA(p.ETA))
	})
	fmt.Fprintln(stderr)
	if err != nil {
		return err
	}

	if opts.verbose {
		for i, ws := range stats.Workers {
			fmt.Fprintf(stderr, "thread %3d: %s\n", i, renderer.FormatRayRate(ws.RaysPerSecond(stats.SamplesPerPixel)))
		}
		fmt.Fprintf(stderr, "total:      %s\n", renderer.FormatRayRate(stats.RaysPerSecond()))
		fmt.Fprintf(stderr, "elapsed:    %s\n", stats.Elapsed.Round(time.Millisecond))
	}

	return writeImage(fb, opts, stdout)
}

func writeImage(fb *renderer.Framebuffer, opts options, stdout io.Writer) error {
	encodeOptions := output.Options{
		BitDepth: opts.bitDepth,
		SRGB:     true,
	}
	if !opts.noTimestamp {
		encodeOptions.ModTime = time.Now()
	}

	if opts.output == stdoutName {
		w := bufio.NewWriter(stdout)
		if err := output.Encode(w, fb, opts.format, encodeOptions); err != nil {
			return err
		}
		return w.Flush()
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := output.Encode(w, fb, opts.format, encodeOptions); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", opts.output, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", opts.output, err)
	}
	return f.Close()
}

// printHost reports the CPU model and memory of the machine doing the render
func printHost(w io.Writer) {
	infos, err := cpu.Info()
	if err == nil && len(infos) > 0 {
		fmt.Fprintf(w, "cpu: %s (%.2f GHz), %d logical cores\n", infos[0].ModelName, infos[0].Mhz/1000, defaultThreads())
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		fmt.Fprintf(w, "memory: %d MiB total, %d MiB available\n", vm.Total>>20, vm.Available>>20)
	}
}
