package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/jiamingluuu/RayTracer2D/pkg/config"
	"github.com/jiamingluuu/RayTracer2D/pkg/core"
	"github.com/jiamingluuu/RayTracer2D/pkg/renderer"
	"github.com/jiamingluuu/RayTracer2D/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run parses the command line, renders and writes the image. It returns
// the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	defaults := config.DefaultOptions()

	fs := flag.NewFlagSet("raytracer2d", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sceneName := fs.String("scene", defaults.Scene, "Scene: built-in name or path to a .yaml scene file")
	output := fs.String("out", defaults.Output, "Output image file")
	format := fs.String("format", "", "Output format: ppm, png, tiff or bmp (default from -out extension)")
	seed := fs.Int64("seed", defaults.Seed, "Random seed")
	workers := fs.Int("workers", defaults.Workers, "Number of parallel render workers")
	outline := fs.Bool("outline", false, "Draw shape outlines over the render")
	gamma := fs.Float64("gamma", defaults.Gamma, "Offset of the log tone mapping")
	configFile := fs.String("config", "", "YAML file with render options")
	help := fs.Bool("help", false, "Show help information")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if *help {
		printUsage(stdout, fs)
		return 0
	}

	opts := defaults
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		opts = loaded
	}

	// Flags given explicitly override the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			opts.Scene = *sceneName
		case "out":
			opts.Output = *output
		case "format":
			opts.Format = *format
		case "seed":
			opts.Seed = *seed
		case "workers":
			opts.Workers = *workers
		case "outline":
			opts.Outline = *outline
		case "gamma":
			opts.Gamma = *gamma
		}
	})

	positional := fs.Args()
	switch {
	case len(positional) == 4:
		if err := applyPositional(opts, positional); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			printUsage(stderr, fs)
			return 1
		}
	case len(positional) == 0 && *configFile != "":
	default:
		printUsage(stderr, fs)
		return 1
	}

	if err := opts.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printUsage(stderr, fs)
		return 1
	}

	fmt.Fprintf(stderr, "Working with:\n")
	fmt.Fprintf(stderr, "Image size (%d, %d)\n", opts.Width, opts.Height)
	fmt.Fprintf(stderr, "Number of samples: %d\n", opts.NumRays)
	fmt.Fprintf(stderr, "Max. recursion depth: %d\n", opts.MaxDepth)
	fmt.Fprintf(stderr, "Scene: %s\n", opts.Scene)

	logger := &renderer.DefaultLogger{Out: stderr}
	if err := render(ctx, opts, logger, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// applyPositional sets width, height, sample count and depth from the
// positional arguments
func applyPositional(opts *config.Options, args []string) error {
	values := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("argument %d: %q is not an integer", i+1, arg)
		}
		values[i] = v
	}
	opts.Width, opts.Height, opts.NumRays, opts.MaxDepth = values[0], values[1], values[2], values[3]
	return nil
}

func render(ctx context.Context, opts *config.Options, logger core.Logger, stdout io.Writer) error {
	factory, err := scene.FactoryFor(opts.Scene)
	if err != nil {
		return err
	}
	img, stats, err := renderer.RenderScene(ctx, func(seed int64) renderer.Scene { return factory(seed) },
		opts.Seed, opts.Width, opts.Height, opts.SamplingConfig(), opts.Workers, logger)
	if err != nil {
		return fmt.Errorf("render interrupted: %w", err)
	}

	img.AdjustGamma(opts.Gamma)
	if opts.Outline {
		if err := renderer.DrawOutlines(img, factory(opts.Seed)); err != nil {
			return err
		}
	}

	format, err := opts.OutputFormat()
	if err != nil {
		return err
	}
	rgba := img.ToRGBA()
	if err := renderer.SaveImage(opts.Output, rgba, format); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Render completed in %v\n", stats.Duration.Round(time.Millisecond))
	fmt.Fprintf(stdout, "Samples: %d, segments: %d (%.2f per sample), escaped: %d\n",
		stats.Samples, stats.Segments, stats.AverageSegments(), stats.Escaped)
	fmt.Fprintf(stdout, "Average luminance: %.4f\n", renderer.CalculateAverageLuminance(rgba))
	fmt.Fprintf(stdout, "Render saved as %s\n", opts.Output)
	return nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "USAGE: raytracer2d [options] sx sy num_samples max_depth\n")
	fmt.Fprintf(w, "  sx, sy - image resolution in pixels (in [%d %d])\n", config.MinImageSize, config.MaxImageSize)
	fmt.Fprintf(w, "  num_samples - Number of light rays to propagate (in [%d %d])\n", config.MinNumRays, config.MaxNumRays)
	fmt.Fprintf(w, "  max_depth - Maximum recursion depth (in [%d %d])\n", config.MinTraceDepth, config.MaxTraceDepth)
	fmt.Fprintf(w, "The positional arguments may be omitted when -config is given.\n")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(w, "  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w, "  <file>.yaml - Scene description file")
}
