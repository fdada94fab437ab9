// Command mandelbrot renders the Mandelbrot set and presents it as an image
// file, in the terminal, or in a browser.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/display"
)

type config struct {
	params    mandel.Params
	fillGap   bool
	out       string
	display   string
	addr      string
	noOverlay bool
	verbose   bool
	version   bool
}

func parseFlags(args []string) (config, error) {
	var c config
	fs := flag.NewFlagSet("mandelbrot", flag.ContinueOnError)
	fs.IntVar(&c.params.Size, "size", mandel.DefaultSize, "image side length in pixels")
	fs.IntVar(&c.params.Depth, "depth", mandel.DefaultDepth, "iteration cap")
	fs.Float64Var(&c.params.Escape2, "escape2", mandel.DefaultEscape2, "squared escape radius")
	fs.IntVar(&c.params.Workers, "workers", mandel.DefaultWorkers, "parallel partitions")
	fs.BoolVar(&c.fillGap, "fill-gap", false, "give the partition remainder to the last worker")
	fs.StringVar(&c.out, "out", "mandelbrot.png", "output file for -display=file")
	fs.StringVar(&c.display, "display", "file", "presentation: file, term or web")
	fs.StringVar(&c.addr, "addr", display.DefaultAddr, "listen address for -display=web")
	fs.BoolVar(&c.noOverlay, "no-overlay", false, "omit the elapsed-time caption")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
	fs.BoolVar(&c.version, "version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() > 0 {
		return config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return c, nil
}

func newSink(c config) (display.Sink, error) {
	switch c.display {
	case "file":
		return &display.FileSink{Path: c.out, NoOverlay: c.noOverlay}, nil
	case "term":
		s := display.NewTermSink(nil)
		s.NoOverlay = c.noOverlay
		return s, nil
	case "web":
		return &display.WebSink{Addr: c.addr, NoOverlay: c.noOverlay}, nil
	default:
		return nil, fmt.Errorf("unknown display %q (want file, term or web)", c.display)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	c, err := parseFlags(args)
	if err != nil {
		return err
	}
	if c.version {
		_, err := fmt.Fprintf(stdout, "mandelbrot %s\n", mandel.Version)
		return err
	}

	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	mandel.Logger().Debug("mandelbrot starting", "version", mandel.Version)

	sink, err := newSink(c)
	if err != nil {
		return err
	}

	workers := max(c.params.Workers, 1)
	pool := mandel.NewPool(workers)
	defer pool.Close()

	opts := []mandel.Option{mandel.WithPool(pool)}
	if c.fillGap {
		opts = append(opts, mandel.WithGapPolicy(mandel.GapFillLast))
	}

	res, err := mandel.NewRenderer(opts...).Render(c.params)
	if err != nil {
		return err
	}

	frame := display.NewFrame(res)
	log.Printf("rendered %dx%d in %s", c.params.Size, c.params.Size, frame.Caption)

	return sink.Present(ctx, frame)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		stop()
		log.Fatalf("mandelbrot: %v", err)
	}
}
