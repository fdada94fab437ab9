// Package mandel renders the Mandelbrot set with smooth escape-time coloring
// on a fixed worker pool.
//
// # Overview
//
// A render turns an N×N grid into packed ARGB pixels in two parallel phases
// separated by a single-threaded reduction:
//
//  1. Every grid index is mapped to the plane window [-2, 1) × [-1.5, 1.5)
//     and iterated to a smooth (continuous) escape value.
//  2. The minimum and maximum of all escape values are found.
//  3. Every escape value is normalized against that range and interpolated
//     along a 19-anchor color ramp.
//
// Both phases split the flat pixel index space into one contiguous span per
// worker. Spans never overlap, so workers write their part of the shared
// buffers without locks; each phase ends at a barrier.
//
// # Quick Start
//
//	res, err := mandel.Render(mandel.DefaultParams())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(mandel.FormatElapsed(res.Elapsed))
//	img := res.Image() // image.Image over res.Pixels
//
// # Pools
//
// Render creates and closes a pool per call. Programs that render repeatedly
// create a Pool once and pass it with WithPool:
//
//	pool := mandel.NewPool(8)
//	defer pool.Close()
//	r := mandel.NewRenderer(mandel.WithPool(pool))
//
// # Partition Gap
//
// Span size is Size*Size / Workers with truncating division. Under the
// default GapTruncate the remaining Size*Size % Workers pixels are never
// computed and stay zero. The default 1000×1000 grid on 8 workers divides
// evenly. Use WithGapPolicy(GapFillLast) to render every pixel regardless.
//
// # Presentation
//
// The package has no display dependency. See package display for sinks that
// write image files, draw into a terminal, or serve the frame to a browser.
package mandel

// Version is the current version of the library.
const Version = "0.1.0"
