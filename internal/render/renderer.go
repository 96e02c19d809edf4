// Package render draws Mandelbrot scenes into pixel frames.
//
// Every pixel depends only on the scene snapshot and its own coordinates, so
// a frame is split into row bands that render concurrently and write
// disjoint parts of the buffer. Waiting for the bands is the only
// synchronization.
package render

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/mandelzoom/internal/camera"
	"github.com/san-kum/mandelzoom/internal/cplx"
	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/gradient"
)

// ErrNoGradient is returned when a scene has no gradient to color with.
var ErrNoGradient = errors.New("render: scene has no gradient")

// Scene is an immutable snapshot of everything one frame needs.
type Scene struct {
	Camera        camera.Camera
	Gradient      *gradient.Gradient
	MaxIterations int
}

type Renderer struct {
	workers int
	// Frames with fewer rows than minRows render on the calling goroutine.
	minRows int
	// Each worker gets this many bands on average, which evens out rows
	// that cost more because they cross the set.
	bandsPerWorker int
	kernel         fractal.Kernel
}

type Option func(*Renderer)

// WithKernel replaces the escape-time kernel.
func WithKernel(k fractal.Kernel) Option {
	return func(r *Renderer) { r.kernel = k }
}

// WithSerialThreshold sets the row count below which frames render serially.
func WithSerialThreshold(rows int) Option {
	return func(r *Renderer) { r.minRows = rows }
}

// NewRenderer creates a renderer with the given worker count. Zero or a
// negative count uses one worker per CPU.
func NewRenderer(workers int, opts ...Option) *Renderer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	r := &Renderer{
		workers:        workers,
		minRows:        16,
		bandsPerWorker: 4,
		kernel:         fractal.Evaluate,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Workers() int { return r.workers }

// Render fills f with s. It returns ctx.Err() if the context ends before the
// frame is complete, leaving the frame partially drawn.
func (r *Renderer) Render(ctx context.Context, s Scene, f *Frame) error {
	if s.Gradient == nil {
		return ErrNoGradient
	}
	if f.Empty() {
		return nil
	}

	start := time.Now()
	tl, px := s.Camera.TopLeftAndStep(f.Width, f.Height)

	var err error
	if r.workers == 1 || f.Height < r.minRows {
		err = r.rows(ctx, s, f, tl, px, 0, f.Height)
	} else {
		err = r.parallel(ctx, s, f, tl, px)
	}

	Logger().Debug("frame rendered",
		"width", f.Width,
		"height", f.Height,
		"workers", r.workers,
		"elapsed", time.Since(start),
	)
	return err
}

func (r *Renderer) parallel(ctx context.Context, s Scene, f *Frame, tl cplx.Complex, px float64) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	bands := min(r.workers*r.bandsPerWorker, f.Height)
	chunk := (f.Height + bands - 1) / bands

	for start := 0; start < f.Height; start += chunk {
		start, end := start, min(start+chunk, f.Height)
		g.Go(func() error {
			return r.rows(gctx, s, f, tl, px, start, end)
		})
	}

	return g.Wait()
}

func (r *Renderer) rows(ctx context.Context, s Scene, f *Frame, tl cplx.Complex, px float64, y0, y1 int) error {
	for y := y0; y < y1; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		im := tl.Imag + px*float64(y)
		row := f.Row(y)
		for x := 0; x < f.Width; x++ {
			p := cplx.New(tl.Real+px*float64(x), im)
			it := r.kernel(p, s.MaxIterations)
			writePixel(f.Format, row[4*x:4*x+4], s.Gradient.Color(it, s.MaxIterations))
		}
	}
	return nil
}
