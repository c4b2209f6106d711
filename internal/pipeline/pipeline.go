package pipeline

import (
	"github.com/gridlens/gridlens/internal/canny"
	"github.com/gridlens/gridlens/internal/frame"
	"github.com/gridlens/gridlens/internal/geometry"
	"github.com/gridlens/gridlens/internal/hough"
	"github.com/gridlens/gridlens/internal/puzzle"
)

// DefaultCannyRadius is the smoothing radius used when no explicit radius
// is configured.
const DefaultCannyRadius = 5.0

// Result is the outcome of processing one frame. Corners and SampleGrid
// are in the processed frame's coordinate space and only meaningful when
// Found is true.
type Result struct {
	Found      bool
	Corners    [4]geometry.Point
	SampleGrid [16]geometry.Point
}

// Pipeline executes the detection stages on successive frames, reusing its
// intermediate buffers between calls.
type Pipeline struct {
	detector *canny.Detector
	finder   *puzzle.Finder

	gray  frame.Frame
	edges frame.Frame
	acc   hough.Accumulator
}

// New returns a pipeline with the given Canny smoothing radius. A radius
// of 0 or less selects DefaultCannyRadius.
func New(cannyRadius float64) *Pipeline {
	if cannyRadius <= 0 {
		cannyRadius = DefaultCannyRadius
	}
	return &Pipeline{
		detector: canny.New(cannyRadius),
		finder:   puzzle.NewFinder(),
	}
}

// Process runs the full detection sequence on src. A negative result is an
// ordinary per-frame outcome; the next frame starts fresh.
func (p *Pipeline) Process(src *frame.Frame) Result {
	frame.Grayscale(src, &p.gray)
	p.detector.Process(&p.gray, &p.edges)
	hough.Transform(&p.edges, &p.acc)

	found := p.finder.Find(src.Width, src.Height, &p.acc)
	res := Result{Found: found}
	if found {
		res.Corners = p.finder.Corners
		res.SampleGrid = p.finder.SampleGrid
	}
	return res
}

// Finder exposes the puzzle finder's retained detections for overlays.
func (p *Pipeline) Finder() *puzzle.Finder {
	return p.finder
}

// Edges exposes the edge mask of the last processed frame.
func (p *Pipeline) Edges() *frame.Frame {
	return &p.edges
}

// Accumulator exposes the Hough accumulator of the last processed frame.
func (p *Pipeline) Accumulator() *hough.Accumulator {
	return &p.acc
}
