package canny

import (
	"math"

	"github.com/gridlens/gridlens/internal/frame"
)

// Default hysteresis thresholds on the 0-255 gradient magnitude scale.
// Lower values admit more (and noisier) edges.
const (
	DefaultLowThreshold  = 50.0
	DefaultHighThreshold = 150.0
)

// Gradient direction quantized to the four neighbor axes used by
// non-maximum suppression.
const (
	dirHorizontal = iota // edge normal points left/right
	dirDiagonalNE        // normal points toward upper-right/lower-left
	dirVertical          // normal points up/down
	dirDiagonalNW        // normal points toward upper-left/lower-right
)

// Detector performs Canny edge detection with a smoothing radius fixed at
// construction. The zero value is not usable; call New.
type Detector struct {
	radius float64
	kernel []float64 // 1-D Gaussian taps, separable
	low    float64
	high   float64

	// Scratch buffers reused across frames.
	width, height int
	gray          []float64
	smooth        []float64
	tmp           []float64
	magnitude     []float64
	direction     []uint8
	stack         []int
}

// New returns a detector with the given smoothing radius and the default
// hysteresis thresholds. The radius controls the extent of the Gaussian
// blur applied before gradient computation; larger radii suppress more
// noise at the cost of edge localization.
func New(radius float64) *Detector {
	return NewWithThresholds(radius, DefaultLowThreshold, DefaultHighThreshold)
}

// NewWithThresholds returns a detector with explicit hysteresis thresholds.
// Pixels whose gradient magnitude exceeds high seed edges; connected pixels
// above low extend them.
func NewWithThresholds(radius, low, high float64) *Detector {
	if radius < 1 {
		radius = 1
	}
	return &Detector{
		radius: radius,
		kernel: gaussianKernel(radius),
		low:    low,
		high:   high,
	}
}

// Radius returns the smoothing radius the detector was built with.
func (d *Detector) Radius() float64 {
	return d.radius
}

// Process converts a grayscale frame into a binary edge mask of the same
// dimensions, where every pixel is exactly 0 or 255. An empty input yields
// an empty output.
func (d *Detector) Process(src, dst *frame.Frame) {
	if src.Empty() {
		dst.Resize(0, 0)
		return
	}

	w, h := src.Width, src.Height
	d.resizeScratch(w, h)
	dst.Resize(w, h)

	// Intensity from the first channel; the input is a grayscale frame
	// with equal triples.
	for i, j := 0, 0; j < len(src.Pix); i, j = i+1, j+3 {
		d.gray[i] = float64(src.Pix[j])
	}

	d.blur(w, h)
	d.gradients(w, h)
	d.suppress(w, h)
	d.hysteresis(w, h, dst)
}

func (d *Detector) resizeScratch(w, h int) {
	if d.width == w && d.height == h {
		return
	}
	n := w * h
	d.gray = make([]float64, n)
	d.smooth = make([]float64, n)
	d.tmp = make([]float64, n)
	d.magnitude = make([]float64, n)
	d.direction = make([]uint8, n)
	d.width = w
	d.height = h
}

// gaussianKernel builds normalized 1-D Gaussian taps covering +/-radius
// with sigma = radius/2, the usual three-sigma-ish truncation.
func gaussianKernel(radius float64) []float64 {
	half := int(math.Ceil(radius))
	sigma := radius / 2
	if sigma < 0.5 {
		sigma = 0.5
	}

	kernel := make([]float64, 2*half+1)
	var sum float64
	for i := -half; i <= half; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+half] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// blur applies the separable Gaussian: horizontal pass into tmp, vertical
// pass into smooth. Borders clamp to the nearest pixel.
func (d *Detector) blur(w, h int) {
	half := len(d.kernel) / 2

	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var sum float64
			for k := -half; k <= half; k++ {
				sum += d.gray[row+clamp(x+k, 0, w-1)] * d.kernel[k+half]
			}
			d.tmp[row+x] = sum
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -half; k <= half; k++ {
				sum += d.tmp[clamp(y+k, 0, h-1)*w+x] * d.kernel[k+half]
			}
			d.smooth[y*w+x] = sum
		}
	}
}

// gradients computes Sobel magnitude and the quantized direction sector for
// every pixel.
func (d *Detector) gradients(w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0 := clamp(x-1, 0, w-1)
			x1 := clamp(x+1, 0, w-1)
			y0 := clamp(y-1, 0, h-1)
			y1 := clamp(y+1, 0, h-1)

			tl := d.smooth[y0*w+x0]
			tc := d.smooth[y0*w+x]
			tr := d.smooth[y0*w+x1]
			ml := d.smooth[y*w+x0]
			mr := d.smooth[y*w+x1]
			bl := d.smooth[y1*w+x0]
			bc := d.smooth[y1*w+x]
			br := d.smooth[y1*w+x1]

			gx := (tr + 2*mr + br) - (tl + 2*ml + bl)
			gy := (bl + 2*bc + br) - (tl + 2*tc + tr)

			i := y*w + x
			d.magnitude[i] = math.Sqrt(gx*gx + gy*gy)
			d.direction[i] = quantizeDirection(math.Atan2(gy, gx))
		}
	}
}

// quantizeDirection maps a gradient angle to one of four neighbor axes.
func quantizeDirection(angle float64) uint8 {
	if angle < 0 {
		angle += math.Pi
	}
	switch {
	case angle < math.Pi/8 || angle >= 7*math.Pi/8:
		return dirHorizontal
	case angle < 3*math.Pi/8:
		return dirDiagonalNW
	case angle < 5*math.Pi/8:
		return dirVertical
	default:
		return dirDiagonalNE
	}
}

// suppress zeroes every pixel that is not a local maximum along its
// gradient direction, thinning edges to single-pixel ridges. The result
// replaces tmp.
func (d *Detector) suppress(w, h int) {
	for i := range d.tmp {
		d.tmp[i] = 0
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			mag := d.magnitude[i]
			if mag == 0 {
				continue
			}

			var n1, n2 float64
			switch d.direction[i] {
			case dirHorizontal:
				n1 = d.magnitude[i-1]
				n2 = d.magnitude[i+1]
			case dirVertical:
				n1 = d.magnitude[i-w]
				n2 = d.magnitude[i+w]
			case dirDiagonalNW:
				n1 = d.magnitude[i-w-1]
				n2 = d.magnitude[i+w+1]
			default: // dirDiagonalNE
				n1 = d.magnitude[i-w+1]
				n2 = d.magnitude[i+w-1]
			}

			if mag >= n1 && mag >= n2 {
				d.tmp[i] = mag
			}
		}
	}
}

// hysteresis traces edges: pixels above the high threshold seed a flood
// fill that claims connected pixels above the low threshold. Everything
// else stays 0.
func (d *Detector) hysteresis(w, h int, dst *frame.Frame) {
	for i := range dst.Pix {
		dst.Pix[i] = 0
	}

	d.stack = d.stack[:0]
	for i, mag := range d.tmp {
		if mag >= d.high && dst.Pix[i*3] == 0 {
			d.markEdge(i, dst)
			d.stack = append(d.stack, i)
			d.trace(w, h, dst)
		}
	}
}

// trace claims weak neighbors of already-marked edge pixels.
func (d *Detector) trace(w, h int, dst *frame.Frame) {
	for len(d.stack) > 0 {
		i := d.stack[len(d.stack)-1]
		d.stack = d.stack[:len(d.stack)-1]

		x := i % w
		y := i / w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				n := ny*w + nx
				if d.tmp[n] >= d.low && dst.Pix[n*3] == 0 {
					d.markEdge(n, dst)
					d.stack = append(d.stack, n)
				}
			}
		}
	}
}

func (d *Detector) markEdge(i int, dst *frame.Frame) {
	dst.Pix[i*3] = 255
	dst.Pix[i*3+1] = 255
	dst.Pix[i*3+2] = 255
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
