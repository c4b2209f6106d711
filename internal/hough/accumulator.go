package hough

import (
	"image"
	"math"

	"github.com/gridlens/gridlens/internal/frame"
	"github.com/gridlens/gridlens/internal/geometry"
)

// DefaultAngleBins is the angular resolution of the transform: one bin per
// degree over the full circle.
const DefaultAngleBins = 360

// Accumulator is the 2-D vote grid of the Hough transform. Counts is
// row-major with the angle axis outer: Counts[t*DistBins+r].
//
// The distance axis is centered: bin r corresponds to rho = r - maxDist,
// where maxDist is the image diagonal recorded by the last Transform.
type Accumulator struct {
	AngleBins int
	DistBins  int
	Counts    []uint16

	maxDist int
	cosTab  []float64
	sinTab  []float64
}

// Resize adjusts the grid dimensions, reallocating only on growth, and
// rebuilds the angle tables when the angular resolution changes. Counts are
// unspecified afterwards; call Reset before voting.
func (a *Accumulator) Resize(angleBins, distBins int) {
	if angleBins != a.AngleBins {
		a.cosTab = make([]float64, angleBins)
		a.sinTab = make([]float64, angleBins)
		for t := 0; t < angleBins; t++ {
			theta := float64(t) * 2 * math.Pi / float64(angleBins)
			a.cosTab[t] = math.Cos(theta)
			a.sinTab[t] = math.Sin(theta)
		}
	}

	n := angleBins * distBins
	if cap(a.Counts) < n {
		a.Counts = make([]uint16, n)
	}
	a.Counts = a.Counts[:n]
	a.AngleBins = angleBins
	a.DistBins = distBins
	a.maxDist = (distBins - 1) / 2
}

// Reset zeroes all vote counts.
func (a *Accumulator) Reset() {
	for i := range a.Counts {
		a.Counts[i] = 0
	}
}

// At returns the vote count at (angle bin, distance bin).
func (a *Accumulator) At(t, r int) uint16 {
	return a.Counts[t*a.DistBins+r]
}

// Add increments the cell at (angle bin, distance bin), clamping at the
// maximum representable count rather than wrapping.
func (a *Accumulator) Add(t, r int) {
	i := t*a.DistBins + r
	if a.Counts[i] != math.MaxUint16 {
		a.Counts[i]++
	}
}

// Total returns the sum of all vote counts. Absent saturation this equals
// (edge pixels) x (angle bins) after a Transform.
func (a *Accumulator) Total() uint64 {
	var sum uint64
	for _, c := range a.Counts {
		sum += uint64(c)
	}
	return sum
}

// Line converts a cell coordinate back to line parameters, inverting the
// binning used by Transform.
func (a *Accumulator) Line(t, r int) geometry.Line {
	return geometry.Line{
		Theta: float64(t) * 2 * math.Pi / float64(a.AngleBins),
		Rho:   float64(r - a.maxDist),
	}
}

// VotesAt returns the count of the cell nearest the given line, or 0 when
// the line falls outside the grid.
func (a *Accumulator) VotesAt(l geometry.Line) uint16 {
	t := int(math.Round(l.Theta*float64(a.AngleBins)/(2*math.Pi))) % a.AngleBins
	if t < 0 {
		t += a.AngleBins
	}
	r := int(math.Round(l.Rho)) + a.maxDist
	if r < 0 || r >= a.DistBins {
		return 0
	}
	return a.At(t, r)
}

// Transform votes every edge pixel of the mask into acc. The accumulator is
// sized from the mask (angle axis at DefaultAngleBins resolution, distance
// axis covering the full diagonal in both signs) and reset before voting,
// reusing its buffer when dimensions are unchanged. Each edge pixel
// contributes exactly one vote per angle bin. An empty mask produces an
// empty accumulator.
func Transform(edge *frame.Frame, acc *Accumulator) {
	if edge.Empty() {
		acc.Resize(0, 0)
		return
	}

	w, h := edge.Width, edge.Height
	diag := int(math.Ceil(math.Sqrt(float64(w*w + h*h))))
	acc.Resize(DefaultAngleBins, 2*diag+1)
	acc.Reset()

	for y := 0; y < h; y++ {
		row := y * w * 3
		for x := 0; x < w; x++ {
			if edge.Pix[row+x*3] < 128 {
				continue
			}
			fx, fy := float64(x), float64(y)
			for t := 0; t < acc.AngleBins; t++ {
				rho := fx*acc.cosTab[t] + fy*acc.sinTab[t]
				acc.Add(t, int(math.Round(rho))+diag)
			}
		}
	}
}

// GrayImage renders the accumulator as a grayscale image with the angle
// axis horizontal, rescaled so the heaviest cell maps to white. This is a
// display conversion only; an empty or all-zero accumulator yields a black
// image.
func (a *Accumulator) GrayImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, a.AngleBins, a.DistBins))

	var maxCount uint16
	for _, c := range a.Counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		return img
	}

	for t := 0; t < a.AngleBins; t++ {
		for r := 0; r < a.DistBins; r++ {
			v := uint8(uint32(a.At(t, r)) * 255 / uint32(maxCount))
			img.Pix[r*img.Stride+t] = v
		}
	}
	return img
}
