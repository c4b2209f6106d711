package puzzle

import (
	"math"
	"sort"

	"github.com/gridlens/gridlens/internal/cluster"
	"github.com/gridlens/gridlens/internal/geometry"
	"github.com/gridlens/gridlens/internal/hough"
)

// Tuning defaults. The prefilter thresholds lean permissive: a missed
// border line invalidates the whole frame, while an extra cluster merely
// widens the family search.
const (
	defaultPeakWindow     = 4
	defaultPeakFraction   = 0.3
	defaultMinPeakVotes   = 20
	defaultFamilyTol      = math.Pi / 6
	defaultWeightFraction = 0.25
	defaultBoundsMargin   = 5.0
	defaultMaxSideRatio   = 3.0
)

// Finder searches the Hough accumulator of a frame for a quadrilateral
// bounding a Sudoku grid. Fields configure the search; the zero value is
// not usable, call NewFinder.
//
// After every Find call the finder retains its intermediate detections for
// diagnostic overlays. Corners and SampleGrid are only meaningful when the
// call returned true.
type Finder struct {
	// PeakWindow is the local-maximum neighborhood half-width, in
	// accumulator bins, used during line extraction.
	PeakWindow int
	// PeakFraction sets the extraction threshold as a fraction of the
	// heaviest accumulator cell; MinPeakVotes is its absolute floor.
	PeakFraction float64
	MinPeakVotes int
	// ThetaTol and RhoTol are the clustering tolerances.
	ThetaTol float64
	RhoTol   float64
	// FamilyTol is the largest orientation distance between a cluster and a
	// family axis for the cluster to join the family.
	FamilyTol float64
	// WeightFraction prefilters clusters by vote weight relative to the
	// heaviest cluster.
	WeightFraction float64

	// Intermediate detections from the last Find, retained for overlays.
	Peaks          []hough.Peak
	Clusters       []cluster.LineCluster
	PuzzleClusters []cluster.LineCluster

	// Corners holds the bounding quadrilateral in clockwise order starting
	// from the top-left; SampleGrid the 4x4 grid of sample points spanning
	// it, row-major from the top-left. Valid only after Find returns true.
	Corners    [4]geometry.Point
	SampleGrid [16]geometry.Point
}

// NewFinder returns a finder with the default tuning.
func NewFinder() *Finder {
	return &Finder{
		PeakWindow:     defaultPeakWindow,
		PeakFraction:   defaultPeakFraction,
		MinPeakVotes:   defaultMinPeakVotes,
		ThetaTol:       cluster.DefaultThetaTol,
		RhoTol:         cluster.DefaultRhoTol,
		FamilyTol:      defaultFamilyTol,
		WeightFraction: defaultWeightFraction,
	}
}

// Find searches acc for a plausible puzzle outline within the target
// bounds. It returns false — an ordinary negative, not an error — when no
// quadrilateral passes validation. On success, Corners holds the outline
// and SampleGrid the 16 perspective-consistent sample points used by the
// rectification stage.
func (f *Finder) Find(targetWidth, targetHeight int, acc *hough.Accumulator) bool {
	f.Peaks = f.Peaks[:0]
	f.Clusters = nil
	f.PuzzleClusters = nil

	if acc == nil || len(acc.Counts) == 0 {
		return false
	}

	var maxVotes uint16
	for _, c := range acc.Counts {
		if c > maxVotes {
			maxVotes = c
		}
	}
	threshold := int(f.PeakFraction * float64(maxVotes))
	if threshold < f.MinPeakVotes {
		threshold = f.MinPeakVotes
	}

	f.Peaks = hough.ExtractPeaks(acc, threshold, f.PeakWindow)
	if len(f.Peaks) < 4 {
		return false
	}

	lines := make([]geometry.Line, len(f.Peaks))
	for i, p := range f.Peaks {
		lines[i] = p.Line
	}
	f.Clusters = cluster.Cluster(lines, f.ThetaTol, f.RhoTol)

	f.PuzzleClusters = f.plausibleClusters(acc)
	if len(f.PuzzleClusters) < 4 {
		return false
	}

	famA, famB := f.splitFamilies()
	if len(famA) < 2 || len(famB) < 2 {
		return false
	}

	a1, a2 := extremeLines(famA)
	b1, b2 := extremeLines(famB)

	corners, ok := intersectQuad(a1, a2, b1, b2)
	if !ok {
		return false
	}
	orderClockwiseFromTopLeft(&corners)

	if !validQuad(corners, float64(targetWidth), float64(targetHeight)) {
		return false
	}

	f.Corners = corners
	f.buildSampleGrid()
	return true
}

// plausibleClusters keeps the clusters heavy enough, by accumulator vote
// weight, to be grid lines rather than texture noise. Results are sorted by
// weight, heaviest first.
func (f *Finder) plausibleClusters(acc *hough.Accumulator) []cluster.LineCluster {
	type weighted struct {
		c      cluster.LineCluster
		weight int
	}

	ws := make([]weighted, 0, len(f.Clusters))
	maxWeight := 0
	for _, c := range f.Clusters {
		w := 0
		for _, l := range c.Lines {
			w += int(acc.VotesAt(l))
		}
		ws = append(ws, weighted{c: c, weight: w})
		if w > maxWeight {
			maxWeight = w
		}
	}

	sort.SliceStable(ws, func(i, j int) bool { return ws[i].weight > ws[j].weight })

	cutoff := int(f.WeightFraction * float64(maxWeight))
	var out []cluster.LineCluster
	for _, w := range ws {
		if w.weight < cutoff {
			break
		}
		out = append(out, w.c)
	}
	return out
}

// splitFamilies partitions the plausible clusters into the family parallel
// to the heaviest cluster and the family perpendicular to it. Clusters
// aligned with neither axis are discarded.
func (f *Finder) splitFamilies() (famA, famB []cluster.LineCluster) {
	axis := f.PuzzleClusters[0].Theta
	for _, c := range f.PuzzleClusters {
		switch {
		case geometry.OrientationDistance(c.Theta, axis) <= f.FamilyTol:
			famA = append(famA, c)
		case geometry.OrientationDistance(c.Theta, axis+math.Pi/2) <= f.FamilyTol:
			famB = append(famB, c)
		}
	}
	return famA, famB
}

// extremeLines returns the two outermost representative lines of a family,
// measured by the signed offset of each line from the origin projected onto
// the family's mean direction.
func extremeLines(family []cluster.LineCluster) (lo, hi geometry.Line) {
	angles := make([]float64, len(family))
	for i, c := range family {
		angles[i] = c.Theta
	}
	ref := geometry.MeanAngle(angles)

	minS := math.Inf(1)
	maxS := math.Inf(-1)
	for _, c := range family {
		s := c.Rho * math.Cos(c.Theta-ref)
		if s < minS {
			minS = s
			lo = c.Representative()
		}
		if s > maxS {
			maxS = s
			hi = c.Representative()
		}
	}
	return lo, hi
}

// intersectQuad intersects the two extreme lines of one family with the two
// of the other, producing the four corner candidates.
func intersectQuad(a1, a2, b1, b2 geometry.Line) ([4]geometry.Point, bool) {
	var corners [4]geometry.Point
	pairs := [4][2]geometry.Line{{a1, b1}, {a1, b2}, {a2, b1}, {a2, b2}}
	for i, pair := range pairs {
		p, ok := geometry.Intersect(pair[0], pair[1])
		if !ok {
			return corners, false
		}
		corners[i] = p
	}
	return corners, true
}

// orderClockwiseFromTopLeft sorts the corners around their centroid. With Y
// pointing down, ascending atan2 order is clockwise on screen; the corner
// nearest the top-left (smallest x+y) comes first.
func orderClockwiseFromTopLeft(corners *[4]geometry.Point) {
	var cx, cy float64
	for _, p := range corners {
		cx += p.X
		cy += p.Y
	}
	cx /= 4
	cy /= 4

	sort.Slice(corners[:], func(i, j int) bool {
		return math.Atan2(corners[i].Y-cy, corners[i].X-cx) <
			math.Atan2(corners[j].Y-cy, corners[j].X-cx)
	})

	start := 0
	best := math.Inf(1)
	for i, p := range corners {
		if s := p.X + p.Y; s < best {
			best = s
			start = i
		}
	}
	rotated := [4]geometry.Point{}
	for i := 0; i < 4; i++ {
		rotated[i] = corners[(start+i)%4]
	}
	*corners = rotated
}

// validQuad accepts quadrilaterals that are convex, lie inside the target
// bounds (with a small margin for borders clipped at the frame edge), and
// have side proportions plausible for a square seen under perspective.
func validQuad(corners [4]geometry.Point, width, height float64) bool {
	for _, p := range corners {
		if p.X < -defaultBoundsMargin || p.X > width+defaultBoundsMargin ||
			p.Y < -defaultBoundsMargin || p.Y > height+defaultBoundsMargin {
			return false
		}
	}

	minSide := math.Inf(1)
	maxSide := 0.0
	for i := 0; i < 4; i++ {
		a := corners[i]
		b := corners[(i+1)%4]
		side := math.Hypot(b.X-a.X, b.Y-a.Y)
		if side < minSide {
			minSide = side
		}
		if side > maxSide {
			maxSide = side
		}
	}
	shorter := math.Min(width, height)
	if minSide < 0.1*shorter {
		return false
	}
	if maxSide > defaultMaxSideRatio*minSide {
		return false
	}

	// Convexity: consecutive edge cross products must keep one sign.
	sign := 0.0
	for i := 0; i < 4; i++ {
		a := corners[i]
		b := corners[(i+1)%4]
		c := corners[(i+2)%4]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		if cross == 0 {
			return false
		}
		if sign == 0 {
			sign = cross
		} else if sign*cross < 0 {
			return false
		}
	}
	return true
}

// buildSampleGrid spreads a 4x4 lattice across the quadrilateral by mapping
// the uniform unit-square lattice through the square-to-quad perspective
// transform. The interior points keep the later bilinear warp faithful to
// the perspective instead of merely interpolating the corners.
func (f *Finder) buildSampleGrid() {
	tr := geometry.SquareToQuad(f.Corners[0], f.Corners[1], f.Corners[2], f.Corners[3])
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			f.SampleGrid[row*4+col] = tr.Apply(geometry.Point{
				X: float64(col) / 3,
				Y: float64(row) / 3,
			})
		}
	}
}
