package overlay

import (
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gridlens/gridlens/internal/cluster"
	"github.com/gridlens/gridlens/internal/frame"
	"github.com/gridlens/gridlens/internal/hough"
	"github.com/gridlens/gridlens/internal/puzzle"
)

// Config selects which diagnostic layers Render draws.
type Config struct {
	Lines          bool
	Clusters       bool
	PuzzleClusters bool
	Accumulator    bool
}

// Enabled reports whether any layer is turned on.
func (c Config) Enabled() bool {
	return c.Lines || c.Clusters || c.PuzzleClusters || c.Accumulator
}

// Render draws the selected layers from the finder's last run onto dst,
// which is typically the blended camera/edge preview frame.
func Render(dst *frame.Frame, f *puzzle.Finder, acc *hough.Accumulator, cfg Config) {
	if dst.Empty() {
		return
	}

	if cfg.Lines {
		for _, p := range f.Peaks {
			DrawLine(dst, p.Line.Theta, p.Line.Rho, 10, 10, 10)
		}
	}
	if cfg.Clusters {
		drawClusters(dst, f.Clusters)
	}
	if cfg.PuzzleClusters {
		drawClusters(dst, f.PuzzleClusters)
	}
	if cfg.Accumulator && acc != nil {
		drawAccumulator(dst, acc)
	}
}

// drawClusters draws every member line of each cluster in the cluster's
// palette color. Clusters are sorted by mean angle first so the hue
// progression follows the geometry and re-renders stay stable.
func drawClusters(dst *frame.Frame, clusters []cluster.LineCluster) {
	sorted := make([]cluster.LineCluster, len(clusters))
	copy(sorted, clusters)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Theta < sorted[j].Theta })

	palette := Palette(len(sorted))
	for i, c := range sorted {
		r, g, b := palette[i][0], palette[i][1], palette[i][2]
		for _, l := range c.Lines {
			DrawLine(dst, l.Theta, l.Rho, r, g, b)
		}
	}
}

// Palette returns n visually distinct RGB colors from evenly spaced hues
// in HCL space.
func Palette(n int) [][3]uint8 {
	colors := make([][3]uint8, n)
	for i := range colors {
		h := float64(i) * 360 / float64(n)
		r, g, b := colorful.Hcl(h, 0.5, 0.7).Clamped().RGB255()
		colors[i] = [3]uint8{r, g, b}
	}
	return colors
}

// DrawLine rasterizes the infinite line x*cos(theta) + y*sin(theta) = rho
// onto the frame, stepping along the line direction and clipping per pixel.
func DrawLine(f *frame.Frame, theta, rho float64, r, g, b uint8) {
	if f.Empty() {
		return
	}

	// Foot of the perpendicular from the origin; the line runs 90 degrees
	// from theta at this point.
	cosT, sinT := math.Cos(theta), math.Sin(theta)
	px, py := cosT*rho, sinT*rho
	dx, dy := -sinT, cosT

	// Long enough to cross the frame from any interior anchor.
	reach := float64(f.Width + f.Height)
	for s := -reach; s <= reach; s++ {
		x := int(math.Round(px + dx*s))
		y := int(math.Round(py + dy*s))
		if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
			continue
		}
		f.SetRGB(x, y, r, g, b)
	}
}

// drawAccumulator blits the vote grid as grayscale into the bottom-right
// corner, cropped if it exceeds the frame.
func drawAccumulator(dst *frame.Frame, acc *hough.Accumulator) {
	img := acc.GrayImage()
	bounds := img.Bounds()

	ox := dst.Width - bounds.Dx()
	oy := dst.Height - bounds.Dy()
	for y := 0; y < bounds.Dy(); y++ {
		ty := oy + y
		if ty < 0 {
			continue
		}
		for x := 0; x < bounds.Dx(); x++ {
			tx := ox + x
			if tx < 0 {
				continue
			}
			v := img.GrayAt(x, y).Y
			dst.SetRGB(tx, ty, v, v, v)
		}
	}
}
