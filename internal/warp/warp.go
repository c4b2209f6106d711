package warp

import (
	"math"

	"github.com/gridlens/gridlens/internal/frame"
	"github.com/gridlens/gridlens/internal/geometry"
)

// Extract resamples the quadrilateral region described by grid out of src
// into an axis-aligned dstWidth x dstHeight frame.
//
// grid is the row-major 4x4 lattice of sample points in detection
// coordinates; scaleX and scaleY map those coordinates to the normalized
// [0,1] range of the source frame (typically 1/detectionWidth and
// 1/detectionHeight), which lets detection run at a reduced resolution
// while sampling the full-resolution source. An empty source or a grid of
// the wrong size produces an empty destination.
func Extract(src *frame.Frame, grid []geometry.Point, scaleX, scaleY float64, dst *frame.Frame, dstWidth, dstHeight int) {
	if src.Empty() || len(grid) != 16 {
		dst.Resize(0, 0)
		return
	}
	dst.Resize(dstWidth, dstHeight)
	if dst.Empty() {
		return
	}

	// Grid points in source pixel coordinates.
	var pts [16]geometry.Point
	for i, p := range grid {
		pts[i] = geometry.Point{
			X: p.X * scaleX * float64(src.Width),
			Y: p.Y * scaleY * float64(src.Height),
		}
	}

	for dy := 0; dy < dstHeight; dy++ {
		// v in [0,3): vertical position within the mesh.
		v := (float64(dy) + 0.5) / float64(dstHeight) * 3
		cy := int(v)
		if cy > 2 {
			cy = 2
		}
		fv := v - float64(cy)

		for dx := 0; dx < dstWidth; dx++ {
			u := (float64(dx) + 0.5) / float64(dstWidth) * 3
			cx := int(u)
			if cx > 2 {
				cx = 2
			}
			fu := u - float64(cx)

			p00 := pts[cy*4+cx]
			p10 := pts[cy*4+cx+1]
			p01 := pts[(cy+1)*4+cx]
			p11 := pts[(cy+1)*4+cx+1]

			sx := (1-fv)*((1-fu)*p00.X+fu*p10.X) + fv*((1-fu)*p01.X+fu*p11.X)
			sy := (1-fv)*((1-fu)*p00.Y+fu*p10.Y) + fv*((1-fu)*p01.Y+fu*p11.Y)

			r, g, b := sampleBilinear(src, sx, sy)
			dst.SetRGB(dx, dy, r, g, b)
		}
	}
}

// sampleBilinear reads the source at a fractional pixel coordinate with
// edge clamping, treating integer coordinates as pixel centers.
func sampleBilinear(src *frame.Frame, x, y float64) (uint8, uint8, uint8) {
	x -= 0.5
	y -= 0.5

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	x1 := x0 + 1
	y1 := y0 + 1
	x0 = clamp(x0, 0, src.Width-1)
	x1 = clamp(x1, 0, src.Width-1)
	y0 = clamp(y0, 0, src.Height-1)
	y1 = clamp(y1, 0, src.Height-1)

	r00, g00, b00 := src.RGBAt(x0, y0)
	r10, g10, b10 := src.RGBAt(x1, y0)
	r01, g01, b01 := src.RGBAt(x0, y1)
	r11, g11, b11 := src.RGBAt(x1, y1)

	lerp2 := func(c00, c10, c01, c11 uint8) uint8 {
		top := (1-fx)*float64(c00) + fx*float64(c10)
		bottom := (1-fx)*float64(c01) + fx*float64(c11)
		return uint8(math.Round((1-fy)*top + fy*bottom))
	}
	return lerp2(r00, r10, r01, r11), lerp2(g00, g10, g01, g11), lerp2(b00, b10, b01, b11)
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
