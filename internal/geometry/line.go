package geometry

import "math"

// Point is a 2-D coordinate in source-frame pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line represents an infinite line in Hesse normal form:
//
//	x*cos(Theta) + y*sin(Theta) = Rho
//
// Theta is in radians over [0, 2*pi); Rho is a signed distance from the
// origin in pixels. (Theta, Rho) and (Theta+pi, -Rho) describe the same
// geometric line; call Normalize before comparing lines.
type Line struct {
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}

// Normalize returns the equivalent line with Rho >= 0 and Theta wrapped
// into [0, 2*pi).
func (l Line) Normalize() Line {
	if l.Rho < 0 {
		l.Theta += math.Pi
		l.Rho = -l.Rho
	}
	l.Theta = wrapAngle(l.Theta)
	return l
}

// wrapAngle maps an angle into [0, 2*pi).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleDistance returns the circular distance between two angles, treating
// them as points on the full circle. The result is in [0, pi]; the distance
// between 0 and 2*pi-e is e, not 2*pi-e.
func AngleDistance(a, b float64) float64 {
	d := math.Abs(wrapAngle(a) - wrapAngle(b))
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// OrientationDistance returns the circular distance between two line
// orientations, which repeat with period pi: parallel lines facing opposite
// directions have distance 0. The result is in [0, pi/2].
func OrientationDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), math.Pi)
	if d > math.Pi/2 {
		d = math.Pi - d
	}
	return d
}

// MeanAngle returns the circular mean of the given angles, wrapped into
// [0, 2*pi). It is undefined (returns 0) for an empty slice or for angle
// sets whose unit vectors cancel exactly.
func MeanAngle(angles []float64) float64 {
	var sumSin, sumCos float64
	for _, a := range angles {
		sumSin += math.Sin(a)
		sumCos += math.Cos(a)
	}
	if sumSin == 0 && sumCos == 0 {
		return 0
	}
	return wrapAngle(math.Atan2(sumSin, sumCos))
}

// Intersect solves the 2x2 linear system formed by two lines' equations and
// returns their intersection point. ok is false when the lines are parallel
// or nearly so.
func Intersect(a, b Line) (p Point, ok bool) {
	cosA, sinA := math.Cos(a.Theta), math.Sin(a.Theta)
	cosB, sinB := math.Cos(b.Theta), math.Sin(b.Theta)

	// Determinant of [cosA sinA; cosB sinB] = sin(Theta_b - Theta_a).
	det := cosA*sinB - sinA*cosB
	if math.Abs(det) < 1e-9 {
		return Point{}, false
	}

	p.X = (a.Rho*sinB - b.Rho*sinA) / det
	p.Y = (cosA*b.Rho - cosB*a.Rho) / det
	return p, true
}
