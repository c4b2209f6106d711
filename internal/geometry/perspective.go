package geometry

// PerspectiveTransform is a 2-D projective transform represented as a 3x3
// homogeneous matrix. It maps the unit square onto an arbitrary convex
// quadrilateral, which is how the puzzle finder spreads its sampling grid
// across a detected outline.
type PerspectiveTransform struct {
	a11, a12, a13 float64
	a21, a22, a23 float64
	a31, a32, a33 float64
}

// SquareToQuad computes the transform taking the unit square corners
// (0,0), (1,0), (1,1), (0,1) to p0..p3 respectively. With the screen
// coordinate convention (Y down), passing corners in clockwise order
// starting from the top-left keeps the mapping orientation-preserving.
func SquareToQuad(p0, p1, p2, p3 Point) PerspectiveTransform {
	dx3 := p0.X - p1.X + p2.X - p3.X
	dy3 := p0.Y - p1.Y + p2.Y - p3.Y
	if dx3 == 0 && dy3 == 0 {
		// The quadrilateral is a parallelogram, so the transform is affine.
		return PerspectiveTransform{
			a11: p1.X - p0.X, a21: p2.X - p1.X, a31: p0.X,
			a12: p1.Y - p0.Y, a22: p2.Y - p1.Y, a32: p0.Y,
			a13: 0, a23: 0, a33: 1,
		}
	}

	dx1 := p1.X - p2.X
	dx2 := p3.X - p2.X
	dy1 := p1.Y - p2.Y
	dy2 := p3.Y - p2.Y
	denominator := dx1*dy2 - dx2*dy1
	a13 := (dx3*dy2 - dx2*dy3) / denominator
	a23 := (dx1*dy3 - dx3*dy1) / denominator
	return PerspectiveTransform{
		a11: p1.X - p0.X + a13*p1.X, a21: p3.X - p0.X + a23*p3.X, a31: p0.X,
		a12: p1.Y - p0.Y + a13*p1.Y, a22: p3.Y - p0.Y + a23*p3.Y, a32: p0.Y,
		a13: a13, a23: a23, a33: 1,
	}
}

// Apply maps a point through the transform.
func (pt PerspectiveTransform) Apply(p Point) Point {
	denominator := pt.a13*p.X + pt.a23*p.Y + pt.a33
	return Point{
		X: (pt.a11*p.X + pt.a21*p.Y + pt.a31) / denominator,
		Y: (pt.a12*p.X + pt.a22*p.Y + pt.a32) / denominator,
	}
}
