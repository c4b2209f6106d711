package geometry

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Line
		wantTheta float64
		wantRho   float64
	}{
		{"already normalized", Line{Theta: 1.0, Rho: 10}, 1.0, 10},
		{"negative rho", Line{Theta: 1.0, Rho: -10}, 1.0 + math.Pi, 10},
		{"negative rho wraps theta", Line{Theta: 5.0, Rho: -3}, 5.0 + math.Pi - 2*math.Pi, 3},
		{"theta above full circle", Line{Theta: 2*math.Pi + 0.5, Rho: 1}, 0.5, 1},
		{"zero rho", Line{Theta: 0.25, Rho: 0}, 0.25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if math.Abs(got.Theta-tt.wantTheta) > 1e-9 {
				t.Errorf("Theta: got %v, want %v", got.Theta, tt.wantTheta)
			}
			if math.Abs(got.Rho-tt.wantRho) > 1e-9 {
				t.Errorf("Rho: got %v, want %v", got.Rho, tt.wantRho)
			}
		})
	}
}

func TestAngleDistance(t *testing.T) {
	const eps = 1e-3

	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"identical", 1.0, 1.0, 0},
		{"simple", 0.5, 1.5, 1.0},
		{"across zero", 0, 2*math.Pi - eps, eps},
		{"across zero reversed", 2*math.Pi - eps, 0, eps},
		{"opposite", 0, math.Pi, math.Pi},
		{"unwrapped input", -0.1, 0.1, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleDistance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AngleDistance(%v, %v): got %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestOrientationDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"parallel opposite directions", 0.2, 0.2 + math.Pi, 0},
		{"perpendicular", 0, math.Pi / 2, math.Pi / 2},
		{"near parallel", 0.01, math.Pi - 0.01, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrientationDistance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("OrientationDistance(%v, %v): got %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMeanAngle(t *testing.T) {
	tests := []struct {
		name   string
		angles []float64
		want   float64
	}{
		{"single", []float64{1.25}, 1.25},
		{"symmetric pair", []float64{0.4, 0.6}, 0.5},
		{"wraps across zero", []float64{2*math.Pi - 0.1, 0.1}, 0},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MeanAngle(tt.angles)
			if AngleDistance(got, tt.want) > 1e-9 {
				t.Errorf("MeanAngle(%v): got %v, want %v", tt.angles, got, tt.want)
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	// Vertical line x = 40 and horizontal line y = 160.
	vertical := Line{Theta: 0, Rho: 40}
	horizontal := Line{Theta: math.Pi / 2, Rho: 160}

	p, ok := Intersect(vertical, horizontal)
	if !ok {
		t.Fatal("expected an intersection")
	}
	if math.Abs(p.X-40) > 1e-9 || math.Abs(p.Y-160) > 1e-9 {
		t.Errorf("intersection: got (%v, %v), want (40, 160)", p.X, p.Y)
	}
}

func TestIntersect_Parallel(t *testing.T) {
	a := Line{Theta: 0.7, Rho: 10}
	b := Line{Theta: 0.7, Rho: 50}
	if _, ok := Intersect(a, b); ok {
		t.Error("parallel lines should not intersect")
	}

	// Same orientation expressed with flipped theta and negated rho.
	c := Line{Theta: 0.7 + math.Pi, Rho: -50}
	if _, ok := Intersect(a, c); ok {
		t.Error("anti-parallel lines should not intersect")
	}
}

func TestSquareToQuad_Corners(t *testing.T) {
	p0 := Point{X: 10, Y: 20}
	p1 := Point{X: 110, Y: 25}
	p2 := Point{X: 105, Y: 130}
	p3 := Point{X: 5, Y: 120}

	tr := SquareToQuad(p0, p1, p2, p3)

	tests := []struct {
		name string
		in   Point
		want Point
	}{
		{"top-left", Point{0, 0}, p0},
		{"top-right", Point{1, 0}, p1},
		{"bottom-right", Point{1, 1}, p2},
		{"bottom-left", Point{0, 1}, p3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.Apply(tt.in)
			if math.Abs(got.X-tt.want.X) > 1e-6 || math.Abs(got.Y-tt.want.Y) > 1e-6 {
				t.Errorf("Apply(%v): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSquareToQuad_Affine(t *testing.T) {
	// A parallelogram exercises the affine special case.
	tr := SquareToQuad(Point{0, 0}, Point{100, 0}, Point{120, 50}, Point{20, 50})

	got := tr.Apply(Point{0.5, 0.5})
	want := Point{X: 60, Y: 25}
	if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-6 {
		t.Errorf("center: got %v, want %v", got, want)
	}
}
