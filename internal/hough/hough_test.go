package hough

import (
	"math"
	"testing"

	"github.com/gridlens/gridlens/internal/frame"
	"github.com/gridlens/gridlens/internal/geometry"
)

// edgeFrame builds a binary mask with edges at the given points.
func edgeFrame(w, h int, points [][2]int) *frame.Frame {
	f := frame.New(w, h)
	for _, p := range points {
		f.SetRGB(p[0], p[1], 255, 255, 255)
	}
	return f
}

func TestTransform_TotalVotes(t *testing.T) {
	tests := []struct {
		name   string
		points [][2]int
	}{
		{"single pixel", [][2]int{{10, 10}}},
		{"three pixels", [][2]int{{0, 0}, {31, 17}, {5, 29}}},
		{"none", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge := edgeFrame(32, 30, tt.points)
			acc := &Accumulator{}
			Transform(edge, acc)

			want := uint64(len(tt.points)) * uint64(acc.AngleBins)
			if got := acc.Total(); got != want {
				t.Errorf("total votes: got %d, want %d", got, want)
			}
		})
	}
}

func TestTransform_EmptyFrame(t *testing.T) {
	acc := &Accumulator{}
	acc.Resize(DefaultAngleBins, 11)
	Transform(&frame.Frame{}, acc)
	if len(acc.Counts) != 0 {
		t.Error("empty edge frame should produce an empty accumulator")
	}
}

func TestTransform_ReusesBuffer(t *testing.T) {
	edge := edgeFrame(20, 20, [][2]int{{3, 3}})
	acc := &Accumulator{}
	Transform(edge, acc)
	first := &acc.Counts[0]
	Transform(edge, acc)
	if &acc.Counts[0] != first {
		t.Error("transform of same-sized frames should reuse the count buffer")
	}
}

func TestAdd_SaturatesAtMaxUint16(t *testing.T) {
	acc := &Accumulator{}
	acc.Resize(1, 3)
	acc.Reset()
	for i := 0; i < math.MaxUint16+100; i++ {
		acc.Add(0, 1)
	}
	if got := acc.At(0, 1); got != math.MaxUint16 {
		t.Errorf("saturating count: got %d, want %d", got, math.MaxUint16)
	}
}

func TestExtractPeaks_VerticalLine(t *testing.T) {
	// A vertical line x=40: every pixel shares rho=40 at theta=0.
	var points [][2]int
	for y := 10; y < 90; y++ {
		points = append(points, [2]int{40, y})
	}
	edge := edgeFrame(100, 100, points)

	acc := &Accumulator{}
	Transform(edge, acc)
	peaks := ExtractPeaks(acc, 60, 4)

	if len(peaks) == 0 {
		t.Fatal("no peaks found for a strong vertical line")
	}

	found := false
	for _, p := range peaks {
		n := p.Line.Normalize()
		if geometry.AngleDistance(n.Theta, 0) < 0.05 && math.Abs(n.Rho-40) < 2 {
			found = true
			if p.Votes < 70 {
				t.Errorf("peak votes: got %d, want close to 80", p.Votes)
			}
		}
	}
	if !found {
		t.Errorf("no peak near (theta=0, rho=40); peaks: %+v", peaks)
	}
}

func TestExtractPeaks_Threshold(t *testing.T) {
	edge := edgeFrame(50, 50, [][2]int{{25, 25}})
	acc := &Accumulator{}
	Transform(edge, acc)

	// A single pixel votes once per cell; a threshold of 2 removes all.
	if peaks := ExtractPeaks(acc, 2, 2); len(peaks) != 0 {
		t.Errorf("expected no peaks above threshold, got %d", len(peaks))
	}
}

func TestAccumulatorLine_InvertsBinning(t *testing.T) {
	acc := &Accumulator{}
	acc.Resize(DefaultAngleBins, 201) // maxDist = 100

	l := acc.Line(90, 140)
	if math.Abs(l.Theta-math.Pi/2) > 1e-9 {
		t.Errorf("theta: got %v, want pi/2", l.Theta)
	}
	if l.Rho != 40 {
		t.Errorf("rho: got %v, want 40", l.Rho)
	}

	if got := acc.VotesAt(l); got != acc.At(90, 140) {
		t.Errorf("VotesAt should address the original cell")
	}
}

func TestGrayImage(t *testing.T) {
	acc := &Accumulator{}
	acc.Resize(4, 5)
	acc.Reset()
	for i := 0; i < 10; i++ {
		acc.Add(2, 3)
	}
	for i := 0; i < 5; i++ {
		acc.Add(1, 1)
	}

	img := acc.GrayImage()
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 5 {
		t.Fatalf("dimensions: got %v", img.Bounds())
	}
	if got := img.GrayAt(2, 3).Y; got != 255 {
		t.Errorf("heaviest cell: got %d, want 255", got)
	}
	if got := img.GrayAt(1, 1).Y; got != 127 {
		t.Errorf("half-weight cell: got %d, want 127", got)
	}
	if got := img.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("empty cell: got %d, want 0", got)
	}
}
