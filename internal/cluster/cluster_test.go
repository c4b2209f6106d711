package cluster

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/gridlens/gridlens/internal/geometry"
)

func TestCluster_WithinTolerance(t *testing.T) {
	a := geometry.Line{Theta: 1.00, Rho: 50}
	b := geometry.Line{Theta: 1.02, Rho: 54}

	for _, order := range [][]geometry.Line{{a, b}, {b, a}} {
		clusters := Cluster(order, DefaultThetaTol, DefaultRhoTol)
		if len(clusters) != 1 {
			t.Fatalf("in-tolerance pair: got %d clusters, want 1", len(clusters))
		}
		if len(clusters[0].Lines) != 2 {
			t.Errorf("cluster size: got %d, want 2", len(clusters[0].Lines))
		}
	}
}

func TestCluster_OutsideTolerance(t *testing.T) {
	a := geometry.Line{Theta: 1.0, Rho: 50}
	b := geometry.Line{Theta: 1.5, Rho: 200}

	for _, order := range [][]geometry.Line{{a, b}, {b, a}} {
		clusters := Cluster(order, DefaultThetaTol, DefaultRhoTol)
		if len(clusters) != 2 {
			t.Fatalf("out-of-tolerance pair: got %d clusters, want 2", len(clusters))
		}
	}
}

func TestCluster_BothAxesMustMatch(t *testing.T) {
	tests := []struct {
		name string
		b    geometry.Line
		want int
	}{
		{"theta close, rho far", geometry.Line{Theta: 1.01, Rho: 200}, 2},
		{"rho close, theta far", geometry.Line{Theta: 1.5, Rho: 51}, 2},
		{"both close", geometry.Line{Theta: 1.01, Rho: 51}, 1},
	}
	a := geometry.Line{Theta: 1.0, Rho: 50}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clusters := Cluster([]geometry.Line{a, tt.b}, DefaultThetaTol, DefaultRhoTol)
			if len(clusters) != tt.want {
				t.Errorf("got %d clusters, want %d", len(clusters), tt.want)
			}
		})
	}
}

func TestCluster_FlippedDuplicates(t *testing.T) {
	// The same physical line reported on both sides of the circle.
	a := geometry.Line{Theta: 0.2, Rho: 80}
	b := geometry.Line{Theta: 0.2 + math.Pi, Rho: -80}

	clusters := Cluster([]geometry.Line{a, b}, DefaultThetaTol, DefaultRhoTol)
	if len(clusters) != 1 {
		t.Fatalf("flipped duplicates: got %d clusters, want 1", len(clusters))
	}
	if geometry.AngleDistance(clusters[0].Theta, 0.2) > 1e-9 {
		t.Errorf("representative theta: got %v, want 0.2", clusters[0].Theta)
	}
	if math.Abs(clusters[0].Rho-80) > 1e-9 {
		t.Errorf("representative rho: got %v, want 80", clusters[0].Rho)
	}
}

func TestCluster_AngleWrapAround(t *testing.T) {
	// Angles just either side of zero are circularly close.
	a := geometry.Line{Theta: 0.01, Rho: 30}
	b := geometry.Line{Theta: 2*math.Pi - 0.01, Rho: 32}

	clusters := Cluster([]geometry.Line{a, b}, DefaultThetaTol, DefaultRhoTol)
	if len(clusters) != 1 {
		t.Fatalf("wrap-around pair: got %d clusters, want 1", len(clusters))
	}
	if geometry.AngleDistance(clusters[0].Theta, 0) > 0.02 {
		t.Errorf("representative theta should wrap to near 0, got %v", clusters[0].Theta)
	}
}

func TestCluster_IsPartition(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	lines := make([]geometry.Line, 40)
	for i := range lines {
		lines[i] = geometry.Line{
			Theta: rng.Float64() * 2 * math.Pi,
			Rho:   rng.Float64()*400 - 200,
		}
	}

	clusters := Cluster(lines, DefaultThetaTol, DefaultRhoTol)

	total := 0
	for _, c := range clusters {
		if len(c.Lines) == 0 {
			t.Error("empty cluster in result")
		}
		total += len(c.Lines)
	}
	if total != len(lines) {
		t.Errorf("partition: %d member lines for %d inputs", total, len(lines))
	}
}

// clusterKey canonicalizes a cluster's membership for set comparison.
func clusterKey(c LineCluster) string {
	keys := make([]string, len(c.Lines))
	for i, l := range c.Lines {
		keys[i] = fmt.Sprintf("%.6f/%.3f", l.Theta, l.Rho)
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

func TestCluster_PermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	lines := make([]geometry.Line, 30)
	for i := range lines {
		lines[i] = geometry.Line{
			Theta: rng.Float64() * 2 * math.Pi,
			Rho:   rng.Float64() * 300,
		}
	}

	base := Cluster(lines, DefaultThetaTol, DefaultRhoTol)
	baseKeys := make(map[string]int)
	for _, c := range base {
		baseKeys[clusterKey(c)]++
	}

	for trial := 0; trial < 5; trial++ {
		shuffled := make([]geometry.Line, len(lines))
		copy(shuffled, lines)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := Cluster(shuffled, DefaultThetaTol, DefaultRhoTol)
		if len(got) != len(base) {
			t.Fatalf("trial %d: got %d clusters, want %d", trial, len(got), len(base))
		}
		gotKeys := make(map[string]int)
		for _, c := range got {
			gotKeys[clusterKey(c)]++
		}
		for k, n := range baseKeys {
			if gotKeys[k] != n {
				t.Fatalf("trial %d: cluster membership differs from base order", trial)
			}
		}
	}
}

func TestCluster_Empty(t *testing.T) {
	if clusters := Cluster(nil, DefaultThetaTol, DefaultRhoTol); clusters != nil {
		t.Errorf("empty input: got %v, want nil", clusters)
	}
}
