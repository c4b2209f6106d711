package cluster

import (
	"math"

	"github.com/gridlens/gridlens/internal/geometry"
)

// Default tolerances for deciding that two detections describe the same
// physical line: within 4 degrees and 10 pixels of each other.
const (
	DefaultThetaTol = 4 * math.Pi / 180
	DefaultRhoTol   = 10.0
)

// LineCluster is a non-empty group of near-duplicate line detections plus a
// representative computed from its members: Theta is the circular mean of
// the member angles, Rho the arithmetic mean of the member offsets.
type LineCluster struct {
	Lines []geometry.Line
	Theta float64
	Rho   float64
}

// Representative returns the cluster's representative as a Line.
func (c LineCluster) Representative() geometry.Line {
	return geometry.Line{Theta: c.Theta, Rho: c.Rho}
}

// Cluster partitions lines into clusters of mutual proximity. Two lines
// belong to the same cluster when a chain of pairs connects them in which
// each pair's normalized angles are within thetaTol (circular distance) and
// offsets within rhoTol. Member lines are stored normalized.
func Cluster(lines []geometry.Line, thetaTol, rhoTol float64) []LineCluster {
	if len(lines) == 0 {
		return nil
	}

	normalized := make([]geometry.Line, len(lines))
	for i, l := range lines {
		normalized[i] = l.Normalize()
	}

	parent := make([]int, len(normalized))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := 0; i < len(normalized); i++ {
		for j := i + 1; j < len(normalized); j++ {
			if geometry.AngleDistance(normalized[i].Theta, normalized[j].Theta) <= thetaTol &&
				math.Abs(normalized[i].Rho-normalized[j].Rho) <= rhoTol {
				parent[find(i)] = find(j)
			}
		}
	}

	// Group members by root, keeping first-seen order for determinism.
	index := make(map[int]int)
	var clusters []LineCluster
	for i, l := range normalized {
		root := find(i)
		k, ok := index[root]
		if !ok {
			k = len(clusters)
			index[root] = k
			clusters = append(clusters, LineCluster{})
		}
		clusters[k].Lines = append(clusters[k].Lines, l)
	}

	for k := range clusters {
		angles := make([]float64, len(clusters[k].Lines))
		var rhoSum float64
		for i, l := range clusters[k].Lines {
			angles[i] = l.Theta
			rhoSum += l.Rho
		}
		clusters[k].Theta = geometry.MeanAngle(angles)
		clusters[k].Rho = rhoSum / float64(len(clusters[k].Lines))
	}
	return clusters
}
