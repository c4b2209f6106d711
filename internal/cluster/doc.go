// Package cluster merges near-duplicate line detections into clusters, one
// per physical edge.
//
// The Hough stage reports a strong physical line several times: once per
// neighboring parameter cell that survives extraction, and once more on the
// opposite side of the circle as (theta+pi, -rho). Clustering normalizes
// every line, then groups lines whose angles (by circular distance) and
// offsets are both within fixed tolerances.
//
// Grouping is the transitive closure of pairwise proximity, so the result
// is a partition of the input — every line lands in exactly one cluster —
// and is invariant under permutation of the input sequence.
package cluster
