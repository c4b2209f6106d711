// Package overlay renders diagnostic visualizations of the detection
// pipeline onto a frame.
//
// Which layers are drawn is controlled by an explicit Config value passed
// into Render; there is no package-level toggle state. Layers:
//
//   - Lines: every extracted line candidate, in a dark neutral color
//   - Clusters: all line clusters, one palette color per cluster
//   - PuzzleClusters: only the clusters that passed the plausibility
//     prefilter
//   - Accumulator: the Hough vote grid as a grayscale inset in the
//     bottom-right corner
//
// Cluster colors come from evenly spaced hues in HCL space so that
// adjacent clusters (sorted by mean angle) remain distinguishable.
package overlay
