// Package puzzle locates a Sudoku grid outline among the line clusters
// detected in a frame.
//
// The finder partitions plausible clusters into two families whose
// orientations are roughly perpendicular to each other — anchored on the
// strongest cluster, not on the image axes, since the camera may be tilted
// — takes the outermost member of each family on both sides, and intersects
// the four chosen lines into a candidate quadrilateral. The candidate is
// accepted only when it is convex, sits inside the target bounds and has
// side proportions plausible for a square viewed under perspective.
//
// A failed Find is a normal "no puzzle this frame" outcome, not an error;
// callers decide whether to keep showing a previous success. The finder
// retains its intermediate detections (peaks, clusters, plausible clusters)
// after each call so diagnostic overlays can visualize them.
package puzzle
