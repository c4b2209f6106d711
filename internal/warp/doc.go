// Package warp rectifies the detected puzzle quadrilateral into an
// axis-aligned image.
//
// The sampling grid produced by the puzzle finder is a 4x4 lattice of
// source points, so the warp runs over a 3x3 mesh of cells rather than a
// single quadrilateral. Each destination pixel interpolates its source
// location bilinearly within its mesh cell and then samples the source
// frame bilinearly. Because the grid's interior points were placed with a
// true perspective transform, the piecewise-bilinear mesh tracks the
// perspective closely and avoids the artifacts a single-cell bilinear warp
// would show (Digital Image Warping, section 7.2.3).
package warp
