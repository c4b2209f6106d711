// Package hough converts binary edge masks into line candidates by voting
// in (angle, distance) parameter space.
//
// The accumulator is an explicit 2-D grid of uint16 vote counts indexed by
// (angle bin, distance bin). The angle axis sweeps the full circle
// [0, 2*pi) at a fixed step, so every geometric line accrues votes at two
// cells related by (theta+pi, -rho); the distance axis spans the image
// diagonal in both signs, which guarantees that each edge pixel lands
// exactly one vote in every angle column. Counts saturate at 65535 instead
// of wrapping.
//
// GrayImage is the separate, display-only conversion of vote counts to a
// grayscale image; nothing in the pipeline treats counts as color data.
package hough
