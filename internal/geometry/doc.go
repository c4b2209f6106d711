// Package geometry provides the line and point primitives shared by the
// detection pipeline.
//
// Lines use the Hesse normal form x*cos(theta) + y*sin(theta) = rho. A line
// with negative rho describes the same geometric line as (theta+pi, -rho);
// Normalize resolves that ambiguity before comparisons. Angles are circular
// quantities: use AngleDistance and MeanAngle rather than plain arithmetic.
//
// # Coordinate System
//
// Points are in source-frame pixel space with the origin at the top-left
// corner, X increasing rightward and Y increasing downward. Note that with Y
// pointing down, a quadrilateral winding that appears clockwise on screen has
// a positive cross-product orientation.
package geometry
