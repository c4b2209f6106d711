// Package pipeline runs the per-frame detection sequence: grayscale
// conversion, Canny edge detection, Hough voting and puzzle finding.
//
// A Pipeline owns the intermediate frames and the accumulator and reuses
// them across calls, so steady-state processing of same-sized frames does
// not allocate. The pipeline is synchronous and single-threaded: each
// Process call either completes all stages or, for an empty input, falls
// through them with empty intermediates and a negative result. Nothing is
// retained from one frame that influences the next; buffer reuse is purely
// an allocation optimization.
//
// A Pipeline must not be used from multiple goroutines concurrently.
package pipeline
