// Package canny implements the Canny edge detector that feeds the Hough
// voting stage.
//
// The detector runs the classic four stages: Gaussian smoothing at a radius
// fixed when the detector is constructed, Sobel gradients, non-maximum
// suppression along the quantized gradient direction, and double-threshold
// hysteresis that traces edges from strong seed pixels through connected
// weak pixels.
//
// Output frames are strict binary masks: every pixel is exactly 0 or 255.
// A detector reuses its internal float scratch buffers between calls, so a
// single instance processing same-sized frames performs no steady-state
// allocation. Detectors are not safe for concurrent use; the pipeline is
// single-threaded by design.
package canny
