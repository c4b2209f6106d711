// Package frame provides the RGB frame container shared by every pipeline
// stage, plus the grayscale and blend conversions that feed the detector.
//
// # Buffer Reuse
//
// A Frame owns a flat byte buffer of row-major RGB triples with the origin
// at the top-left corner. Stages take destination frames as pointers and
// call Resize, which reallocates only when the requested dimensions no
// longer fit the existing buffer. Callers that pass the same frames on
// every iteration therefore pay no per-frame allocation cost once the
// pipeline has warmed up.
//
// # Empty Frames
//
// A zero-dimension frame is the "no data" value. Conversions accept empty
// inputs and produce empty outputs rather than failing, so a malformed
// capture degrades to a quiet no-op frame.
package frame
