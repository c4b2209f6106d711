package frame

import (
	"fmt"

	"github.com/disintegration/imaging"
)

// Load reads an image file (PNG, JPEG, GIF, TIFF or BMP) into dst.
func Load(path string, dst *Frame) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	FromImage(img, dst)
	return nil
}

// Save writes the frame to path; the format is chosen from the file
// extension. An empty frame is an error because there is nothing to encode.
func Save(f *Frame, path string) error {
	if f.Empty() {
		return fmt.Errorf("cannot save empty frame to %s", path)
	}
	if err := imaging.Save(f.ToImage(), path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// FitWidth resamples src into dst at the given width, preserving the aspect
// ratio. Widths at or above the source width, or non-positive widths, copy
// the frame unchanged: detection never upsamples.
func FitWidth(src *Frame, width int, dst *Frame) {
	if src.Empty() {
		dst.Resize(0, 0)
		return
	}
	if width <= 0 || width >= src.Width {
		dst.CopyFrom(src)
		return
	}
	resized := imaging.Resize(src.ToImage(), width, 0, imaging.Lanczos)
	FromImage(resized, dst)
}
