package frame

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blend"
)

// Frame is a width x height image of row-major RGB triples with the origin
// at the top-left corner. Pix holds exactly Width*Height*3 bytes.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// New returns a frame of the given dimensions with a zeroed pixel buffer.
func New(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// Resize adjusts the frame to the given dimensions, reallocating the pixel
// buffer only when the current one is too small. Contents are unspecified
// after a resize that changes dimensions.
func (f *Frame) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		f.Width = 0
		f.Height = 0
		f.Pix = f.Pix[:0]
		return
	}
	n := width * height * 3
	if cap(f.Pix) < n {
		f.Pix = make([]uint8, n)
	}
	f.Pix = f.Pix[:n]
	f.Width = width
	f.Height = height
}

// Empty reports whether the frame holds no pixels.
func (f *Frame) Empty() bool {
	return f.Width == 0 || f.Height == 0
}

// RGBAt returns the pixel at (x, y). The caller must ensure the coordinate
// is in bounds.
func (f *Frame) RGBAt(x, y int) (r, g, b uint8) {
	i := (y*f.Width + x) * 3
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// SetRGB writes the pixel at (x, y). The caller must ensure the coordinate
// is in bounds.
func (f *Frame) SetRGB(x, y int, r, g, b uint8) {
	i := (y*f.Width + x) * 3
	f.Pix[i] = r
	f.Pix[i+1] = g
	f.Pix[i+2] = b
}

// CopyFrom makes f a copy of src, reusing f's buffer where possible.
func (f *Frame) CopyFrom(src *Frame) {
	f.Resize(src.Width, src.Height)
	copy(f.Pix, src.Pix)
}

// FromImage fills dst with the contents of img, converting to 8-bit RGB.
func FromImage(img image.Image, dst *Frame) {
	bounds := img.Bounds()
	dst.Resize(bounds.Dx(), bounds.Dy())
	if dst.Empty() {
		return
	}

	// Fast path for the decoder's common output types.
	switch src := img.(type) {
	case *image.RGBA:
		fromStrided(src.Pix, src.Stride, 4, dst)
		return
	case *image.NRGBA:
		fromStrided(src.Pix, src.Stride, 4, dst)
		return
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			dst.Pix[i] = uint8(r >> 8)
			dst.Pix[i+1] = uint8(g >> 8)
			dst.Pix[i+2] = uint8(b >> 8)
			i += 3
		}
	}
}

func fromStrided(pix []uint8, stride, bpp int, dst *Frame) {
	for y := 0; y < dst.Height; y++ {
		si := y * stride
		di := y * dst.Width * 3
		for x := 0; x < dst.Width; x++ {
			dst.Pix[di] = pix[si]
			dst.Pix[di+1] = pix[si+1]
			dst.Pix[di+2] = pix[si+2]
			si += bpp
			di += 3
		}
	}
}

// ToImage returns the frame as an *image.NRGBA with full opacity. An empty
// frame yields an empty image.
func (f *Frame) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	si := 0
	di := 0
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.Pix[di] = f.Pix[si]
			img.Pix[di+1] = f.Pix[si+1]
			img.Pix[di+2] = f.Pix[si+2]
			img.Pix[di+3] = 0xFF
			si += 3
			di += 4
		}
	}
	return img
}

// Grayscale converts src to a single-intensity frame using the ITU-R BT.601
// luma weights, writing the result as equal RGB triples so every stage can
// keep consuming the same frame layout.
func Grayscale(src, dst *Frame) {
	dst.Resize(src.Width, src.Height)
	for i := 0; i < len(src.Pix); i += 3 {
		y := (299*int(src.Pix[i]) + 587*int(src.Pix[i+1]) + 114*int(src.Pix[i+2])) / 1000
		v := uint8(y)
		dst.Pix[i] = v
		dst.Pix[i+1] = v
		dst.Pix[i+2] = v
	}
}

// BlendAdd composites overlay onto base with saturating addition, the
// diagnostic merge that shows the edge mask on top of the live frame. The
// frames must share dimensions; otherwise, or when either is empty, dst
// becomes empty.
func BlendAdd(base, overlay, dst *Frame) {
	if base.Empty() || overlay.Empty() || base.Width != overlay.Width || base.Height != overlay.Height {
		dst.Resize(0, 0)
		return
	}
	merged := blend.Add(base.ToImage(), overlay.ToImage())
	FromImage(merged, dst)
}

// GrayImage renders the frame's first channel as a grayscale image, for
// saving binary masks and other single-intensity frames.
func (f *Frame) GrayImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, _, _ := f.RGBAt(x, y)
			img.SetGray(x, y, color.Gray{Y: r})
		}
	}
	return img
}
