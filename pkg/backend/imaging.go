package backend

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"

	// extra decoders for source photos
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Imaging implements Backend in memory with disintegration/imaging.
type Imaging struct {
	Framer Framer
}

// NewImaging returns an Imaging backend using f for frames.
// A nil f selects a BuiltinFramer without tilt.
func NewImaging(f Framer) *Imaging {
	if f == nil {
		f = &BuiltinFramer{}
	}
	return &Imaging{Framer: f}
}

// Open decodes the image at path, honouring EXIF orientation.
func (b *Imaging) Open(path string) (*Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, opError(err, "open %s", path)
	}
	return &Image{img: toNRGBA(img)}, nil
}

// Clone returns an independent copy of img.
func (b *Imaging) Clone(img *Image) *Image {
	return &Image{img: imaging.Clone(img.img)}
}

// Resize scales img to exactly width x height.
func (b *Imaging) Resize(img *Image, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, opError(errors.New("non-positive size"), "resize to %dx%d", width, height)
	}
	return &Image{img: imaging.Resize(img.img, width, height, imaging.Lanczos)}, nil
}

// Crop cuts the width x height rectangle at (x, y) out of img.
func (b *Imaging) Crop(img *Image, x, y, width, height int) (*Image, error) {
	rect := image.Rect(x, y, x+width, y+height)
	if width <= 0 || height <= 0 || !rect.In(img.img.Bounds()) {
		return nil, opError(errors.New("rectangle outside image"), "crop %dx%d+%d+%d of %dx%d",
			width, height, x, y, img.Width(), img.Height())
	}
	return &Image{img: imaging.Crop(img.img, rect)}, nil
}

// Frame delegates to the configured Framer.
func (b *Imaging) Frame(img *Image, opts FrameOptions) (*Image, error) {
	return b.Framer.Frame(img, opts)
}

// Composite alpha-blends overlay onto base with its top-left corner at (x, y).
func (b *Imaging) Composite(base, overlay *Image, x, y int) (*Image, error) {
	return &Image{img: imaging.Overlay(base.img, overlay.img, image.Pt(x, y), 1.0)}, nil
}

// ConcatHorizontal places b to the right of a.
func (b *Imaging) ConcatHorizontal(first, second *Image, background color.Color) (*Image, error) {
	w := first.Width() + second.Width()
	h := max(first.Height(), second.Height())
	dst := imaging.New(w, h, background)
	dst = imaging.Paste(dst, first.img, image.Pt(0, (h-first.Height())/2))
	dst = imaging.Paste(dst, second.img, image.Pt(first.Width(), (h-second.Height())/2))
	return &Image{img: dst}, nil
}

// ConcatVertical places b below a.
func (b *Imaging) ConcatVertical(first, second *Image, background color.Color) (*Image, error) {
	w := max(first.Width(), second.Width())
	h := first.Height() + second.Height()
	dst := imaging.New(w, h, background)
	dst = imaging.Paste(dst, first.img, image.Pt((w-first.Width())/2, 0))
	dst = imaging.Paste(dst, second.img, image.Pt((w-second.Width())/2, first.Height()))
	return &Image{img: dst}, nil
}

// Blank creates a width x height image filled with c.
func (b *Imaging) Blank(width, height int, c color.Color) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, opError(errors.New("non-positive size"), "blank %dx%d", width, height)
	}
	return &Image{img: imaging.New(width, height, c)}, nil
}

// Save encodes img to path in the format given by its extension.
func (b *Imaging) Save(img *Image, path string) error {
	if err := imaging.Save(img.img, path, imaging.JPEGQuality(92)); err != nil {
		return opError(err, "save %s", path)
	}
	return nil
}

// Encode writes img to w as PNG.
func (b *Imaging) Encode(img *Image, w io.Writer) error {
	if err := imaging.Encode(w, img.img, imaging.PNG); err != nil {
		return opError(err, "encode png")
	}
	return nil
}

// Decode reads an image in any registered format from r.
func (b *Imaging) Decode(r io.Reader) (*Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, opError(err, "decode")
	}
	return &Image{img: toNRGBA(img)}, nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

var _ Backend = (*Imaging)(nil)
