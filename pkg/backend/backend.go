// Package backend provides the image operations photowall composes walls
// with.
//
// Composition code never touches pixels directly. It works on opaque
// [*Image] handles through the [Backend] interface: open, clone, resize,
// crop, frame, composite, concatenate, blank and save. Every operation
// returns a new handle and leaves its inputs untouched, so a clone is always
// an independent copy.
//
// [Imaging] is the default implementation, built on
// github.com/disintegration/imaging. Its frame effect is pluggable through
// [Framer]: [BuiltinFramer] renders a polaroid in Go, [MagickFramer] shells
// out to ImageMagick's +polaroid.
//
// Failures are reported as [*Error], carrying a description of the failed
// operation.
package backend

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
)

// Image is an opaque handle to decoded pixel data.
type Image struct {
	img *image.NRGBA
}

// FromImage wraps img in a handle. The pixels are copied.
func FromImage(img image.Image) *Image {
	return &Image{img: imaging.Clone(img)}
}

// Width returns the image width in pixels.
func (i *Image) Width() int { return i.img.Bounds().Dx() }

// Height returns the image height in pixels.
func (i *Image) Height() int { return i.img.Bounds().Dy() }

// Image exposes the pixels read-only, e.g. for previews.
func (i *Image) Image() image.Image { return i.img }

// FrameOptions configures the frame effect.
type FrameOptions struct {
	BorderColor color.Color
	Background  color.Color
	Caption     string // already escaped, see wall.EscapeCaption; empty for none
}

// Backend is the set of image operations used by the composers.
type Backend interface {
	Open(path string) (*Image, error)
	Clone(img *Image) *Image
	Resize(img *Image, width, height int) (*Image, error)
	Crop(img *Image, x, y, width, height int) (*Image, error)
	Frame(img *Image, opts FrameOptions) (*Image, error)
	// Composite draws overlay over base at (x, y) using "over" compositing.
	Composite(base, overlay *Image, x, y int) (*Image, error)
	// ConcatHorizontal appends b right of a, centred vertically.
	ConcatHorizontal(a, b *Image, background color.Color) (*Image, error)
	// ConcatVertical appends b below a, centred horizontally.
	ConcatVertical(a, b *Image, background color.Color) (*Image, error)
	Blank(width, height int, c color.Color) (*Image, error)
	// Save writes img to path, the format follows the extension.
	Save(img *Image, path string) error
	Encode(img *Image, w io.Writer) error
	Decode(r io.Reader) (*Image, error)
}

// Framer renders the decorative frame of Backend.Frame.
type Framer interface {
	Frame(img *Image, opts FrameOptions) (*Image, error)
}

// Error reports a failed backend operation.
type Error struct {
	Op  string // operation or command line
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

func opError(err error, format string, args ...any) *Error {
	return &Error{Op: fmt.Sprintf(format, args...), Err: err}
}

// Common colours.
var (
	Snow        = color.NRGBA{R: 0xff, G: 0xfa, B: 0xfa, A: 0xff}
	Black       = color.NRGBA{A: 0xff}
	White       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Transparent = color.NRGBA{}
)
