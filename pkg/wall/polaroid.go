package wall

import (
	"image/color"

	"github.com/matzehuels/photowall/pkg/backend"
)

// Polaroid frames img with a snow border on background and resizes the
// result back to the size of img, so framing never changes the layout. An
// empty caption draws none.
func Polaroid(b backend.Backend, img *backend.Image, background color.Color, caption string) (*backend.Image, error) {
	framed, err := b.Frame(img, backend.FrameOptions{
		BorderColor: backend.Snow,
		Background:  background,
		Caption:     EscapeCaption(caption),
	})
	if err != nil {
		return nil, backend.Failed("frame", err)
	}
	if framed.Width() == img.Width() && framed.Height() == img.Height() {
		return framed, nil
	}
	out, err := b.Resize(framed, img.Width(), img.Height())
	if err != nil {
		return nil, backend.Failed("resize frame", err)
	}
	return out, nil
}
