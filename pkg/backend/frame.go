package backend

import (
	"image"
	"image/color"
	"math/rand/v2"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	captionInk  = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	shadowColor = color.NRGBA{A: 0xff}
)

const shadowOpacity = 0.35

// captionUnescaper undoes the quote escaping applied to captions. Both
// framers draw the plain text.
var captionUnescaper = strings.NewReplacer(`\'`, `'`, `\"`, `"`)

// BuiltinFramer draws a polaroid frame in Go: a border in BorderColor with a
// wider bottom margin holding the caption, a drop shadow, and a random tilt
// of up to MaxTilt degrees. Uncovered corners take the Background colour.
type BuiltinFramer struct {
	MaxTilt float64
	Rand    *rand.Rand // nil disables the tilt
}

// Frame implements Framer.
func (f *BuiltinFramer) Frame(img *Image, opts FrameOptions) (*Image, error) {
	border := opts.BorderColor
	if border == nil {
		border = Snow
	}
	bg := opts.Background
	if bg == nil {
		bg = Black
	}

	w, h := img.Width(), img.Height()
	pad := max(2, min(w, h)/25)

	var lines []string
	if opts.Caption != "" {
		lines = strings.Split(captionUnescaper.Replace(opts.Caption), "\n")
	}
	lineHeight := basicfont.Face7x13.Metrics().Height.Ceil()
	bottom := max(pad*4, len(lines)*lineHeight+2*pad)

	fw, fh := w+2*pad, h+pad+bottom
	framed := imaging.New(fw, fh, border)
	framed = imaging.Paste(framed, img.img, image.Pt(pad, pad))
	drawCaption(framed, lines, pad+h, fh)

	shadow := max(1, pad/2)
	out := imaging.New(fw+shadow, fh+shadow, bg)
	out = imaging.Overlay(out, imaging.New(fw, fh, shadowColor), image.Pt(shadow, shadow), shadowOpacity)
	out = imaging.Paste(out, framed, image.Pt(0, 0))

	if f.Rand != nil && f.MaxTilt > 0 {
		angle := (f.Rand.Float64()*2 - 1) * f.MaxTilt
		out = imaging.Rotate(out, angle, bg)
	}
	return &Image{img: out}, nil
}

// drawCaption centres lines horizontally and vertically between top and
// bottom.
func drawCaption(dst *image.NRGBA, lines []string, top, bottom int) {
	if len(lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil()
	y := top + (bottom-top-lineHeight*len(lines))/2 + face.Metrics().Ascent.Ceil()

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(captionInk), Face: face}
	for _, line := range lines {
		width := d.MeasureString(line).Ceil()
		d.Dot = fixed.P((dst.Bounds().Dx()-width)/2, y)
		d.DrawString(line)
		y += lineHeight
	}
}

var _ Framer = (*BuiltinFramer)(nil)
