package backend

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"os/exec"
	"strings"

	"github.com/disintegration/imaging"
)

// MagickFramer frames images with ImageMagick's +polaroid effect.
// The image goes through a temporary file which is removed afterwards.
// Requires ImageMagick: brew install imagemagick (macOS), apt install imagemagick (Linux).
type MagickFramer struct {
	Bin     string // defaults to "convert"
	TempDir string // defaults to os.TempDir()
	Suffix  string // temporary file suffix, defaults to ".png"
}

// Frame implements Framer.
func (f *MagickFramer) Frame(img *Image, opts FrameOptions) (*Image, error) {
	bin := f.bin()
	if _, err := exec.LookPath(bin); err != nil {
		return nil, opError(err, "frame export requires ImageMagick (%s). Install with:\n  macOS:  brew install imagemagick\n  Linux:  apt install imagemagick", bin)
	}

	suffix := f.Suffix
	if suffix == "" {
		suffix = ".png"
	}
	tmp, err := os.CreateTemp(f.TempDir, "photowall-frame-*"+suffix)
	if err != nil {
		return nil, opError(err, "create temporary frame file")
	}
	name := tmp.Name()
	tmp.Close()
	defer os.Remove(name)

	if err := imaging.Save(img.img, name); err != nil {
		return nil, opError(err, "save %s", name)
	}

	args := f.args(name, opts)
	cmd := exec.Command(bin, args...)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return nil, &Error{
			Op:  bin + " " + strings.Join(args, " "),
			Err: fmt.Errorf("%v: %s", err, strings.TrimSpace(errBuf.String())),
		}
	}

	framed, err := imaging.Open(name)
	if err != nil {
		return nil, opError(err, "reload framed %s", name)
	}
	return &Image{img: toNRGBA(framed)}, nil
}

func (f *MagickFramer) bin() string {
	if f.Bin == "" {
		return "convert"
	}
	return f.Bin
}

// args builds the convert arguments framing path in place.
func (f *MagickFramer) args(path string, opts FrameOptions) []string {
	border := opts.BorderColor
	if border == nil {
		border = Snow
	}
	bg := opts.Background
	if bg == nil {
		bg = Black
	}
	args := []string{
		"-bordercolor", colorArg(border),
		"-background", colorArg(bg),
		"-gravity", "center",
	}
	if opts.Caption != "" {
		// argv reaches convert without a shell: drop the quote escaping, but
		// keep percent signs from starting ImageMagick escapes
		caption := captionUnescaper.Replace(opts.Caption)
		args = append(args, "-caption", strings.ReplaceAll(caption, "%", "%%"))
	}
	return append(args, "+polaroid", path, path)
}

// colorArg renders c in ImageMagick colour syntax.
func colorArg(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	switch n.A {
	case 0:
		return "transparent"
	case 0xff:
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	default:
		return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", n.R, n.G, n.B, float64(n.A)/255)
	}
}

var _ Framer = (*MagickFramer)(nil)
