// Package wall builds the sequential photo wall: rows of photos scaled to
// one line height, packed left to right until the wall width is reached, and
// stacked top to bottom.
//
// A photo that overflows the row is cropped to the remaining width. With
// wrap enabled the cut-off remainder starts the next row. With polaroid
// frames enabled a remainder narrower than the crop size is not placed at
// all: the row ends early and the whole photo starts the next row instead.
//
// Progress is reported through a [progress.Sink] after every placement, and
// the sink's pause and stop requests are honored between placements.
package wall

import (
	"context"
	"image/color"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/photowall/pkg/backend"
	"github.com/matzehuels/photowall/pkg/config"
	perrors "github.com/matzehuels/photowall/pkg/errors"
	"github.com/matzehuels/photowall/pkg/probe"
	"github.com/matzehuels/photowall/pkg/progress"
	"github.com/matzehuels/photowall/pkg/source"
)

// Option configures a Composer.
type Option func(*Composer)

// WithProbe classifies candidates with p. Without a probe every candidate is
// assumed to be an image.
func WithProbe(p probe.Probe) Option { return func(c *Composer) { c.probe = p } }

// WithLoader replaces the default uncached loader.
func WithLoader(l *Loader) Option { return func(c *Composer) { c.loader = l } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(c *Composer) { c.logger = l } }

// WithTempDir sets the directory wrap fragments are stored in.
func WithTempDir(dir string) Option { return func(c *Composer) { c.tempDir = dir } }

// Composer composes rows and assembles them into a wall.
// It is not safe for concurrent use.
type Composer struct {
	cfg     config.Config
	backend backend.Backend
	source  source.Source
	probe   probe.Probe
	loader  *Loader
	logger  *log.Logger
	tempDir string
}

// New returns a Composer drawing candidates from src.
func New(cfg config.Config, b backend.Backend, src source.Source, opts ...Option) *Composer {
	c := &Composer{cfg: cfg, backend: b, source: src}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.loader == nil {
		c.loader = NewLoader(b, c.logger)
	}
	return c
}

// RowResult is the outcome of composing one row.
type RowResult struct {
	// Strip is the composed row, nil when nothing was placed.
	Strip *backend.Image
	// Pending is the piece the next row starts with, if any.
	Pending *Pending
	// Stopped is set when a stop was requested after a placement. The
	// strip is then incomplete.
	Stopped bool
}

// background is the fill between pieces of different heights.
func (c *Composer) background() color.Color {
	if c.cfg.Polaroid {
		return backend.Black
	}
	return backend.White
}

// ComposeRow fills row number row up to the configured width, starting with
// pending when it is non-nil. Ownership of pending passes to ComposeRow.
//
// The returned error is a *errors.CompositionError when an image operation
// fails, or carries errors.ErrCodeNoImages when a full cycle of the source
// produced no image.
func (c *Composer) ComposeRow(ctx context.Context, row int, pending *Pending, sink progress.Sink) (RowResult, error) {
	if sink == nil {
		sink = progress.Nop{}
	}
	width, height := c.cfg.Width, c.cfg.LineHeight

	var (
		strip    *backend.Image
		carry    *Pending
		rowWidth int
		col      int
		skipped  int
	)
	fail := func(err error) (RowResult, error) {
		pending.Release()
		carry.Release()
		return RowResult{}, err
	}

	for rowWidth < width {
		cand := pending
		pending = nil
		if cand == nil {
			path := probe.ResolveOneLevel(c.source.Next())
			if !c.isImage(path) {
				skipped++
				if skipped >= c.source.Len() {
					return fail(perrors.New(perrors.ErrCodeNoImages, "no image among %d candidates", c.source.Len()))
				}
				continue
			}
			cand = &Pending{Kind: Requeue, Path: path, Origin: path}
		}
		skipped = 0

		sink.OnImage(ctx, row, col, cand.Origin)
		col++

		piece, err := c.loader.Scaled(ctx, cand.Path, height, cand.Kind == Requeue)
		if err != nil {
			pending = cand
			return fail(err)
		}

		if remaining := width - rowWidth; piece.Width() > remaining {
			overflow := piece.Width() - remaining
			willFit := piece.Width() - overflow

			if c.cfg.Polaroid && willFit < c.cfg.CropSize && strip != nil {
				c.logger.Debug("discard", "row", row, "file", cand.Origin, "fit", willFit, "crop", c.cfg.CropSize)
				carry = cand
				break
			}

			if c.cfg.Wrap {
				next, err := c.fragment(piece, willFit, overflow, cand.Origin)
				if err != nil {
					pending = cand
					return fail(err)
				}
				carry = next
				c.logger.Debug("wrap", "row", row, "file", cand.Origin, "overflow", overflow)
			}
			if piece, err = c.backend.Crop(piece, 0, 0, willFit, height); err != nil {
				pending = cand
				return fail(backend.Failed("crop "+cand.Origin, err))
			}
		}
		if err := cand.Release(); err != nil {
			c.logger.Warn("remove fragment", "file", cand.Path, "err", err)
		}

		if c.cfg.Polaroid {
			caption := ""
			if c.cfg.Caption {
				caption = Caption(cand.Origin, c.cfg.CaptionMarker)
			}
			if piece, err = Polaroid(c.backend, piece, backend.Black, caption); err != nil {
				return fail(err)
			}
		}

		rowWidth += piece.Width()
		if strip == nil {
			strip = piece
		} else if strip, err = c.backend.ConcatHorizontal(strip, piece, c.background()); err != nil {
			return fail(backend.Failed("append row", err))
		}

		sink.OnRow(ctx, row, strip)
		sink.CheckPause(ctx)
		if sink.StopRequested(ctx) {
			return RowResult{Strip: strip, Pending: carry, Stopped: true}, nil
		}
	}
	return RowResult{Strip: strip, Pending: carry}, nil
}

// fragment stores the columns [x, x+w) of piece in a temporary file.
func (c *Composer) fragment(piece *backend.Image, x, w int, origin string) (*Pending, error) {
	rest, err := c.backend.Crop(piece, x, 0, w, piece.Height())
	if err != nil {
		return nil, backend.Failed("crop fragment of "+origin, err)
	}
	f, err := os.CreateTemp(c.tempDir, "photowall-wrap-*"+c.cfg.Format)
	if err != nil {
		return nil, perrors.Composition("create fragment file", err)
	}
	path := f.Name()
	f.Close()
	if err := c.backend.Save(rest, path); err != nil {
		os.Remove(path)
		return nil, backend.Failed("save fragment "+path, err)
	}
	return &Pending{Kind: Fragment, Path: path, Origin: origin}, nil
}

// isImage classifies path with the configured probe.
func (c *Composer) isImage(path string) bool {
	if c.probe == nil {
		return true
	}
	desc, err := c.probe.Classify(path)
	if err != nil {
		c.logger.Debug("skip unreadable", "file", path, "err", err)
		return false
	}
	if !probe.IsImage(desc) {
		c.logger.Debug("skip", "file", path, "type", desc)
		return false
	}
	return true
}
