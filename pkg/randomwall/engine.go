// Package randomwall scatters photos at random positions onto a persistent
// canvas, one at a time, until asked to stop. Every photo is framed as a
// polaroid on a transparent background, whatever Config.Polaroid says.
//
// The canvas lives in the temporary directory, named after the target, and
// survives between runs: a later run resumes on top of it. After every
// placement the canvas is saved and copied over the target, both through a
// temporary file and a rename.
package randomwall

import (
	"context"
	"image"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/photowall/pkg/backend"
	"github.com/matzehuels/photowall/pkg/config"
	perrors "github.com/matzehuels/photowall/pkg/errors"
	"github.com/matzehuels/photowall/pkg/probe"
	"github.com/matzehuels/photowall/pkg/progress"
	"github.com/matzehuels/photowall/pkg/source"
	"github.com/matzehuels/photowall/pkg/wall"
)

// Option configures an Engine.
type Option func(*Engine)

// WithProbe classifies candidates and persisted canvases with p.
func WithProbe(p probe.Probe) Option { return func(e *Engine) { e.probe = p } }

// WithLoader replaces the default uncached loader.
func WithLoader(l *wall.Loader) Option { return func(e *Engine) { e.loader = l } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithRand sets the random source of placement offsets.
func WithRand(r *rand.Rand) Option { return func(e *Engine) { e.rng = r } }

// WithTempDir sets the directory the canvas is kept in.
func WithTempDir(dir string) Option { return func(e *Engine) { e.tempDir = dir } }

// Engine runs the random wall.
type Engine struct {
	cfg     config.Config
	backend backend.Backend
	source  source.Source
	probe   probe.Probe
	loader  *wall.Loader
	logger  *log.Logger
	rng     *rand.Rand
	tempDir string
}

// New returns an Engine drawing candidates from src.
func New(cfg config.Config, b backend.Backend, src source.Source, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, backend: b, source: src}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	if e.loader == nil {
		e.loader = wall.NewLoader(b, e.logger)
	}
	if e.rng == nil {
		seed := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if e.tempDir == "" {
		e.tempDir = os.TempDir()
	}
	return e
}

// CanvasPath is where the canvas for target is persisted:
// <dir>/<stem>.2<ext> for a target <stem><ext>.
func CanvasPath(dir, target string) string {
	base := filepath.Base(target)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+".2"+ext)
}

// Stats summarizes a run.
type Stats struct {
	// Resumed is set when a persisted canvas was picked up.
	Resumed bool
	// Placements are the canvas rectangles covered, in placement order.
	Placements []image.Rectangle
}

// Run initializes the canvas and places photos until the sink requests a
// stop or ctx is cancelled. Cancellation is a regular stop, not an error.
func (e *Engine) Run(ctx context.Context, sink progress.Sink) (Stats, error) {
	if sink == nil {
		sink = progress.Nop{}
	}
	canvasPath := CanvasPath(e.tempDir, e.cfg.Target)

	var stats Stats
	canvas, resumed, err := e.initCanvas(canvasPath)
	if err != nil {
		return stats, err
	}
	stats.Resumed = resumed
	if resumed {
		if err := wall.CopyAtomic(canvasPath, e.cfg.Target); err != nil {
			return stats, err
		}
		sink.OnWall(ctx, canvas)
	}

	for {
		if e.checkStop(ctx, sink) {
			break
		}

		path, err := e.next()
		if err != nil {
			return stats, err
		}

		rect, next, err := e.place(ctx, canvas, path)
		if err != nil {
			return stats, err
		}
		canvas = next
		if err := wall.SaveAtomic(e.backend, canvas, canvasPath); err != nil {
			return stats, err
		}
		if err := wall.CopyAtomic(canvasPath, e.cfg.Target); err != nil {
			return stats, err
		}
		stats.Placements = append(stats.Placements, rect)
		e.logger.Info("placed", "n", len(stats.Placements), "file", path, "x", rect.Min.X, "y", rect.Min.Y)

		sink.OnImage(ctx, len(stats.Placements)-1, 0, path)
		sink.OnWall(ctx, canvas)

		if e.checkStop(ctx, sink) {
			break
		}
		sleep(ctx, e.cfg.Sleep)
	}

	if resumed || len(stats.Placements) > 0 {
		sink.OnFinished(ctx, e.cfg.Target)
	} else {
		sink.OnFinished(ctx, "")
	}
	return stats, nil
}

// initCanvas loads the persisted canvas or creates a blank one.
func (e *Engine) initCanvas(path string) (*backend.Image, bool, error) {
	if e.cfg.Fresh {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, false, perrors.Composition("remove canvas "+path, err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		if e.isImage(path) {
			canvas, err := e.loader.Open(path)
			if err == nil {
				e.logger.Info("resuming canvas", "path", path, "width", canvas.Width(), "height", canvas.Height())
				return canvas, true, nil
			}
			e.logger.Warn("unreadable canvas, starting over", "path", path, "err", err)
		} else {
			e.logger.Warn("stale canvas is not an image, starting over", "path", path)
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, false, perrors.Composition("remove canvas "+path, err)
		}
	}

	canvas, err := e.backend.Blank(e.cfg.Width, e.cfg.CanvasHeight(), backend.Black)
	if err != nil {
		return nil, false, backend.Failed("create canvas", err)
	}
	if err := wall.SaveAtomic(e.backend, canvas, path); err != nil {
		return nil, false, err
	}
	e.logger.Debug("new canvas", "path", path, "width", canvas.Width(), "height", canvas.Height())
	return canvas, false, nil
}

// next returns the next candidate classified as an image.
func (e *Engine) next() (string, error) {
	for i := 0; i < e.source.Len(); i++ {
		path := probe.ResolveOneLevel(e.source.Next())
		if e.isImage(path) {
			return path, nil
		}
	}
	return "", perrors.New(perrors.ErrCodeNoImages, "no image among %d candidates", e.source.Len())
}

// place composites path onto canvas at a random offset.
func (e *Engine) place(ctx context.Context, canvas *backend.Image, path string) (image.Rectangle, *backend.Image, error) {
	var (
		piece *backend.Image
		err   error
	)
	if e.cfg.NoResize {
		piece, err = e.loader.Open(path)
	} else {
		piece, err = e.loader.Scaled(ctx, path, e.cfg.LineHeight, true)
	}
	if err != nil {
		return image.Rectangle{}, nil, err
	}

	// every placement is framed; only the caption is optional
	caption := ""
	if e.cfg.Caption {
		caption = wall.Caption(path, e.cfg.CaptionMarker)
	}
	if piece, err = wall.Polaroid(e.backend, piece, backend.Transparent, caption); err != nil {
		return image.Rectangle{}, nil, err
	}

	x := e.offset(canvas.Width() - piece.Width())
	y := e.offset(canvas.Height() - piece.Height())
	out, err := e.backend.Composite(canvas, piece, x, y)
	if err != nil {
		return image.Rectangle{}, nil, backend.Failed("composite "+path, err)
	}
	return image.Rect(x, y, x+piece.Width(), y+piece.Height()), out, nil
}

// offset draws uniformly from [0, span]. Pieces larger than the canvas are
// anchored at 0.
func (e *Engine) offset(span int) int {
	if span <= 0 {
		return 0
	}
	return e.rng.IntN(span + 1)
}

func (e *Engine) checkStop(ctx context.Context, sink progress.Sink) bool {
	sink.CheckPause(ctx)
	return sink.StopRequested(ctx) || ctx.Err() != nil
}

func (e *Engine) isImage(path string) bool {
	if e.probe == nil {
		return true
	}
	desc, err := e.probe.Classify(path)
	if err != nil || !probe.IsImage(desc) {
		e.logger.Debug("skip", "file", path, "type", desc)
		return false
	}
	return true
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
