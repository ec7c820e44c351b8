package wall

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/photowall/pkg/backend"
	"github.com/matzehuels/photowall/pkg/cache"
)

// Loader opens source photos and scales them to a line height, optionally
// through a thumbnail cache.
type Loader struct {
	Backend backend.Backend
	Cache   cache.Cache // nil or a NullCache disables caching
	Keyer   cache.Keyer // nil selects cache.DefaultKeyer
	TTL     time.Duration
	Logger  *log.Logger
}

// NewLoader returns a Loader without cache.
func NewLoader(b backend.Backend, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{Backend: b, Logger: logger}
}

// Open returns an independent copy of the image at path.
func (l *Loader) Open(path string) (*backend.Image, error) {
	img, err := l.Backend.Open(path)
	if err != nil {
		return nil, backend.Failed("open "+path, err)
	}
	return l.Backend.Clone(img), nil
}

// Scaled opens path and resizes it proportionally to height. The new width
// is the scaled width truncated to an integer, at least 1. With cacheable
// set, results are looked up in and stored to the cache.
func (l *Loader) Scaled(ctx context.Context, path string, height int, cacheable bool) (*backend.Image, error) {
	key := ""
	if cacheable && cache.Enabled(l.Cache) {
		key = l.lookupKey(path, height)
		if img := l.fromCache(ctx, key, height); img != nil {
			l.Logger.Debug("thumbnail cache hit", "file", path)
			return img, nil
		}
	}

	clone, err := l.Open(path)
	if err != nil {
		return nil, err
	}
	if clone.Height() == height {
		return clone, nil
	}

	factor := float64(height) / float64(clone.Height())
	width := max(1, int(float64(clone.Width())*factor))
	l.Logger.Debug("resize", "file", path, "factor", factor, "width", width, "height", height)

	scaled, err := l.Backend.Resize(clone, width, height)
	if err != nil {
		return nil, backend.Failed("resize "+path, err)
	}

	if key != "" {
		var buf bytes.Buffer
		if err := l.Backend.Encode(scaled, &buf); err == nil {
			if err := l.Cache.Set(ctx, key, buf.Bytes(), l.TTL); err != nil {
				l.Logger.Warn("thumbnail cache write failed", "file", path, "err", err)
			}
		}
	}
	return scaled, nil
}

func (l *Loader) lookupKey(path string, height int) string {
	keyer := l.Keyer
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	key, err := keyer.ThumbKey(path, height)
	if err != nil {
		return ""
	}
	return key
}

func (l *Loader) fromCache(ctx context.Context, key string, height int) *backend.Image {
	if key == "" {
		return nil
	}
	data, hit, err := l.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil
	}
	img, err := l.Backend.Decode(bytes.NewReader(data))
	if err != nil || img.Height() != height {
		return nil
	}
	return img
}
