// Package config holds the immutable run configuration of photowall.
//
// A Config is built once at startup (defaults, then an optional TOML file,
// then command-line flags) and passed by value into every component. No
// package reads configuration from global state.
//
// # File format
//
//	source = "/home/me/photos/"
//	target = "/tmp/wall.png"
//	width = 1600
//	lines = 3
//	line_height = 240
//	polaroid = true
//	put_random = true
//	sleep = "5s"
package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/photowall/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default wall width in pixels.
	DefaultWidth = 1000

	// DefaultLines is the default number of rows.
	DefaultLines = 2

	// DefaultLineHeight is the default height of a row in pixels.
	DefaultLineHeight = 200

	// DefaultCropSize is the narrowest sliver, in pixels, a framed image may be
	// cropped to at the end of a row.
	DefaultCropSize = 100

	// DefaultFormat is the suffix of intermediate image files.
	DefaultFormat = ".png"

	// DefaultCaptionMarker is the directory name that introduces the
	// theme/year/album/file naming convention used for captions.
	DefaultCaptionMarker = "miniatures"

	// DefaultCacheTTL is how long resized thumbnails stay cached.
	DefaultCacheTTL = 7 * 24 * time.Hour
)

// Frame engines.
const (
	FrameBuiltin = "builtin"
	FrameMagick  = "magick"
)

// SupportedFormats are the file suffixes images can be written as.
var SupportedFormats = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// ValidFrameEngines is the set of supported frame engines.
var ValidFrameEngines = map[string]bool{
	FrameBuiltin: true,
	FrameMagick:  true,
}

// =============================================================================
// Config
// =============================================================================

// Config is the configuration of a single run.
type Config struct {
	Source string `toml:"source"` // directory photos are picked from
	Target string `toml:"target"` // output image

	Width      int `toml:"width"`
	Lines      int `toml:"lines"`
	LineHeight int `toml:"line_height"`
	CropSize   int `toml:"crop_size"`

	Wrap     bool `toml:"wrap"`     // continue overflowing images on the next row
	Polaroid bool `toml:"polaroid"` // frame every image
	Caption  bool `toml:"caption"`  // draw a caption in the frame

	PutRandom  bool          `toml:"put_random"`  // random wall instead of a row-packed grid
	PickRandom bool          `toml:"pick_random"` // shuffle the source directory once
	NoResize   bool          `toml:"no_resize"`   // random wall: keep source size
	Sleep      time.Duration `toml:"sleep"`       // random wall: delay between placements
	Fresh      bool          `toml:"fresh"`       // random wall: ignore a persisted canvas

	Format        string `toml:"format"`
	FrameEngine   string `toml:"frame_engine"`
	CaptionMarker string `toml:"caption_marker"`
	Seed          uint64 `toml:"seed"` // 0 picks a time based seed

	Cache    bool          `toml:"cache"`
	CacheTTL time.Duration `toml:"cache_ttl"`
}

// Default returns the default configuration. Source and Target are empty.
func Default() Config {
	return Config{
		Width:         DefaultWidth,
		Lines:         DefaultLines,
		LineHeight:    DefaultLineHeight,
		CropSize:      DefaultCropSize,
		Format:        DefaultFormat,
		FrameEngine:   FrameBuiltin,
		CaptionMarker: DefaultCaptionMarker,
		CacheTTL:      DefaultCacheTTL,
	}
}

// Load decodes the TOML file at path on top of base.
// Keys missing from the file keep their value from base.
func Load(path string, base Config) (Config, error) {
	cfg := base
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return base, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, perrors.New(perrors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.Source == "" {
		return perrors.New(perrors.ErrCodeInvalidConfig, "source path is required")
	}
	if c.Target == "" {
		return perrors.New(perrors.ErrCodeInvalidConfig, "target path is required")
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"width", c.Width},
		{"lines", c.Lines},
		{"line-height", c.LineHeight},
		{"crop-size", c.CropSize},
	} {
		if f.value < 0 {
			return perrors.New(perrors.ErrCodeInvalidConfig, "%s must be >= 0, got %d", f.name, f.value)
		}
	}
	if c.Sleep < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "sleep must be >= 0, got %s", c.Sleep)
	}
	if c.CacheTTL < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "cache-ttl must be >= 0, got %s", c.CacheTTL)
	}
	if !strings.HasPrefix(c.Format, ".") || len(c.Format) < 2 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "format must be a file suffix such as .png, got %q", c.Format)
	}
	if !SupportedFormats[strings.ToLower(c.Format)] {
		return perrors.New(perrors.ErrCodeInvalidConfig, "unsupported format: %s", c.Format)
	}
	if ext := strings.ToLower(filepath.Ext(c.Target)); !SupportedFormats[ext] {
		return perrors.New(perrors.ErrCodeInvalidConfig, "target %s must end in an image suffix such as .png or .jpg", c.Target)
	}
	if !ValidFrameEngines[c.FrameEngine] {
		return perrors.New(perrors.ErrCodeInvalidConfig, "invalid frame engine: %s (must be 'builtin' or 'magick')", c.FrameEngine)
	}
	if c.PutRandom {
		// the persistent canvas is Width x Lines*LineHeight
		if c.Width == 0 || c.Lines == 0 || c.LineHeight == 0 {
			return perrors.New(perrors.ErrCodeInvalidConfig, "random wall needs width, lines and line-height > 0")
		}
	} else if c.LineHeight == 0 && c.Width > 0 && c.Lines > 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "line-height must be > 0")
	}
	return nil
}

// CanvasHeight is the height of the whole wall.
func (c Config) CanvasHeight() int {
	return c.Lines * c.LineHeight
}
