package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/photowall/pkg/config"
)

// bindConfigFlags registers one flag per configuration field on fs, with the
// current values of cfg as defaults.
func bindConfigFlags(fs *pflag.FlagSet, cfg *config.Config) {
	// size
	fs.IntVar(&cfg.Width, "width", cfg.Width, "width of the wall in pixels")
	fs.IntVar(&cfg.Lines, "nb-lines", cfg.Lines, "number of rows (random wall: canvas height in rows)")
	fs.IntVar(&cfg.LineHeight, "line-height", cfg.LineHeight, "height of a row in pixels")
	fs.BoolVar(&cfg.NoResize, "no-resize", cfg.NoResize, "random wall: place photos at their original size")

	// layout
	fs.BoolVar(&cfg.Polaroid, "polaroid", cfg.Polaroid, "frame every photo like a polaroid (random walls always are)")
	fs.BoolVar(&cfg.Caption, "caption", cfg.Caption, "draw a caption in polaroid frames")
	fs.IntVar(&cfg.CropSize, "crop-size", cfg.CropSize, "polaroid: narrowest crop of an overflowing photo")
	fs.BoolVar(&cfg.Wrap, "do-wrap", cfg.Wrap, "continue overflowing photos on the next row")
	fs.BoolVar(&cfg.PickRandom, "pick-random", cfg.PickRandom, "shuffle the source directory")
	fs.BoolVar(&cfg.PutRandom, "put-random", cfg.PutRandom, "scatter photos on a persistent canvas")
	fs.DurationVar(&cfg.Sleep, "sleep", cfg.Sleep, "random wall: delay between placements")
	fs.BoolVar(&cfg.Fresh, "fresh", cfg.Fresh, "random wall: start over on a blank canvas")

	// rendering
	fs.StringVar(&cfg.Format, "format", cfg.Format, "suffix of intermediate image files")
	fs.StringVar(&cfg.FrameEngine, "frame-engine", cfg.FrameEngine, "polaroid renderer: builtin or magick")
	fs.StringVar(&cfg.CaptionMarker, "caption-marker", cfg.CaptionMarker, "directory name that starts theme/year/album captions")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0: time based)")

	// cache
	fs.BoolVar(&cfg.Cache, "cache", cfg.Cache, "cache resized photos between runs")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "lifetime of cached thumbnails")
}

// resolveConfig builds the run configuration: defaults, then the TOML file
// at path (if any), then every flag explicitly set on fs, then the
// positional source and target.
func resolveConfig(fs *pflag.FlagSet, path string, args []string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path, cfg); err != nil {
			return cfg, err
		}
	}

	overlay := pflag.NewFlagSet("overlay", pflag.ContinueOnError)
	bindConfigFlags(overlay, &cfg)

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil || overlay.Lookup(f.Name) == nil {
			return
		}
		err = overlay.Set(f.Name, f.Value.String())
	})
	if err != nil {
		return cfg, err
	}

	if len(args) > 0 {
		cfg.Source = args[0]
	}
	if len(args) > 1 {
		cfg.Target = args[1]
	}
	return cfg, cfg.Validate()
}
