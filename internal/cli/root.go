package cli

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/photowall/pkg/backend"
	"github.com/matzehuels/photowall/pkg/cache"
	"github.com/matzehuels/photowall/pkg/config"
	"github.com/matzehuels/photowall/pkg/probe"
	"github.com/matzehuels/photowall/pkg/progress"
	"github.com/matzehuels/photowall/pkg/randomwall"
	"github.com/matzehuels/photowall/pkg/source"
	"github.com/matzehuels/photowall/pkg/wall"
)

// maxTilt is the largest rotation of a builtin polaroid frame, in degrees.
const maxTilt = 4

// wallCommand creates the root command that builds a wall.
func (c *CLI) wallCommand() *cobra.Command {
	var (
		configPath  string
		interactive bool
	)
	flagCfg := config.Default()

	cmd := &cobra.Command{
		Use:   "photowall [flags] <path> <target>",
		Short: "Photowall composes a photo wall out of a directory of photos",
		Long: `Photowall composes a single image out of the photos in a directory.

By default photos are scaled to one line height and packed into rows
(--nb-lines rows of --width pixels). With --put-random they are scattered
one by one onto a canvas that persists in the temporary directory, so a
later run continues the same wall.

Flags override the values of the --config TOML file.`,
		Example: `  # two rows of polaroids
  photowall --polaroid --caption ~/Pictures /tmp/wall.png

  # keep adding a photo every 5 seconds
  photowall --put-random --caption --sleep 5s ~/Pictures /tmp/wall.png`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), configPath, args)
			if err != nil {
				return err
			}
			return c.runWall(cmd.Context(), cfg, interactive)
		},
	}

	bindConfigFlags(cmd.Flags(), &flagCfg)
	cmd.Flags().StringVar(&configPath, "config", "", "TOML configuration file")
	cmd.Flags().BoolVar(&interactive, "tui", false, "interactive progress view (p: pause, q: stop)")

	return cmd
}

// runWall builds the wall described by cfg. A cancelled ctx stops the run
// cooperatively; whatever was completed is still written and ctx's error is
// returned.
func (c *CLI) runWall(ctx context.Context, cfg config.Config, interactive bool) error {
	runID := uuid.NewString()
	logger := c.Logger.With("run", runID[:8])

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	logger.Debug("config", "source", cfg.Source, "target", cfg.Target, "seed", seed,
		"width", cfg.Width, "lines", cfg.Lines, "line_height", cfg.LineHeight)

	var shuffle *rand.Rand
	if cfg.PickRandom {
		shuffle = rng
	}
	src, err := source.NewDir(cfg.Source, shuffle)
	if err != nil {
		return err
	}

	thumbs, err := newCache(cfg.Cache)
	if err != nil {
		return err
	}
	defer thumbs.Close()

	b := backend.NewImaging(newFramer(cfg, rng))
	loader := wall.NewLoader(b, logger)
	if cfg.Cache && cache.Enabled(thumbs) {
		loader.Cache, loader.TTL = thumbs, cfg.CacheTTL
	}

	control := progress.NewControl()
	build := func(r progress.Reporter) error {
		sink := progress.Combine(r, control)
		sink.OnStart(ctx, runID)
		if cfg.PutRandom {
			return c.runRandom(ctx, cfg, b, src, loader, rng, logger, sink)
		}
		return c.runSequential(ctx, cfg, b, src, loader, logger, sink)
	}

	if interactive {
		err = runTUI(cfg, control, build)
	} else {
		console := newConsoleSink(logger)
		err = build(console)
		console.close()
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

func (c *CLI) runSequential(ctx context.Context, cfg config.Config, b backend.Backend, src source.Source,
	loader *wall.Loader, logger *log.Logger, sink progress.Sink) error {
	sw := newStopwatch(logger)
	composer := wall.New(cfg, b, src,
		wall.WithProbe(probe.Magic{}),
		wall.WithLoader(loader),
		wall.WithLogger(logger),
	)
	path, err := composer.Assemble(ctx, sink)
	if err != nil {
		return err
	}
	if path != "" {
		sw.done("sequential wall finished", "path", path)
	}
	return nil
}

func (c *CLI) runRandom(ctx context.Context, cfg config.Config, b backend.Backend, src source.Source,
	loader *wall.Loader, rng *rand.Rand, logger *log.Logger, sink progress.Sink) error {
	sw := newStopwatch(logger)
	engine := randomwall.New(cfg, b, src,
		randomwall.WithProbe(probe.Magic{}),
		randomwall.WithLoader(loader),
		randomwall.WithLogger(logger),
		randomwall.WithRand(rng),
	)
	stats, err := engine.Run(ctx, sink)
	if err != nil {
		return err
	}
	sw.done("random wall stopped", "placed", len(stats.Placements), "resumed", stats.Resumed)
	return nil
}

// newFramer returns the polaroid renderer selected by cfg.
func newFramer(cfg config.Config, rng *rand.Rand) backend.Framer {
	if cfg.FrameEngine == config.FrameMagick {
		return &backend.MagickFramer{Suffix: cfg.Format}
	}
	return &backend.BuiltinFramer{MaxTilt: maxTilt, Rand: rng}
}
