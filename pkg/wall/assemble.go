package wall

import (
	"context"

	"github.com/matzehuels/photowall/pkg/backend"
	"github.com/matzehuels/photowall/pkg/progress"
)

// Assemble composes the configured number of rows, stacks them and writes
// the wall to the configured target. It returns the path written, or "" when
// nothing was written because no row was completed.
//
// A stop request ends assembly after the current placement; the partial row
// is dropped and the completed rows are still written. A piece carried past
// the last row is discarded.
func (c *Composer) Assemble(ctx context.Context, sink progress.Sink) (string, error) {
	if sink == nil {
		sink = progress.Nop{}
	}

	var (
		wall    *backend.Image
		pending *Pending
	)
	defer func() {
		if err := pending.Release(); err != nil {
			c.logger.Warn("remove fragment", "file", pending.Path, "err", err)
		}
	}()

	for row := 0; row < c.cfg.Lines; row++ {
		res, err := c.ComposeRow(ctx, row, pending, sink)
		pending = res.Pending
		if err != nil {
			return "", err
		}
		if res.Stopped {
			c.logger.Info("stop requested", "rows", row)
			break
		}
		if res.Strip == nil {
			continue
		}

		if wall == nil {
			wall = res.Strip
		} else if wall, err = c.backend.ConcatVertical(wall, res.Strip, c.background()); err != nil {
			return "", backend.Failed("append wall", err)
		}
		c.logger.Debug("row complete", "row", row, "width", res.Strip.Width())
		sink.OnWall(ctx, wall)
	}

	if wall == nil {
		sink.OnFinished(ctx, "")
		return "", nil
	}
	if err := SaveAtomic(c.backend, wall, c.cfg.Target); err != nil {
		return "", err
	}
	c.logger.Info("wall written", "path", c.cfg.Target, "width", wall.Width(), "height", wall.Height())
	sink.OnFinished(ctx, c.cfg.Target)
	return c.cfg.Target, nil
}
