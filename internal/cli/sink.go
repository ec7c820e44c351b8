package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/photowall/pkg/backend"
	"github.com/matzehuels/photowall/pkg/progress"
)

// consoleSink reports progress with a spinner line and styled status output.
type consoleSink struct {
	logger  *log.Logger
	spinner *Spinner
	walls   int
}

func newConsoleSink(logger *log.Logger) *consoleSink {
	return &consoleSink{logger: logger}
}

func (s *consoleSink) OnStart(ctx context.Context, runID string) {
	s.logger.Debug("run started", "id", runID)
	s.spinner = newSpinnerWithContext(ctx, "Starting...")
	s.spinner.Start()
}

func (s *consoleSink) OnImage(_ context.Context, row, col int, path string) {
	s.logger.Debug("image", "row", row, "col", col, "file", path)
	if s.spinner != nil {
		s.spinner.Update(fmt.Sprintf("row %d · photo %d · %s", row+1, col+1, filepath.Base(path)))
	}
}

func (s *consoleSink) OnRow(_ context.Context, row int, strip *backend.Image) {
	s.logger.Debug("row", "row", row, "width", strip.Width())
}

func (s *consoleSink) OnWall(_ context.Context, wall *backend.Image) {
	s.walls++
	s.logger.Debug("wall", "n", s.walls, "width", wall.Width(), "height", wall.Height())
}

func (s *consoleSink) OnFinished(_ context.Context, path string) {
	s.close()
	if path == "" {
		printWarning("Nothing was written")
		return
	}
	printSuccess("Wall written")
	printFile(path)
}

// close stops the spinner. It is safe to call more than once.
func (s *consoleSink) close() {
	if s.spinner != nil {
		s.spinner.Stop()
	}
}

var _ progress.Reporter = (*consoleSink)(nil)
