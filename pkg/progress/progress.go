// Package progress connects the wall composers to whoever watches them.
//
// A [Sink] receives progress events and answers the two cooperative control
// questions the composers ask between placements: "should I wait?"
// ([Pauser.CheckPause]) and "should I stop?" ([Pauser.StopRequested]).
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - [Reporter] receives events, [Pauser] answers control questions
//   - [Nop] implements both with no-op behaviour
//   - [Control] is a ready-made Pauser driven by Pause/Resume/Stop calls
//   - [Combine] joins any Reporter with any Pauser into a Sink
//
// Console output, the interactive terminal UI and test recorders all
// implement the same interface.
//
// # Usage
//
//	ctrl := progress.NewControl()
//	sink := progress.Combine(myReporter, ctrl)
//	go func() { <-keyPressed; ctrl.Stop() }()
//	composer.Assemble(ctx, sink)
package progress

import (
	"context"
	"sync"

	"github.com/matzehuels/photowall/pkg/backend"
)

// =============================================================================
// Interfaces
// =============================================================================

// Reporter receives progress events.
type Reporter interface {
	// OnStart is called once per run.
	OnStart(ctx context.Context, runID string)
	// OnImage is called when a source image is about to be placed.
	OnImage(ctx context.Context, row, col int, path string)
	// OnRow is called after a piece was appended to row strip.
	OnRow(ctx context.Context, row int, strip *backend.Image)
	// OnWall is called with the running composite after a row was added,
	// or with the canvas after a random placement.
	OnWall(ctx context.Context, wall *backend.Image)
	// OnFinished is called once at the end with the published path, or ""
	// when nothing was produced.
	OnFinished(ctx context.Context, path string)
}

// Pauser answers cooperative control questions.
type Pauser interface {
	// CheckPause blocks while the run is paused.
	CheckPause(ctx context.Context)
	// StopRequested reports whether the run should end.
	StopRequested(ctx context.Context) bool
}

// Sink is what the composers report to.
type Sink interface {
	Reporter
	Pauser
}

// =============================================================================
// No-op Implementation
// =============================================================================

// Nop is a Sink that ignores events, never pauses, and stops only when the
// context is done. Embed it to override selected events.
type Nop struct{}

func (Nop) OnStart(context.Context, string)            {}
func (Nop) OnImage(context.Context, int, int, string)  {}
func (Nop) OnRow(context.Context, int, *backend.Image) {}
func (Nop) OnWall(context.Context, *backend.Image)     {}
func (Nop) OnFinished(context.Context, string)         {}
func (Nop) CheckPause(context.Context)                 {}
func (Nop) StopRequested(ctx context.Context) bool     { return ctx.Err() != nil }

// =============================================================================
// Control
// =============================================================================

// Control is a Pauser driven from another goroutine, for example a key
// handler or a signal.
type Control struct {
	mu      sync.Mutex
	paused  bool
	stopped bool
	resume  chan struct{} // closed when a pause ends
}

// NewControl returns a running Control.
func NewControl() *Control {
	return &Control{}
}

// Pause makes the next CheckPause block.
func (c *Control) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused || c.stopped {
		return
	}
	c.paused = true
	c.resume = make(chan struct{})
}

// Resume releases a pending CheckPause.
func (c *Control) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unpause()
}

// Toggle pauses a running Control and resumes a paused one.
// It returns the new paused state.
func (c *Control) Toggle() bool {
	c.mu.Lock()
	paused := c.paused
	c.mu.Unlock()
	if paused {
		c.Resume()
		return false
	}
	c.Pause()
	return c.Paused()
}

// Stop requests the end of the run. It also ends any pause.
func (c *Control) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.unpause()
}

// Paused reports whether the Control is paused.
func (c *Control) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

func (c *Control) unpause() {
	if c.paused {
		c.paused = false
		close(c.resume)
	}
}

// CheckPause implements Pauser. It returns early when ctx is done.
func (c *Control) CheckPause(ctx context.Context) {
	c.mu.Lock()
	if !c.paused {
		c.mu.Unlock()
		return
	}
	ch := c.resume
	c.mu.Unlock()

	select {
	case <-ch:
	case <-ctx.Done():
	}
}

// StopRequested implements Pauser. A done context counts as a stop.
func (c *Control) StopRequested(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// =============================================================================
// Combine
// =============================================================================

type combined struct {
	Reporter
	Pauser
}

// Combine joins r and p into a Sink. Nil arguments fall back to Nop.
func Combine(r Reporter, p Pauser) Sink {
	if r == nil {
		r = Nop{}
	}
	if p == nil {
		p = Nop{}
	}
	return combined{Reporter: r, Pauser: p}
}

var (
	_ Sink   = Nop{}
	_ Pauser = (*Control)(nil)
)
