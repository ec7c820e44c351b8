package progress

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/photowall/pkg/backend"
)

func TestNopDoesNotPanic(t *testing.T) {
	ctx := context.Background()
	n := Nop{}
	n.OnStart(ctx, "run")
	n.OnImage(ctx, 0, 1, "/tmp/a.jpg")
	n.OnRow(ctx, 0, nil)
	n.OnWall(ctx, nil)
	n.OnFinished(ctx, "")
	n.CheckPause(ctx)
	if n.StopRequested(ctx) {
		t.Error("Nop should not request a stop on a live context")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if !n.StopRequested(cancelled) {
		t.Error("Nop should stop on a cancelled context")
	}
}

// returnsWithin reports whether fn returns within d.
func returnsWithin(d time.Duration, fn func()) bool {
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}

func TestControlPauseResume(t *testing.T) {
	ctx := context.Background()
	c := NewControl()

	if !returnsWithin(time.Second, func() { c.CheckPause(ctx) }) {
		t.Fatal("CheckPause should not block while running")
	}

	c.Pause()
	if !c.Paused() {
		t.Fatal("Paused() = false after Pause()")
	}
	released := make(chan struct{})
	go func() {
		c.CheckPause(ctx)
		close(released)
	}()
	select {
	case <-released:
		t.Fatal("CheckPause returned while paused")
	case <-time.After(50 * time.Millisecond):
	}

	c.Resume()
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("CheckPause did not return after Resume()")
	}
	if c.StopRequested(ctx) {
		t.Error("resume must not request a stop")
	}
}

func TestControlStopEndsPause(t *testing.T) {
	ctx := context.Background()
	c := NewControl()
	c.Pause()
	go func() {
		time.Sleep(20 * time.Millisecond)
		c.Stop()
	}()
	if !returnsWithin(time.Second, func() { c.CheckPause(ctx) }) {
		t.Fatal("Stop() should release CheckPause")
	}
	if !c.StopRequested(ctx) {
		t.Error("StopRequested() = false after Stop()")
	}

	c.Pause()
	if c.Paused() {
		t.Error("a stopped Control cannot be paused")
	}
}

func TestControlContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewControl()
	c.Pause()
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if !returnsWithin(time.Second, func() { c.CheckPause(ctx) }) {
		t.Fatal("cancelling the context should release CheckPause")
	}
	if !c.StopRequested(ctx) {
		t.Error("a cancelled context should count as a stop")
	}
}

func TestControlToggle(t *testing.T) {
	c := NewControl()
	if !c.Toggle() {
		t.Error("first Toggle() should pause")
	}
	if c.Toggle() {
		t.Error("second Toggle() should resume")
	}
}

type countingReporter struct {
	Nop
	images int
}

func (r *countingReporter) OnImage(context.Context, int, int, string) { r.images++ }

func TestCombine(t *testing.T) {
	ctx := context.Background()
	r := &countingReporter{}
	c := NewControl()
	s := Combine(r, c)

	s.OnImage(ctx, 0, 0, "a")
	s.OnWall(ctx, &backend.Image{})
	if r.images != 1 {
		t.Errorf("images = %d, want 1", r.images)
	}
	c.Stop()
	if !s.StopRequested(ctx) {
		t.Error("Combine should forward control questions to the Pauser")
	}

	def := Combine(nil, nil)
	if def.StopRequested(ctx) {
		t.Error("Combine(nil, nil) should behave like Nop")
	}
}
