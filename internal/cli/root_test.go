package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/disintegration/imaging"
	"github.com/spf13/pflag"

	"github.com/matzehuels/photowall/pkg/backend"
	"github.com/matzehuels/photowall/pkg/config"
	perrors "github.com/matzehuels/photowall/pkg/errors"
	"github.com/matzehuels/photowall/pkg/progress"
)

func parseFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg := config.Default()
	bindConfigFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return fs
}

func TestResolveConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "photowall.toml")
	content := "source = \"/from/file\"\ntarget = \"/tmp/file.png\"\nwidth = 800\nlines = 4\nsleep = \"3s\"\npolaroid = true\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		flags  []string
		config string
		args   []string
		check  func(t *testing.T, cfg config.Config)
	}{
		{
			name: "defaults",
			args: []string{"/photos", "/tmp/wall.png"},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Width != config.DefaultWidth || cfg.Lines != config.DefaultLines {
					t.Errorf("size = %dx%d rows, want defaults", cfg.Width, cfg.Lines)
				}
				if cfg.Source != "/photos" || cfg.Target != "/tmp/wall.png" {
					t.Errorf("paths = %s, %s", cfg.Source, cfg.Target)
				}
			},
		},
		{
			name:  "flags",
			flags: []string{"--width", "640", "--nb-lines", "3", "--do-wrap", "--sleep", "1500ms", "--seed", "42"},
			args:  []string{"/photos", "/tmp/wall.png"},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Width != 640 || cfg.Lines != 3 || !cfg.Wrap || cfg.Seed != 42 {
					t.Errorf("cfg = %+v", cfg)
				}
				if cfg.Sleep != 1500*time.Millisecond {
					t.Errorf("sleep = %s", cfg.Sleep)
				}
			},
		},
		{
			name:   "config file",
			config: file,
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Source != "/from/file" || cfg.Width != 800 || cfg.Lines != 4 || !cfg.Polaroid {
					t.Errorf("cfg = %+v", cfg)
				}
				if cfg.Sleep != 3*time.Second {
					t.Errorf("sleep = %s", cfg.Sleep)
				}
				if cfg.LineHeight != config.DefaultLineHeight {
					t.Errorf("line height = %d, want default", cfg.LineHeight)
				}
			},
		},
		{
			name:   "flags override file",
			flags:  []string{"--width", "300", "--polaroid=false"},
			config: file,
			args:   []string{"/photos"},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Width != 300 || cfg.Polaroid {
					t.Errorf("flags did not win: %+v", cfg)
				}
				if cfg.Lines != 4 {
					t.Errorf("lines = %d, want 4 from file", cfg.Lines)
				}
				if cfg.Source != "/photos" || cfg.Target != "/tmp/file.png" {
					t.Errorf("paths = %s, %s", cfg.Source, cfg.Target)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := resolveConfig(parseFlags(t, tt.flags...), tt.config, tt.args)
			if err != nil {
				t.Fatalf("resolveConfig() error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestResolveConfigInvalid(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		args  []string
	}{
		{"missing target", nil, []string{"/photos"}},
		{"negative width", []string{"--width", "-1"}, []string{"/photos", "/tmp/wall.png"}},
		{"unknown engine", []string{"--frame-engine", "gimp"}, []string{"/photos", "/tmp/wall.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveConfig(parseFlags(t, tt.flags...), "", tt.args)
			if !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
				t.Errorf("resolveConfig() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestNewFramer(t *testing.T) {
	cfg := config.Default()
	if _, ok := newFramer(cfg, nil).(*backend.BuiltinFramer); !ok {
		t.Error("default frame engine is not builtin")
	}
	cfg.FrameEngine = config.FrameMagick
	if f, ok := newFramer(cfg, nil).(*backend.MagickFramer); !ok || f.Suffix != cfg.Format {
		t.Error("magick frame engine not selected")
	}
}

func photoDir(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	for i := 0; i < n; i++ {
		name := filepath.Join(dir, string(rune('a'+i))+".png")
		if err := imaging.Save(imaging.New(300, 200, backend.White), name); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRootCommandSequential(t *testing.T) {
	src := photoDir(t, 3)
	target := filepath.Join(t.TempDir(), "wall.png")

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"--width", "400", "--nb-lines", "2", "--line-height", "50", src, target})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	img, err := imaging.Open(target)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 100 {
		t.Errorf("wall size = %dx%d, want 400x100", b.Dx(), b.Dy())
	}
}

func TestRootCommandEmptySource(t *testing.T) {
	target := filepath.Join(t.TempDir(), "wall.png")

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{t.TempDir(), target})
	err := root.ExecuteContext(context.Background())

	var empty *perrors.SourceEmptyError
	if !errors.As(err, &empty) {
		t.Fatalf("Execute() error = %v, want SourceEmptyError", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("target created for an empty source")
	}
}

func TestRunWallCancelled(t *testing.T) {
	cfg := config.Default()
	cfg.Source = photoDir(t, 2)
	cfg.Target = filepath.Join(t.TempDir(), "wall.png")
	cfg.Lines = 1
	cfg.Width = 100
	cfg.LineHeight = 50

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(io.Discard, LogInfo).runWall(ctx, cfg, false)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("runWall() error = %v, want context.Canceled", err)
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWallModelKeys(t *testing.T) {
	control := progress.NewControl()
	cfg := config.Default()
	cfg.Target = "/tmp/wall.png"
	m := NewWallModel(cfg, control)

	next, _ := m.Update(keyMsg("p"))
	m = next.(WallModel)
	if !m.paused || !control.Paused() {
		t.Fatal("p did not pause")
	}
	next, _ = m.Update(keyMsg(" "))
	m = next.(WallModel)
	if m.paused || control.Paused() {
		t.Fatal("space did not resume")
	}

	next, _ = m.Update(keyMsg("q"))
	m = next.(WallModel)
	if !m.stopping || !control.StopRequested(context.Background()) {
		t.Fatal("q did not stop")
	}

	next, cmd := m.Update(doneMsg{})
	m = next.(WallModel)
	if !m.done || cmd == nil {
		t.Error("done message did not quit")
	}
}

func TestWallModelProgress(t *testing.T) {
	cfg := config.Default()
	cfg.PutRandom = true
	m := NewWallModel(cfg, progress.NewControl())

	sink := tuiSink{send: func(msg tea.Msg) {
		next, _ := m.Update(msg)
		m = next.(WallModel)
	}}
	ctx := context.Background()
	sink.OnStart(ctx, "0123456789abcdef")
	sink.OnImage(ctx, 2, 0, "/photos/cat.png")
	sink.OnWall(ctx, backend.FromImage(imaging.New(40, 20, backend.Black)))

	if m.placed() != 3 || m.size != "40x20" || m.runID == "" {
		t.Errorf("model = %+v", m)
	}
	if view := m.View(); view == "" {
		t.Error("empty view")
	}
}
