package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	perrors "github.com/matzehuels/photowall/pkg/errors"
)

func valid() Config {
	c := Default()
	c.Source = "/photos"
	c.Target = "/tmp/wall.png"
	return c
}

func TestDefaultIsValid(t *testing.T) {
	if err := valid().Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"missing source", func(c *Config) { c.Source = "" }},
		{"missing target", func(c *Config) { c.Target = "" }},
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"negative lines", func(c *Config) { c.Lines = -2 }},
		{"negative line height", func(c *Config) { c.LineHeight = -5 }},
		{"negative crop", func(c *Config) { c.CropSize = -1 }},
		{"negative sleep", func(c *Config) { c.Sleep = -time.Second }},
		{"bad format", func(c *Config) { c.Format = "png" }},
		{"bare dot format", func(c *Config) { c.Format = "." }},
		{"unknown format", func(c *Config) { c.Format = ".xcf" }},
		{"target without suffix", func(c *Config) { c.Target = "/tmp/wall" }},
		{"bad frame engine", func(c *Config) { c.FrameEngine = "gimp" }},
		{"random without canvas", func(c *Config) { c.PutRandom = true; c.Lines = 0 }},
		{"zero line height", func(c *Config) { c.LineHeight = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(&c)
			err := c.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %q, want INVALID_CONFIG", perrors.GetCode(err))
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photowall.toml")
	data := `
source = "/srv/photos"
width = 1600
polaroid = true
sleep = "3s"
seed = 7
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, Default())
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Source != "/srv/photos" || cfg.Width != 1600 || !cfg.Polaroid || cfg.Seed != 7 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Sleep != 3*time.Second {
		t.Errorf("Sleep = %s, want 3s", cfg.Sleep)
	}
	// untouched keys keep their defaults
	if cfg.LineHeight != DefaultLineHeight || cfg.Format != DefaultFormat {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("widht = 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, Default()); !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
		t.Errorf("Load() = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	base := Default()
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), base)
	if err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
	if cfg != base {
		t.Error("Load() should return base on error")
	}
}

func TestCanvasHeight(t *testing.T) {
	c := Default()
	c.Lines, c.LineHeight = 3, 120
	if got := c.CanvasHeight(); got != 360 {
		t.Errorf("CanvasHeight() = %d, want 360", got)
	}
}
