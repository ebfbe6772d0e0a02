package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/penmode/internal/toolmode"
)

func TestParse(t *testing.T) {
	input := `
righthanded = false
devel = true
renderer_backend = resvg
autoexpand_height: true
save_dir = "/tmp/sheets"

[notify]
save = false
export = true
copy = true
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Righthanded {
		t.Error("Expected righthanded to be false")
	}
	if !cfg.Devel || !cfg.AutoexpandHeight {
		t.Errorf("Expected devel and autoexpand_height, got %+v", cfg)
	}
	if cfg.Backend != toolmode.BackendResvg {
		t.Errorf("Expected resvg backend, got %v", cfg.Backend)
	}
	if cfg.SaveDir != "/tmp/sheets" {
		t.Errorf("Expected save_dir '/tmp/sheets', got '%s'", cfg.SaveDir)
	}
	if cfg.Notify != (Notify{Save: false, Export: true, Copy: true}) {
		t.Errorf("Unexpected notify settings %+v", cfg.Notify)
	}
	if !cfg.FormatBorders {
		t.Error("Expected format_borders default to survive")
	}
}

func TestParseRejectsUnknownBackend(t *testing.T) {
	_, err := Parse(strings.NewReader("renderer_backend = cairo\n"))
	if !errors.Is(err, toolmode.ErrInvalidVariant) {
		t.Fatalf("Expected ErrInvalidVariant, got %v", err)
	}
}

func TestParseRejectsBadBoolean(t *testing.T) {
	_, err := Parse(strings.NewReader("[notify]\nsave = maybe\n"))
	if err == nil || !strings.Contains(err.Error(), "[notify]") {
		t.Fatalf("Expected notify section error, got %v", err)
	}
}

func TestCircular(t *testing.T) {
	cfg := New()
	cfg.Righthanded = false
	cfg.VisualDebug = true
	cfg.TouchDrawing = true
	cfg.Backend = toolmode.BackendResvg
	cfg.SaveDir = "/home/user/notes"
	cfg.Notify = Notify{Save: true, Export: false, Copy: true}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}
	if *cfg != *cfg2 {
		t.Errorf("Config mismatch:\n%+v\n%+v", cfg, cfg2)
	}
}

func TestLoaderPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv(EnvRenderer, "")

	l := NewLoader("1.0.0", "")
	if p := l.GetConfigPath(); p != "" {
		t.Fatalf("Expected no config, got %s", p)
	}
	cfg, err := l.Load()
	if err != nil || *cfg != *New() {
		t.Fatalf("Expected defaults, got %+v, %v", cfg, err)
	}

	xdg := filepath.Join(dir, "xdg", "penmode", "config.rc")
	if err := os.MkdirAll(filepath.Dir(xdg), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(xdg, []byte("devel = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if p := l.GetConfigPath(); p != xdg {
		t.Fatalf("Expected %s, got %s", xdg, p)
	}

	override := filepath.Join(dir, "override.rc")
	if err := os.WriteFile(override, []byte("devel = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l.OverridePath = override
	cfg, err = l.Load()
	if err != nil || cfg.Devel {
		t.Fatalf("Expected override file to win, got %+v, %v", cfg, err)
	}
}

func TestLoaderEnvRenderer(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvRenderer, "resvg")
	cfg, err := NewLoader("1.0.0", "").Load()
	if err != nil || cfg.Backend != toolmode.BackendResvg {
		t.Fatalf("Expected resvg from env, got %+v, %v", cfg, err)
	}
	t.Setenv(EnvRenderer, "skia")
	if _, err := NewLoader("1.0.0", "").Load(); !errors.Is(err, toolmode.ErrInvalidVariant) {
		t.Fatalf("Expected ErrInvalidVariant, got %v", err)
	}
}

func TestLoaderSave(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvRenderer, "")
	cfg := New()
	cfg.Righthanded = false
	path, err := NewLoader("1.0.0", "").Save(cfg)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if path != filepath.Join(dir, "penmode", "config.rc") {
		t.Fatalf("Unexpected save path %s", path)
	}
	loaded, err := NewLoader("1.0.0", "").Load()
	if err != nil || loaded.Righthanded {
		t.Fatalf("Expected saved settings to load, got %+v, %v", loaded, err)
	}
}
