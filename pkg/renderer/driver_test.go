package renderer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dlumiere/wisp-tracer/pkg/config"
)

const testSceneYAML = `
camera:
  look_from: [0, 0, 0]
  look_at: [0, 0, -1]
  up: [0, 1, 0]
  fov_y: 60
  width: 4
  height: 4
environment: [0.3, 0.4, 0.5]
materials:
  - name: white
    diffuse: [0.8, 0.8, 0.8]
lights:
  - type: ambient
    color: [0.2, 0.2, 0.2]
nodes: []
`

func writeTestScene(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte(testSceneYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDriverLoadRenderSave(t *testing.T) {
	cfg := config.Default()
	cfg.MinSamples = 4
	cfg.MaxSamples = 8
	cfg.TileSize = 4

	driver := NewDriver(cfg, nil)
	if err := driver.LoadScene(writeTestScene(t)); err != nil {
		t.Fatalf("LoadScene() error: %v", err)
	}
	if err := driver.Render(context.Background()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	dir := t.TempDir()
	for _, kind := range []string{"color", "depth", "samples"} {
		path := filepath.Join(dir, kind+".png")
		if err := driver.Save(kind, path); err != nil {
			t.Fatalf("Save(%q) error: %v", kind, err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("Save(%q) produced no file at %s", kind, path)
		}
	}
}

func TestDriverRenderWithWhittedIntegrator(t *testing.T) {
	cfg := config.Default()
	cfg.MinSamples = 1
	cfg.MaxSamples = 2
	cfg.TileSize = 4
	cfg.Integrator = config.IntegratorWhitted

	driver := NewDriver(cfg, nil)
	if err := driver.LoadScene(writeTestScene(t)); err != nil {
		t.Fatalf("LoadScene() error: %v", err)
	}
	if err := driver.Render(context.Background()); err != nil {
		t.Fatalf("Render() error with whitted integrator: %v", err)
	}
}

func TestDriverRenderRejectsUnknownIntegrator(t *testing.T) {
	cfg := config.Default()
	cfg.Integrator = "not-a-real-integrator"

	driver := NewDriver(cfg, nil)
	if err := driver.LoadScene(writeTestScene(t)); err != nil {
		t.Fatalf("LoadScene() error: %v", err)
	}
	if err := driver.Render(context.Background()); err == nil {
		t.Error("expected Render() to reject an unknown integrator")
	}
}

func TestDriverRenderWithoutSceneFails(t *testing.T) {
	driver := NewDriver(config.Default(), nil)
	if err := driver.Render(context.Background()); err == nil {
		t.Error("expected Render() to fail without a loaded scene")
	}
}

func TestDriverSaveUnsupportedKindFails(t *testing.T) {
	cfg := config.Default()
	cfg.MinSamples, cfg.MaxSamples, cfg.TileSize = 2, 4, 4
	driver := NewDriver(cfg, nil)
	if err := driver.LoadScene(writeTestScene(t)); err != nil {
		t.Fatal(err)
	}
	if err := driver.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := driver.Save("bogus", filepath.Join(t.TempDir(), "out.png")); err == nil {
		t.Error("expected Save() to reject an unsupported kind")
	}
}
