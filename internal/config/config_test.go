package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skirila/fbxbatch/internal/axis"
)

func writeJobFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "jobs.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write job file: %v", err)
	}
	return path
}

func writeSceneFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(`{"asset":{"version":"2.0"}}`), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "props.gltf")

	path := writeJobFile(t, dir, `
jobs:
  - scene: props.gltf
    select: ["Cube*", "Sphere"]
    prefix: SM_
    out: exports
    axis: unity
`)

	loader := NewLoader()
	file, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(file.Jobs) != 1 {
		t.Fatalf("Expected 1 job, got %d", len(file.Jobs))
	}
	job := file.Jobs[0]

	// Relative scene path is resolved against the job file directory.
	if !filepath.IsAbs(job.Scene) {
		t.Errorf("Scene path %q should be absolute", job.Scene)
	}
	if filepath.Base(job.Scene) != "props.gltf" {
		t.Errorf("Scene = %q, want props.gltf", job.Scene)
	}
	if len(job.Select) != 2 {
		t.Errorf("Select = %v, want 2 patterns", job.Select)
	}
	if job.Prefix != "SM_" {
		t.Errorf("Prefix = %q, want SM_", job.Prefix)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "scene.glb")

	path := writeJobFile(t, dir, `
jobs:
  - scene: scene.glb
    prefix: SM_
`)

	file, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	job := file.Jobs[0]

	if !job.IndexEnabled() {
		t.Error("IndexEnabled() = false, want true by default")
	}
	if !job.PerObjectEnabled() {
		t.Error("PerObjectEnabled() = false, want true by default")
	}
	if got := job.AxisPreset(); got != axis.Unity {
		t.Errorf("AxisPreset() = %v, want unity by default", got)
	}
}

func TestLoad_ExplicitFalseFlags(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "scene.glb")

	path := writeJobFile(t, dir, `
jobs:
  - scene: scene.glb
    prefix: SM_
    index: false
    per_object: false
    axis: maya
`)

	file, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	job := file.Jobs[0]

	if job.IndexEnabled() {
		t.Error("IndexEnabled() = true, want false")
	}
	if job.PerObjectEnabled() {
		t.Error("PerObjectEnabled() = true, want false")
	}
	if got := job.AxisPreset(); got != axis.Maya {
		t.Errorf("AxisPreset() = %v, want maya", got)
	}
}

func TestLoad_InvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "scene.gltf")

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no jobs",
			content: "jobs: []\n",
			wantErr: "at least one job",
		},
		{
			name: "missing scene",
			content: `
jobs:
  - prefix: SM_
`,
			wantErr: "scene is required",
		},
		{
			name: "scene does not exist",
			content: `
jobs:
  - scene: missing.gltf
    prefix: SM_
`,
			wantErr: "not found",
		},
		{
			name: "missing prefix",
			content: `
jobs:
  - scene: scene.gltf
`,
			wantErr: "prefix is required",
		},
		{
			name: "unknown axis",
			content: `
jobs:
  - scene: scene.gltf
    prefix: SM_
    axis: godot
`,
			wantErr: "axis",
		},
		{
			name:    "broken yaml",
			content: "jobs: [unclosed\n",
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeJobFile(t, dir, tt.content)
			_, err := NewLoader().Load(path)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read job file") {
		t.Errorf("Load() error = %q, want read failure", err)
	}
}
