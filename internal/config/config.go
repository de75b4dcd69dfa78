package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skirila/fbxbatch/internal/axis"
	"gopkg.in/yaml.v3"
)

// File is the top level of a YAML job file.
type File struct {
	Jobs []Job `yaml:"jobs"`
}

// Job describes one rename-and-export run.
type Job struct {
	Scene     string   `yaml:"scene"`
	Select    []string `yaml:"select"`
	Prefix    string   `yaml:"prefix"`
	AddIndex  *bool    `yaml:"index"`
	PerObject *bool    `yaml:"per_object"`
	Out       string   `yaml:"out"`
	Filename  string   `yaml:"filename"`
	Axis      string   `yaml:"axis"`
}

// IndexEnabled reports whether the numeric index is appended (default true).
func (j *Job) IndexEnabled() bool {
	return j.AddIndex == nil || *j.AddIndex
}

// PerObjectEnabled reports whether each object gets its own file (default true).
func (j *Job) PerObjectEnabled() bool {
	return j.PerObject == nil || *j.PerObject
}

// AxisPreset returns the parsed axis preset, falling back to the default.
func (j *Job) AxisPreset() axis.Preset {
	if j.Axis == "" {
		return axis.Default
	}
	p, err := axis.Parse(j.Axis)
	if err != nil {
		return axis.Default
	}
	return p
}

// Loader handles loading and validating YAML job files
type Loader struct{}

// NewLoader creates a new job file loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses a YAML job file
func (l *Loader) Load(configPath string) (*File, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := l.Validate(&file, configPath); err != nil {
		return nil, fmt.Errorf("invalid job file: %w", err)
	}

	// Convert relative scene paths to absolute paths (relative to the job file)
	configDir := filepath.Dir(configPath)
	absConfigDir, err := filepath.Abs(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path of job file directory: %w", err)
	}
	for i := range file.Jobs {
		job := &file.Jobs[i]
		if !filepath.IsAbs(job.Scene) {
			job.Scene = filepath.Join(absConfigDir, job.Scene)
		}
	}

	return &file, nil
}

// Validate checks if the job file is valid
func (l *Loader) Validate(file *File, configPath string) error {
	if len(file.Jobs) == 0 {
		return fmt.Errorf("at least one job must be defined")
	}

	configDir := filepath.Dir(configPath)

	for i, job := range file.Jobs {
		if err := l.validateJob(job, i, configDir); err != nil {
			return err
		}
	}

	return nil
}

// validateJob validates a single job entry
func (l *Loader) validateJob(job Job, index int, configDir string) error {
	if job.Scene == "" {
		return fmt.Errorf("job %d: scene is required", index+1)
	}

	// Check the scene file exists (handle relative paths)
	scenePath := job.Scene
	if !filepath.IsAbs(scenePath) {
		scenePath = filepath.Join(configDir, scenePath)
	}
	if _, err := os.Stat(scenePath); err != nil {
		return fmt.Errorf("job %d: scene file not found: %s", index+1, job.Scene)
	}

	if job.Prefix == "" {
		return fmt.Errorf("job %d: prefix is required", index+1)
	}

	if job.Axis != "" {
		if _, err := axis.Parse(job.Axis); err != nil {
			return fmt.Errorf("job %d: %w", index+1, err)
		}
	}

	return nil
}
