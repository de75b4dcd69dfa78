package preconditions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateSceneFile checks that the scene file exists, is a regular file,
// and carries a supported extension.
func ValidateSceneFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access scene file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a scene file", path)
	}
	if !isSceneFile(path) {
		return fmt.Errorf("%s is not a supported scene file (must end in .gltf or .glb)", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot read scene file %s: %w", path, err)
	}
	file.Close()

	return nil
}

func isSceneFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return true
	}
	return false
}

// ValidateConfigFile checks that the job file exists and looks like YAML.
func ValidateConfigFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access job file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a job file", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return nil
	}
	return fmt.Errorf("%s is not a YAML job file (must end in .yaml or .yml)", path)
}
