package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"dlc2ls/internal/domain"
)

const (
	imagesDirName  = "labeled-data"
	configFileName = "config.yaml"
)

// Repository implements ports.ProjectRepository on a pose-project directory
// tree: config.yaml at the root, images and collected-data tables under
// labeled-data/<video>/.
type Repository struct {
	projectRoot string
}

// NewRepository creates a new filesystem repository
func NewRepository(projectRoot string) *Repository {
	// Expand ~ to home directory
	if strings.HasPrefix(projectRoot, "~") {
		home, _ := os.UserHomeDir()
		projectRoot = filepath.Join(home, projectRoot[1:])
	}
	return &Repository{projectRoot: projectRoot}
}

// Root returns the project root path
func (r *Repository) Root() string {
	return r.projectRoot
}

func (r *Repository) imagesRoot() string {
	return filepath.Join(r.projectRoot, imagesDirName)
}

func (r *Repository) groupDir(videoGroup string) string {
	return filepath.Join(r.imagesRoot(), videoGroup)
}

// LoadConfig reads the project's config.yaml
func (r *Repository) LoadConfig() (*domain.ProjectConfig, error) {
	raw, err := os.ReadFile(filepath.Join(r.projectRoot, configFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}

	var parsed struct {
		Task      string   `yaml:"Task"`
		Scorer    string   `yaml:"scorer"`
		Bodyparts []string `yaml:"bodyparts"`
	}
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse project config: %w", err)
	}
	if parsed.Task == "" {
		return nil, fmt.Errorf("project config has no Task name")
	}
	if parsed.Scorer == "" {
		return nil, fmt.Errorf("project config has no scorer")
	}

	return &domain.ProjectConfig{
		TaskName:  parsed.Task,
		Scorer:    parsed.Scorer,
		Landmarks: parsed.Bodyparts,
	}, nil
}
