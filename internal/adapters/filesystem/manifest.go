package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"dlc2ls/internal/domain"
)

// manifestEntry is the on-disk form of one identity map entry
type manifestEntry struct {
	File       string `yaml:"file"`
	UploadID   int    `yaml:"upload_id"`
	StoredFile string `yaml:"stored_file"`
}

func (r *Repository) manifestPath(projectID int) string {
	return filepath.Join(r.projectRoot, fmt.Sprintf("label-studio-tasks-project-%d.yaml", projectID))
}

// LoadIdentityMap reads the upload manifest for a remote project. A missing
// manifest is an empty map, not an error.
func (r *Repository) LoadIdentityMap(projectID int) (*domain.IdentityMap, error) {
	m := domain.NewIdentityMap()

	raw, err := os.ReadFile(r.manifestPath(projectID))
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("failed to read upload manifest: %w", err)
	}

	var groups map[string][]manifestEntry
	if err := yaml.Unmarshal(raw, &groups); err != nil {
		return nil, fmt.Errorf("failed to parse upload manifest: %w", err)
	}

	for group, entries := range groups {
		for _, e := range entries {
			err := m.Add(domain.IdentityEntry{
				VideoGroup: group,
				FileName:   e.File,
				UploadID:   e.UploadID,
				RemoteFile: e.StoredFile,
			})
			if err != nil {
				return nil, fmt.Errorf("corrupt upload manifest: %w", err)
			}
		}
	}

	return m, nil
}

// SaveIdentityMap writes the manifest atomically: the new content goes to a
// temp file in the same directory which is then renamed over the target, so
// a crash mid-write can never corrupt the previous valid manifest. Output is
// keyed by video group with entries sorted by file name, keeping the file
// diffable between runs.
func (r *Repository) SaveIdentityMap(projectID int, m *domain.IdentityMap) error {
	groups := make(map[string][]manifestEntry)
	for _, entry := range m.Entries() {
		groups[entry.VideoGroup] = append(groups[entry.VideoGroup], manifestEntry{
			File:       entry.FileName,
			UploadID:   entry.UploadID,
			StoredFile: entry.RemoteFile,
		})
	}

	raw, err := yaml.Marshal(groups)
	if err != nil {
		return fmt.Errorf("failed to marshal upload manifest: %w", err)
	}

	dest := r.manifestPath(projectID)
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp manifest: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to replace upload manifest: %w", err)
	}
	return nil
}
