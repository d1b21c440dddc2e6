package ports

import "dlc2ls/internal/domain"

// ProjectRepository defines the interface for local pose-project storage:
// the image tree under labeled-data/, the per-group annotation tables and
// the persisted identity map.
type ProjectRepository interface {
	// LoadConfig reads the project's configuration file
	LoadConfig() (*domain.ProjectConfig, error)

	// Scan enumerates images per video group, attaching any existing local
	// annotation rows. Filters are fnmatch-style globs OR-ed over the
	// group/file relative path; empty means everything. Non-fatal problems
	// (e.g. an unreadable group table) come back as warnings.
	Scan(cfg *domain.ProjectConfig, filters []string) ([]domain.LocalImageRecord, []string, error)

	// ReadImage loads an image file and reports its pixel dimensions
	ReadImage(absolutePath string) (data []byte, width, height int, err error)

	// Identity map persistence, one manifest per remote project.
	// Loading a manifest that does not exist yields an empty map.
	LoadIdentityMap(projectID int) (*domain.IdentityMap, error)
	SaveIdentityMap(projectID int, m *domain.IdentityMap) error

	// WriteTable persists one video group's annotation table, renaming any
	// existing table file to a backup path first. It returns the backup
	// path, or "" when there was nothing to back up.
	WriteTable(table *domain.AnnotationTable) (backupPath string, err error)
}
