package ports

import (
	"context"

	"dlc2ls/internal/domain"
)

// RemoteProject is the host-side container tasks are imported into
type RemoteProject struct {
	ID          int
	Title       string
	LabelConfig string
}

// Upload identifies a file stored on the annotation host
type Upload struct {
	ID         int
	StoredFile string
}

// AnnotationStore defines the capability surface the reconcilers need from
// the remote annotation host. Implementations: the Label Studio HTTP client
// and an in-memory fake for tests.
type AnnotationStore interface {
	// CheckConnection verifies the host is reachable with the configured
	// credential. A failure here is fatal to the run.
	CheckConnection(ctx context.Context) error

	// Project lifecycle
	CreateProject(ctx context.Context, title, labelConfig string) (RemoteProject, error)
	FetchProject(ctx context.Context, projectID int) (RemoteProject, error)
	ProjectLabelConfig(ctx context.Context, projectID int) (string, error)

	// UploadImage stores raw image bytes on the host and returns the upload
	// identity assigned to them.
	UploadImage(ctx context.Context, projectID int, data []byte, fileName string) (Upload, error)

	// CreateTask registers an uploaded image as a labelable task, optionally
	// carrying pre-existing keypoint results.
	CreateTask(ctx context.Context, projectID int, spec domain.TaskSpec) error

	// ListTasks returns every task of a project with its annotations
	ListTasks(ctx context.Context, projectID int) ([]domain.RemoteTask, error)
}
