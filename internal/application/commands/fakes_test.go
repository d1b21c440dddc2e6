package commands

import (
	"context"
	"fmt"

	"dlc2ls/internal/application"
	"dlc2ls/internal/domain"
	"dlc2ls/internal/ports"
)

// fakeStore is an in-memory AnnotationStore
type fakeStore struct {
	nextProjectID int
	nextUploadID  int

	projects map[int]ports.RemoteProject
	uploads  map[int]string            // upload id -> original file name
	tasks    map[int][]domain.TaskSpec // project id -> created tasks
	remote   map[int][]domain.RemoteTask

	connErr     error
	failUploads map[string]error // file name -> error to return from UploadImage
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextProjectID: 100,
		nextUploadID:  1000,
		projects:      make(map[int]ports.RemoteProject),
		uploads:       make(map[int]string),
		tasks:         make(map[int][]domain.TaskSpec),
		remote:        make(map[int][]domain.RemoteTask),
		failUploads:   make(map[string]error),
	}
}

func (s *fakeStore) CheckConnection(ctx context.Context) error {
	return s.connErr
}

func (s *fakeStore) CreateProject(ctx context.Context, title, labelConfig string) (ports.RemoteProject, error) {
	s.nextProjectID++
	p := ports.RemoteProject{ID: s.nextProjectID, Title: title, LabelConfig: labelConfig}
	s.projects[p.ID] = p
	return p, nil
}

func (s *fakeStore) FetchProject(ctx context.Context, projectID int) (ports.RemoteProject, error) {
	p, ok := s.projects[projectID]
	if !ok {
		return ports.RemoteProject{}, &application.APIError{Operation: "fetch project", Status: 404, Body: "not found"}
	}
	return p, nil
}

func (s *fakeStore) ProjectLabelConfig(ctx context.Context, projectID int) (string, error) {
	p, err := s.FetchProject(ctx, projectID)
	return p.LabelConfig, err
}

func (s *fakeStore) UploadImage(ctx context.Context, projectID int, data []byte, fileName string) (ports.Upload, error) {
	if err, ok := s.failUploads[fileName]; ok {
		return ports.Upload{}, err
	}
	s.nextUploadID++
	s.uploads[s.nextUploadID] = fileName
	return ports.Upload{ID: s.nextUploadID, StoredFile: fmt.Sprintf("stored-%d-%s", s.nextUploadID, fileName)}, nil
}

func (s *fakeStore) CreateTask(ctx context.Context, projectID int, spec domain.TaskSpec) error {
	s.tasks[projectID] = append(s.tasks[projectID], spec)
	return nil
}

func (s *fakeStore) ListTasks(ctx context.Context, projectID int) ([]domain.RemoteTask, error) {
	return s.remote[projectID], nil
}

// fakeRepo is an in-memory ProjectRepository
type fakeRepo struct {
	cfg          *domain.ProjectConfig
	records      []domain.LocalImageRecord
	scanWarnings []string
	scanErr      error

	width, height int

	manifests map[int]*domain.IdentityMap
	saves     int

	written map[string]*domain.AnnotationTable
}

func newFakeRepo(cfg *domain.ProjectConfig) *fakeRepo {
	return &fakeRepo{
		cfg:       cfg,
		width:     640,
		height:    480,
		manifests: make(map[int]*domain.IdentityMap),
		written:   make(map[string]*domain.AnnotationTable),
	}
}

func (r *fakeRepo) LoadConfig() (*domain.ProjectConfig, error) {
	return r.cfg, nil
}

func (r *fakeRepo) Scan(cfg *domain.ProjectConfig, filters []string) ([]domain.LocalImageRecord, []string, error) {
	if r.scanErr != nil {
		return nil, nil, r.scanErr
	}
	return r.records, r.scanWarnings, nil
}

func (r *fakeRepo) ReadImage(absolutePath string) ([]byte, int, int, error) {
	return []byte("png-bytes"), r.width, r.height, nil
}

func (r *fakeRepo) LoadIdentityMap(projectID int) (*domain.IdentityMap, error) {
	if m, ok := r.manifests[projectID]; ok {
		return m, nil
	}
	return domain.NewIdentityMap(), nil
}

func (r *fakeRepo) SaveIdentityMap(projectID int, m *domain.IdentityMap) error {
	r.manifests[projectID] = m
	r.saves++
	return nil
}

func (r *fakeRepo) WriteTable(table *domain.AnnotationTable) (string, error) {
	r.written[table.VideoGroup] = table
	return "", nil
}

func testConfig() *domain.ProjectConfig {
	return &domain.ProjectConfig{
		TaskName:  "openfield",
		Scorer:    "jane",
		Landmarks: []string{"nose", "left_ear", "right_ear"},
	}
}

func record(group, file string, annot map[string]domain.Point) domain.LocalImageRecord {
	return domain.LocalImageRecord{
		VideoGroup:         group,
		FileName:           file,
		AbsolutePath:       "/project/labeled-data/" + group + "/" + file,
		ExistingAnnotation: annot,
	}
}
