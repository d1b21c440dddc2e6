package commands

import (
	"context"
	"errors"
	"testing"

	"dlc2ls/internal/application"
	"dlc2ls/internal/domain"
)

func TestPlanImport(t *testing.T) {
	records := []domain.LocalImageRecord{
		record("vid1", "a.png", nil),
		record("vid1", "b.png", map[string]domain.Point{"nose": {X: 1, Y: 2}}),
		record("vid2", "c.png", nil),
	}

	ids := domain.NewIdentityMap()
	if err := ids.Add(domain.IdentityEntry{VideoGroup: "vid1", FileName: "a.png", UploadID: 9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name        string
		update      bool
		wantUpload  int
		wantSkipped int
		wantCreate  bool
	}{
		{
			name:       "fresh import uploads everything",
			update:     false,
			wantUpload: 3,
			wantCreate: true,
		},
		{
			name:        "update skips already-mapped records",
			update:      true,
			wantUpload:  2,
			wantSkipped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanImport(records, ids, tt.update)

			if len(plan.Upload) != tt.wantUpload {
				t.Errorf("len(Upload) = %d, want %d", len(plan.Upload), tt.wantUpload)
			}
			if plan.Skipped != tt.wantSkipped {
				t.Errorf("Skipped = %d, want %d", plan.Skipped, tt.wantSkipped)
			}
			if plan.CreateProject != tt.wantCreate {
				t.Errorf("CreateProject = %v, want %v", plan.CreateProject, tt.wantCreate)
			}
			// only the annotated record is queued for attachment
			if len(plan.Attach) != 1 || plan.Attach[0].FileName != "b.png" {
				t.Errorf("Attach = %v, want just b.png", plan.Attach)
			}
		})
	}
}

func TestImportIsIdempotent(t *testing.T) {
	store := newFakeStore()
	repo := newFakeRepo(testConfig())
	repo.records = []domain.LocalImageRecord{
		record("vid1", "a.png", nil),
		record("vid1", "b.png", nil),
	}

	first := NewImportCommand(store, repo, nil)
	res1, err := first.Execute(context.Background())
	if err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	if res1.Report.Created != 2 {
		t.Fatalf("first run Created = %d, want 2", res1.Report.Created)
	}

	// Second run in update mode against the unchanged directory
	second := NewImportCommand(store, repo, nil)
	second.UpdateProject = res1.Project.ID
	res2, err := second.Execute(context.Background())
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if res2.Report.Created != 0 {
		t.Errorf("second run Created = %d, want 0", res2.Report.Created)
	}
	if res2.Report.Skipped != 2 {
		t.Errorf("second run Skipped = %d, want 2", res2.Report.Skipped)
	}
	if len(store.uploads) != 2 {
		t.Errorf("store holds %d uploads, want 2", len(store.uploads))
	}
}

func TestImportAttachesExistingAnnotations(t *testing.T) {
	store := newFakeStore()
	repo := newFakeRepo(testConfig())
	repo.width, repo.height = 640, 480
	repo.records = []domain.LocalImageRecord{
		record("vid1", "a.png", map[string]domain.Point{
			"nose":     {X: 320, Y: 240},
			"left_ear": domain.MissingPoint(),
		}),
	}

	cmd := NewImportCommand(store, repo, nil)
	res, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	tasks := store.tasks[res.Project.ID]
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	points := tasks[0].Points
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1 (missing landmarks are not attached): %v", len(points), points)
	}
	if points[0].Label != "nose" || points[0].XPct != 50 || points[0].YPct != 50 {
		t.Errorf("point = %+v, want nose at (50, 50) percent", points[0])
	}
	if points[0].OriginalWidth != 640 || points[0].OriginalHeight != 480 {
		t.Errorf("point dimensions = %dx%d, want 640x480", points[0].OriginalWidth, points[0].OriginalHeight)
	}
}

func TestImportIsolatesPerItemFailures(t *testing.T) {
	store := newFakeStore()
	store.failUploads["b.png"] = &application.APIError{Operation: "upload", Status: 500, Body: "boom"}

	repo := newFakeRepo(testConfig())
	repo.records = []domain.LocalImageRecord{
		record("vid1", "a.png", nil),
		record("vid1", "b.png", nil),
		record("vid1", "c.png", nil),
	}

	cmd := NewImportCommand(store, repo, nil)
	res, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if res.Report.Created != 2 {
		t.Errorf("Created = %d, want 2", res.Report.Created)
	}
	if res.Report.Failed != 1 {
		t.Errorf("Failed = %d, want 1", res.Report.Failed)
	}
	if len(res.Report.Warnings) == 0 {
		t.Error("expected a warning for the failed upload")
	}

	// The failed image stays unmapped so a later run retries it
	saved := repo.manifests[res.Project.ID]
	if _, ok := saved.LookupLocal("vid1", "b.png"); ok {
		t.Error("failed upload must not enter the identity map")
	}
}

func TestImportPersistsProgressOnConnectionFailure(t *testing.T) {
	store := newFakeStore()
	store.failUploads["b.png"] = &application.ConnectionError{Endpoint: "http://ls", Err: errors.New("dial tcp: refused")}

	repo := newFakeRepo(testConfig())
	repo.records = []domain.LocalImageRecord{
		record("vid1", "a.png", nil),
		record("vid1", "b.png", nil),
		record("vid1", "c.png", nil),
	}

	cmd := NewImportCommand(store, repo, nil)
	res, err := cmd.Execute(context.Background())

	var ce *application.ConnectionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConnectionError, got %v", err)
	}
	if res == nil {
		t.Fatal("partial result must be returned alongside the connection error")
	}
	if res.Report.Created != 1 {
		t.Errorf("Created = %d, want 1 (run aborts at the failure)", res.Report.Created)
	}

	// Identity map progress was flushed before aborting
	if repo.saves != 1 {
		t.Fatalf("identity map saved %d times, want 1", repo.saves)
	}
	saved := repo.manifests[res.Project.ID]
	if _, ok := saved.LookupLocal("vid1", "a.png"); !ok {
		t.Error("successful upload missing from the persisted identity map")
	}
	if saved.Len() != 1 {
		t.Errorf("saved map has %d entries, want 1", saved.Len())
	}
}

func TestImportValidate(t *testing.T) {
	cmd := NewImportCommand(nil, nil, nil)
	if err := cmd.Validate(); err == nil {
		t.Error("expected validation error for missing store")
	}

	cmd = NewImportCommand(newFakeStore(), newFakeRepo(testConfig()), nil)
	cmd.UpdateProject = -1
	if err := cmd.Validate(); err == nil {
		t.Error("expected validation error for negative project id")
	}
}
