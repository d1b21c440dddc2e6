package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dlc2ls/internal/domain"
)

func testProjectConfig() *domain.ProjectConfig {
	return &domain.ProjectConfig{
		TaskName:  "openfield",
		Scorer:    "jane",
		Landmarks: []string{"nose", "tail_base"},
	}
}

func setupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "dlc2ls-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	config := "Task: openfield\nscorer: jane\nbodyparts:\n- nose\n- tail_base\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(config), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return tmpDir
}

func addImage(t *testing.T, root, group, name string) {
	t.Helper()
	dir := filepath.Join(root, "labeled-data", group)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create group dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte("not-a-real-png"), 0644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
}

func TestScanMissingImagesRoot(t *testing.T) {
	root := setupTestProject(t)
	repo := NewRepository(root)

	_, _, err := repo.Scan(testProjectConfig(), nil)
	if !errors.Is(err, domain.ErrProjectRootNotFound) {
		t.Fatalf("expected ErrProjectRootNotFound, got %v", err)
	}
}

func TestScanEnumeratesSorted(t *testing.T) {
	root := setupTestProject(t)
	addImage(t, root, "vid2", "b.png")
	addImage(t, root, "vid1", "z.png")
	addImage(t, root, "vid1", "a.png")
	addImage(t, root, "vid1", "notes.txt") // non-image, ignored

	repo := NewRepository(root)
	records, warnings, err := repo.Scan(testProjectConfig(), nil)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	var got []string
	for _, r := range records {
		got = append(got, r.RelPath())
	}
	want := []string{"vid1/a.png", "vid1/z.png", "vid2/b.png"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("records = %v, want %v", got, want)
	}
}

func TestScanFilterPatterns(t *testing.T) {
	root := setupTestProject(t)
	addImage(t, root, "vid1", "a_front.png")
	addImage(t, root, "vid1", "a_side.png")
	addImage(t, root, "vid2", "b_front.png")

	tests := []struct {
		name    string
		filters []string
		want    []string
	}{
		{
			name:    "suffix pattern crosses group directories",
			filters: []string{"*_front.png"},
			want:    []string{"vid1/a_front.png", "vid2/b_front.png"},
		},
		{
			name:    "patterns OR together",
			filters: []string{"vid1/*_side.png", "vid2/*"},
			want:    []string{"vid1/a_side.png", "vid2/b_front.png"},
		},
		{
			name:    "question mark matches a single character",
			filters: []string{"vid1/a_fron?.png"},
			want:    []string{"vid1/a_front.png"},
		},
		{
			name:    "character class",
			filters: []string{"vid[12]/a_front.png"},
			want:    []string{"vid1/a_front.png"},
		},
		{
			name:    "negated character class",
			filters: []string{"vid[!1]/*.png"},
			want:    []string{"vid2/b_front.png"},
		},
		{
			name:    "no match",
			filters: []string{"*.jpg"},
			want:    nil,
		},
	}

	repo := NewRepository(root)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, _, err := repo.Scan(testProjectConfig(), tt.filters)
			if err != nil {
				t.Fatalf("scan failed: %v", err)
			}
			var got []string
			for _, r := range records {
				got = append(got, r.RelPath())
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("records = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanAttachesExistingAnnotations(t *testing.T) {
	root := setupTestProject(t)
	addImage(t, root, "vid1", "img001.png")
	addImage(t, root, "vid1", "img002.png")

	table := strings.Join([]string{
		"scorer,jane,jane,jane,jane",
		"bodyparts,nose,nose,tail_base,tail_base",
		"coords,x,y,x,y",
		"labeled-data/vid1/img001.png,12.5,30.25,,",
	}, "\n") + "\n"
	tablePath := filepath.Join(root, "labeled-data", "vid1", "CollectedData_jane.csv")
	if err := os.WriteFile(tablePath, []byte(table), 0644); err != nil {
		t.Fatalf("failed to write table: %v", err)
	}

	repo := NewRepository(root)
	records, warnings, err := repo.Scan(testProjectConfig(), nil)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	annotated := records[0]
	if annotated.FileName != "img001.png" || !annotated.HasAnnotation() {
		t.Fatalf("img001.png should carry its annotation row: %+v", annotated)
	}
	nose := annotated.ExistingAnnotation["nose"]
	if nose.X != 12.5 || nose.Y != 30.25 {
		t.Errorf("nose = %v, want (12.5, 30.25)", nose)
	}
	if tail, ok := annotated.ExistingAnnotation["tail_base"]; ok && !tail.Missing() {
		t.Errorf("tail_base should be missing, got %v", tail)
	}

	if records[1].HasAnnotation() {
		t.Error("img002.png has no table row and should carry no annotation")
	}
}

func TestScanMalformedTableWarns(t *testing.T) {
	root := setupTestProject(t)
	addImage(t, root, "vid1", "img001.png")

	tablePath := filepath.Join(root, "labeled-data", "vid1", "CollectedData_jane.csv")
	if err := os.WriteFile(tablePath, []byte("garbage\n"), 0644); err != nil {
		t.Fatalf("failed to write table: %v", err)
	}

	repo := NewRepository(root)
	records, warnings, err := repo.Scan(testProjectConfig(), nil)
	if err != nil {
		t.Fatalf("a malformed table must not abort the scan: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if len(records) != 1 || records[0].ExistingAnnotation != nil {
		t.Errorf("group should be scanned without annotations, got %+v", records)
	}
}
