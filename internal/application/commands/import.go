package commands

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"dlc2ls/internal/application"
	"dlc2ls/internal/domain"
	"dlc2ls/internal/ports"
)

// ImportPlan is the pure partition of scanned records for one import run
type ImportPlan struct {
	CreateProject bool
	Upload        []domain.LocalImageRecord
	Attach        []domain.LocalImageRecord
	Skipped       int
}

// PlanImport decides what an import run has to do. With update false the
// project is being created fresh and every record is uploaded. With update
// true, records whose (videoGroup, fileName) key already has a remote
// identity are skipped — never re-uploaded, even if local content changed.
// Records carrying an existing annotation are additionally queued for
// annotation attachment.
func PlanImport(records []domain.LocalImageRecord, ids *domain.IdentityMap, update bool) ImportPlan {
	plan := ImportPlan{CreateProject: !update}

	for _, rec := range records {
		if update {
			if _, ok := ids.LookupLocal(rec.VideoGroup, rec.FileName); ok {
				plan.Skipped++
				continue
			}
		}
		plan.Upload = append(plan.Upload, rec)
		if rec.HasAnnotation() {
			plan.Attach = append(plan.Attach, rec)
		}
	}

	return plan
}

// ImportResult contains the outcome of an import run
type ImportResult struct {
	Project ports.RemoteProject
	Report  application.RunReport
}

// ImportCommand uploads a local project's images into a remote annotation
// project, attaching any existing local annotations, and records every new
// upload in the identity map.
type ImportCommand struct {
	store    ports.AnnotationStore
	repo     ports.ProjectRepository
	progress ports.ProgressReporter

	// UpdateProject, when > 0, imports into this existing project and only
	// uploads images the identity map has not seen.
	UpdateProject int
	Filters       []string
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(store ports.AnnotationStore, repo ports.ProjectRepository, progress ports.ProgressReporter) *ImportCommand {
	if progress == nil {
		progress = ports.NoopProgress{}
	}
	return &ImportCommand{store: store, repo: repo, progress: progress}
}

// Validate checks if the import operation is valid
func (c *ImportCommand) Validate() error {
	if c.store == nil {
		return &application.ValidationError{Field: "store", Message: "annotation store is required"}
	}
	if c.repo == nil {
		return &application.ValidationError{Field: "repo", Message: "project repository is required"}
	}
	if c.UpdateProject < 0 {
		return &application.ValidationError{Field: "updateProject", Message: "project id must be positive"}
	}
	return nil
}

// Execute runs the import. On a connection-level failure mid-run the error
// is returned together with the partial result; identity map progress is
// persisted before returning in every case that reaches the upload loop.
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg, err := c.repo.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}
	schema, err := cfg.Schema()
	if err != nil {
		return nil, err
	}

	if err := c.store.CheckConnection(ctx); err != nil {
		return nil, err
	}

	result := &ImportResult{}

	update := c.UpdateProject > 0
	if update {
		result.Project, err = c.store.FetchProject(ctx, c.UpdateProject)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch project %d: %w", c.UpdateProject, err)
		}
		log.WithFields(log.Fields{"project": result.Project.ID, "title": result.Project.Title}).
			Info("updating existing project")
	} else {
		result.Project, err = c.store.CreateProject(ctx, cfg.TaskName, domain.BuildLabelConfig(schema))
		if err != nil {
			return nil, fmt.Errorf("failed to create project: %w", err)
		}
		log.WithFields(log.Fields{"project": result.Project.ID, "title": result.Project.Title}).
			Info("created project")
	}

	records, warnings, err := c.repo.Scan(cfg, c.Filters)
	if err != nil {
		return nil, err
	}
	result.Report.Warnings = warnings
	log.WithField("images", len(records)).Info("discovered images in local project")

	ids, err := c.repo.LoadIdentityMap(result.Project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity map: %w", err)
	}

	plan := PlanImport(records, ids, update)
	result.Report.Skipped = plan.Skipped

	var connErr error
	c.progress.Start("uploading", len(plan.Upload))
	for _, rec := range plan.Upload {
		c.progress.Advance(rec.RelPath())

		if err := c.importRecord(ctx, result.Project.ID, rec, schema, ids, &result.Report); err != nil {
			var ce *application.ConnectionError
			if errors.As(err, &ce) {
				connErr = err
				break
			}
			result.Report.Failed++
			result.Report.Warn("%s: %v", rec.RelPath(), err)
		}
	}
	c.progress.Done()

	// Partial progress is preserved, not rolled back: every upload that
	// succeeded is persisted even when the loop aborted early.
	if err := c.repo.SaveIdentityMap(result.Project.ID, ids); err != nil {
		return result, fmt.Errorf("failed to save identity map: %w", err)
	}

	if connErr != nil {
		return result, connErr
	}
	return result, nil
}

// importRecord uploads one image, registers its identity and creates its
// task. A task-creation failure after a successful upload keeps the identity
// mapping: the image is on the host and must not be uploaded again.
func (c *ImportCommand) importRecord(ctx context.Context, projectID int, rec domain.LocalImageRecord,
	schema *domain.LandmarkSchema, ids *domain.IdentityMap, report *application.RunReport) error {

	data, width, height, err := c.repo.ReadImage(rec.AbsolutePath)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	up, err := c.store.UploadImage(ctx, projectID, data, rec.FileName)
	if err != nil {
		return err
	}

	entry := domain.IdentityEntry{
		VideoGroup: rec.VideoGroup,
		FileName:   rec.FileName,
		UploadID:   up.ID,
		RemoteFile: up.StoredFile,
	}
	if err := ids.Add(entry); err != nil {
		report.Warn("%v", err)
	}

	spec := domain.TaskSpec{
		UploadID:     up.ID,
		StoredFile:   up.StoredFile,
		OriginalFile: "labeled-data/" + rec.RelPath(),
	}
	if rec.HasAnnotation() {
		spec.Points, err = annotationPoints(rec, schema, width, height)
		if err != nil {
			return err
		}
	}

	if err := c.store.CreateTask(ctx, projectID, spec); err != nil {
		return fmt.Errorf("image uploaded but task creation failed: %w", err)
	}

	report.Created++
	return nil
}

// annotationPoints converts a record's pixel-space annotation to the host's
// percentage coordinates, in schema order. Missing landmarks are left out.
func annotationPoints(rec domain.LocalImageRecord, schema *domain.LandmarkSchema, width, height int) ([]domain.RemotePoint, error) {
	var points []domain.RemotePoint

	for _, name := range schema.Names() {
		p, ok := rec.ExistingAnnotation[name]
		if !ok || p.Missing() {
			continue
		}
		xPct, yPct, err := domain.ToRemote(p.X, p.Y, width, height)
		if err != nil {
			return nil, err
		}
		points = append(points, domain.RemotePoint{
			Label:          name,
			XPct:           xPct,
			YPct:           yPct,
			OriginalWidth:  width,
			OriginalHeight: height,
		})
	}

	return points, nil
}
