package commands

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"dlc2ls/internal/application"
	"dlc2ls/internal/domain"
	"dlc2ls/internal/ports"
)

// PlanExport maps remote tasks back into per-video-group annotation tables.
// Tasks whose upload id is unknown to the identity map were not imported
// through this tool; they are skipped with a warning and never abort the
// rest of the export.
func PlanExport(tasks []domain.RemoteTask, ids *domain.IdentityMap,
	schema *domain.LandmarkSchema, scorer string) (map[string]*domain.AnnotationTable, []string) {

	tables := make(map[string]*domain.AnnotationTable)
	var warnings []string

	for _, task := range tasks {
		entry, ok := ids.LookupUpload(task.UploadID)
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"%v: task %d (upload %d, file %q) was not imported through this tool, skipping",
				domain.ErrUnresolvedIdentity, task.ID, task.UploadID, task.StoredFile))
			continue
		}

		parsed, warns := domain.ParsePoints(task.Points, schema)
		warnings = append(warnings, warns...)
		if len(parsed) == 0 {
			continue
		}

		table, ok := tables[entry.VideoGroup]
		if !ok {
			table = domain.NewAnnotationTable(scorer, entry.VideoGroup, schema)
			tables[entry.VideoGroup] = table
		}

		for label, pt := range parsed {
			x, y, err := domain.FromRemote(pt.XPct, pt.YPct, pt.OriginalWidth, pt.OriginalHeight)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf(
					"task %d: landmark %q has invalid image dimensions %dx%d, skipping",
					task.ID, label, pt.OriginalWidth, pt.OriginalHeight))
				continue
			}
			table.SetPoint(entry.FileName, label, domain.Point{X: x, Y: y})
		}
	}

	return tables, warnings
}

// ExportResult contains the outcome of an export run
type ExportResult struct {
	Project ports.RemoteProject
	Tables  map[string]*domain.AnnotationTable
	Report  application.RunReport
}

// ExportCommand pulls a remote project's annotated tasks back into the
// local per-video annotation tables, backing up any table it replaces.
type ExportCommand struct {
	store    ports.AnnotationStore
	repo     ports.ProjectRepository
	progress ports.ProgressReporter

	ProjectID int
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(store ports.AnnotationStore, repo ports.ProjectRepository, progress ports.ProgressReporter) *ExportCommand {
	if progress == nil {
		progress = ports.NoopProgress{}
	}
	return &ExportCommand{store: store, repo: repo, progress: progress}
}

// Validate checks if the export operation is valid
func (c *ExportCommand) Validate() error {
	if c.store == nil {
		return &application.ValidationError{Field: "store", Message: "annotation store is required"}
	}
	if c.repo == nil {
		return &application.ValidationError{Field: "repo", Message: "project repository is required"}
	}
	if c.ProjectID <= 0 {
		return &application.ValidationError{Field: "projectID", Message: "project id must be positive"}
	}
	return nil
}

// Execute runs the export
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
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

	result := &ExportResult{}
	result.Project, err = c.store.FetchProject(ctx, c.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project %d: %w", c.ProjectID, err)
	}

	tasks, err := c.store.ListTasks(ctx, c.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	log.WithFields(log.Fields{"project": result.Project.ID, "tasks": len(tasks)}).
		Info("fetched tasks from project")

	ids, err := c.repo.LoadIdentityMap(c.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity map: %w", err)
	}

	result.Tables, result.Report.Warnings = PlanExport(tasks, ids, schema, cfg.Scorer)

	groups := make([]string, 0, len(result.Tables))
	for group := range result.Tables {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	c.progress.Start("writing tables", len(groups))
	for _, group := range groups {
		c.progress.Advance(group)

		backup, err := c.repo.WriteTable(result.Tables[group])
		if err != nil {
			result.Report.Failed++
			result.Report.Warn("failed to write table for %s: %v", group, err)
			continue
		}
		if backup != "" {
			log.WithFields(log.Fields{"group": group, "backup": backup}).
				Info("backed up existing table")
		}
		result.Report.Created++
	}
	c.progress.Done()

	return result, nil
}
