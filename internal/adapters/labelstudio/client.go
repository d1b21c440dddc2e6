package labelstudio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"dlc2ls/internal/application"
	"dlc2ls/internal/domain"
	"dlc2ls/internal/ports"
)

const (
	keypointType = "keypointlabels"
	fromName     = "keypoint-label"
	toName       = "image"

	// stroke width the host renders for imported keypoints
	keypointWidth = 0.2666
)

// Client implements ports.AnnotationStore against the Label Studio REST API
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client

	userID int // current user, fetched lazily for annotation attribution
}

// NewClient creates a new Label Studio client
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// do executes one API request. Network-level failures surface as
// *application.ConnectionError (fatal to the run); HTTP error statuses
// surface as *application.APIError (isolated per record).
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType, operation string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &application.ConnectionError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &application.APIError{Operation: operation, Status: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: failed to decode response: %w", operation, err)
		}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out interface{}, operation string) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: failed to marshal request: %w", operation, err)
	}
	return c.do(ctx, method, path, bytes.NewReader(raw), "application/json", operation, out)
}

// CheckConnection verifies the host is reachable with the configured key
func (c *Client) CheckConnection(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/version", nil, "", "check connection", nil)
}

// CreateProject creates a project and installs its labeling configuration
func (c *Client) CreateProject(ctx context.Context, title, labelConfig string) (ports.RemoteProject, error) {
	var project projectJSON
	payload := createProjectJSON{Title: title, LabelConfig: labelConfig}
	if err := c.doJSON(ctx, http.MethodPost, "/api/projects", payload, &project, "create project"); err != nil {
		return ports.RemoteProject{}, err
	}
	return ports.RemoteProject{ID: project.ID, Title: project.Title, LabelConfig: project.LabelConfig}, nil
}

// FetchProject returns an existing project
func (c *Client) FetchProject(ctx context.Context, projectID int) (ports.RemoteProject, error) {
	var project projectJSON
	path := fmt.Sprintf("/api/projects/%d", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, "", "fetch project", &project); err != nil {
		return ports.RemoteProject{}, err
	}
	return ports.RemoteProject{ID: project.ID, Title: project.Title, LabelConfig: project.LabelConfig}, nil
}

// ProjectLabelConfig returns a project's labeling configuration document
func (c *Client) ProjectLabelConfig(ctx context.Context, projectID int) (string, error) {
	project, err := c.FetchProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	return project.LabelConfig, nil
}

// UploadImage stores image bytes on the host without committing them as a
// task, then resolves the stored file name assigned to the upload.
func (c *Client) UploadImage(ctx context.Context, projectID int, data []byte, fileName string) (ports.Upload, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return ports.Upload{}, err
	}
	if _, err := part.Write(data); err != nil {
		return ports.Upload{}, err
	}
	if err := form.Close(); err != nil {
		return ports.Upload{}, err
	}

	var imported importResponseJSON
	path := fmt.Sprintf("/api/projects/%d/import?commit_to_project=false", projectID)
	if err := c.do(ctx, http.MethodPost, path, &body, form.FormDataContentType(), "upload image", &imported); err != nil {
		return ports.Upload{}, err
	}
	if len(imported.FileUploadIDs) == 0 {
		return ports.Upload{}, &application.APIError{Operation: "upload image", Status: http.StatusOK, Body: "no file_upload_ids in response"}
	}

	var details uploadDetailsJSON
	detailsPath := fmt.Sprintf("/api/import/file-upload/%d", imported.FileUploadIDs[0])
	if err := c.do(ctx, http.MethodGet, detailsPath, nil, "", "fetch upload details", &details); err != nil {
		return ports.Upload{}, err
	}

	return ports.Upload{ID: details.ID, StoredFile: details.File}, nil
}

// CreateTask registers an uploaded image as a task, carrying any
// pre-existing keypoint results as a completed annotation.
func (c *Client) CreateTask(ctx context.Context, projectID int, spec domain.TaskSpec) error {
	task := struct {
		Data        taskDataJSON     `json:"data"`
		Meta        taskMetaJSON     `json:"meta"`
		Annotations []annotationJSON `json:"annotations,omitempty"`
	}{
		Data: taskDataJSON{Image: "/data/" + spec.StoredFile},
		Meta: taskMetaJSON{OriginalFile: spec.OriginalFile},
	}

	if len(spec.Points) > 0 {
		userID, err := c.currentUserID(ctx)
		if err != nil {
			return err
		}
		now := time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
		task.Annotations = []annotationJSON{{
			Result:      encodeResults(spec.Points),
			CreatedAt:   now,
			UpdatedAt:   now,
			ResultCount: 1,
			CompletedBy: userID,
		}}
	}

	path := fmt.Sprintf("/api/projects/%d/import?return_task_ids=true", projectID)
	return c.doJSON(ctx, http.MethodPost, path, task, nil, "create task")
}

func encodeResults(points []domain.RemotePoint) []resultJSON {
	results := make([]resultJSON, 0, len(points))
	for _, pt := range points {
		results = append(results, resultJSON{
			Type:           keypointType,
			OriginalWidth:  pt.OriginalWidth,
			OriginalHeight: pt.OriginalHeight,
			Value: resultValueJSON{
				X:              pt.XPct,
				Y:              pt.YPct,
				Width:          keypointWidth,
				KeypointLabels: []string{pt.Label},
			},
			FromName: fromName,
			ToName:   toName,
		})
	}
	return results
}

func (c *Client) currentUserID(ctx context.Context) (int, error) {
	if c.userID != 0 {
		return c.userID, nil
	}
	var user userJSON
	if err := c.do(ctx, http.MethodGet, "/api/current-user/whoami", nil, "", "fetch current user", &user); err != nil {
		return 0, err
	}
	c.userID = user.ID
	return c.userID, nil
}

// ListTasks exports every task of a project with its annotations
func (c *Client) ListTasks(ctx context.Context, projectID int) ([]domain.RemoteTask, error) {
	var tasks []taskJSON
	path := fmt.Sprintf("/api/projects/%d/export?exportType=JSON", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, "", "export tasks", &tasks); err != nil {
		return nil, err
	}

	out := make([]domain.RemoteTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, decodeTask(t))
	}
	return out, nil
}

// decodeTask flattens a wire task to the domain form, keeping only keypoint
// results of the first annotation (matching how the host presents the
// authoritative copy).
func decodeTask(t taskJSON) domain.RemoteTask {
	task := domain.RemoteTask{
		ID:           t.ID,
		UploadID:     t.FileUpload,
		StoredFile:   strings.TrimPrefix(t.Data.Image, "/data/"),
		OriginalFile: t.Meta.OriginalFile,
	}

	annotations := t.Annotations
	if len(annotations) == 0 {
		annotations = t.Completions
	}
	if len(annotations) == 0 {
		return task
	}
	if len(annotations) > 1 {
		log.WithField("task", t.ID).Warn("multiple annotations found, only taking the first")
	}

	for _, result := range annotations[0].Result {
		if result.Type != keypointType || len(result.Value.KeypointLabels) == 0 {
			continue
		}
		task.Points = append(task.Points, domain.RemotePoint{
			Label:          result.Value.KeypointLabels[0],
			XPct:           result.Value.X,
			YPct:           result.Value.Y,
			OriginalWidth:  result.OriginalWidth,
			OriginalHeight: result.OriginalHeight,
		})
	}
	return task
}
