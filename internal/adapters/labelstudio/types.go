package labelstudio

// Wire types for the Label Studio REST API.

type projectJSON struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	LabelConfig string `json:"label_config"`
}

type createProjectJSON struct {
	Title       string `json:"title"`
	LabelConfig string `json:"label_config"`
}

type importResponseJSON struct {
	FileUploadIDs []int `json:"file_upload_ids"`
}

type uploadDetailsJSON struct {
	ID   int    `json:"id"`
	File string `json:"file"`
}

type userJSON struct {
	ID int `json:"id"`
}

type taskDataJSON struct {
	Image string `json:"image"`
}

type taskMetaJSON struct {
	OriginalFile string `json:"original_file,omitempty"`
}

type resultValueJSON struct {
	X              float64  `json:"x"`
	Y              float64  `json:"y"`
	Width          float64  `json:"width,omitempty"`
	KeypointLabels []string `json:"keypointlabels"`
}

type resultJSON struct {
	ID             string          `json:"id,omitempty"`
	Type           string          `json:"type"`
	OriginalWidth  int             `json:"original_width"`
	OriginalHeight int             `json:"original_height"`
	ImageRotation  int             `json:"image_rotation"`
	Value          resultValueJSON `json:"value"`
	FromName       string          `json:"from_name"`
	ToName         string          `json:"to_name"`
}

type annotationJSON struct {
	Result       []resultJSON `json:"result"`
	WasCancelled bool         `json:"was_cancelled"`
	GroundTruth  bool         `json:"ground_truth"`
	CreatedAt    string       `json:"created_at,omitempty"`
	UpdatedAt    string       `json:"updated_at,omitempty"`
	LeadTime     float64      `json:"lead_time"`
	ResultCount  int          `json:"result_count,omitempty"`
	CompletedBy  int          `json:"completed_by,omitempty"`
}

type taskJSON struct {
	ID          int              `json:"id"`
	FileUpload  int              `json:"file_upload"`
	Data        taskDataJSON     `json:"data"`
	Meta        taskMetaJSON     `json:"meta"`
	Annotations []annotationJSON `json:"annotations,omitempty"`
	// older hosts used "completions" for the same payload
	Completions []annotationJSON `json:"completions,omitempty"`
}
