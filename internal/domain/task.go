package domain

// RemotePoint is one keypoint result attached to a remote task. Coordinates
// are percentages of the original image dimensions, which the host records
// alongside every result.
type RemotePoint struct {
	Label          string
	XPct           float64
	YPct           float64
	OriginalWidth  int
	OriginalHeight int
}

// RemoteTask is the host's view of one annotated image. The core only ever
// reads tasks through the store interface; no persistence guarantee beyond
// last-write-wins is assumed.
type RemoteTask struct {
	ID           int
	UploadID     int
	StoredFile   string
	OriginalFile string
	Points       []RemotePoint
}

// TaskSpec describes a task to be created on the host for a freshly
// uploaded image. Points carry percentage coordinates.
type TaskSpec struct {
	UploadID     int
	StoredFile   string
	OriginalFile string
	Points       []RemotePoint
}
