package domain

// ProjectConfig is the local project's metadata, materialized from its
// config file: the task name, the scoring author and the landmark names in
// labeling order.
type ProjectConfig struct {
	TaskName  string
	Scorer    string
	Landmarks []string
}

// Schema builds the landmark schema declared by the configuration
func (c *ProjectConfig) Schema() (*LandmarkSchema, error) {
	return NewLandmarkSchema(c.Landmarks)
}
