package domain

// LandmarkSchema is the ordered set of named keypoints labeled in a project.
// Order is significant: annotation vectors are indexed positionally.
// A schema is immutable once constructed.
type LandmarkSchema struct {
	names []string
	index map[string]int
}

// NewLandmarkSchema builds a schema from the project's keypoint names.
// Names must be non-empty and unique.
func NewLandmarkSchema(names []string) (*LandmarkSchema, error) {
	if len(names) == 0 {
		return nil, &SchemaError{Message: "no landmarks defined"}
	}

	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, &SchemaError{Message: "empty landmark name"}
		}
		if _, ok := index[name]; ok {
			return nil, &SchemaError{Landmark: name, Message: "defined more than once"}
		}
		index[name] = i
	}

	return &LandmarkSchema{
		names: append([]string(nil), names...),
		index: index,
	}, nil
}

// Names returns the landmark names in schema order
func (s *LandmarkSchema) Names() []string {
	return append([]string(nil), s.names...)
}

// Index returns the position of a landmark within the schema
func (s *LandmarkSchema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Contains reports whether the schema defines the given landmark
func (s *LandmarkSchema) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of landmarks in the schema
func (s *LandmarkSchema) Len() int {
	return len(s.names)
}
