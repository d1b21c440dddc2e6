package domain

import "path"

// LocalImageRecord is one image discovered under the project's labeled-data
// tree. ExistingAnnotation holds any pixel-space landmark positions found in
// the video group's collected-data table, keyed by landmark name; it is nil
// when the image has never been annotated locally.
type LocalImageRecord struct {
	VideoGroup         string
	FileName           string
	AbsolutePath       string
	ExistingAnnotation map[string]Point
}

// RelPath returns the record's path relative to the images root,
// the form filter patterns are matched against.
func (r LocalImageRecord) RelPath() string {
	return path.Join(r.VideoGroup, r.FileName)
}

// HasAnnotation reports whether the record carries at least one
// non-missing landmark position.
func (r LocalImageRecord) HasAnnotation() bool {
	for _, p := range r.ExistingAnnotation {
		if !p.Missing() {
			return true
		}
	}
	return false
}
