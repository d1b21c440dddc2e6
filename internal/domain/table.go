package domain

import (
	"path"
	"sort"
)

// AnnotationTable is one video group's collected annotation data: rows keyed
// by file name, columns exactly schema x {x, y} in schema order. Missing
// cells stay missing; they are never coerced to zero.
type AnnotationTable struct {
	Scorer     string
	VideoGroup string
	schema     *LandmarkSchema
	rows       map[string]map[string]Point
}

// NewAnnotationTable returns an empty table for one video group
func NewAnnotationTable(scorer, videoGroup string, schema *LandmarkSchema) *AnnotationTable {
	return &AnnotationTable{
		Scorer:     scorer,
		VideoGroup: videoGroup,
		schema:     schema,
		rows:       make(map[string]map[string]Point),
	}
}

// Schema returns the landmark schema the table's columns are built from
func (t *AnnotationTable) Schema() *LandmarkSchema {
	return t.schema
}

// SetPoint records a pixel-space landmark position for an image. Landmarks
// outside the schema are ignored; callers validate labels before insertion.
func (t *AnnotationTable) SetPoint(fileName, landmark string, p Point) {
	if !t.schema.Contains(landmark) {
		return
	}
	row, ok := t.rows[fileName]
	if !ok {
		row = make(map[string]Point, t.schema.Len())
		t.rows[fileName] = row
	}
	row[landmark] = p
}

// Point returns the recorded position of a landmark for an image, or a
// missing point when nothing was recorded.
func (t *AnnotationTable) Point(fileName, landmark string) Point {
	if row, ok := t.rows[fileName]; ok {
		if p, ok := row[landmark]; ok {
			return p
		}
	}
	return MissingPoint()
}

// Files returns the row keys in sorted order
func (t *AnnotationTable) Files() []string {
	out := make([]string, 0, len(t.rows))
	for name := range t.rows {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of rows in the table
func (t *AnnotationTable) Len() int {
	return len(t.rows)
}

// RowIndex returns the project-relative index value written for an image
// row, e.g. "labeled-data/video1/img001.png".
func (t *AnnotationTable) RowIndex(fileName string) string {
	return path.Join("labeled-data", t.VideoGroup, fileName)
}
