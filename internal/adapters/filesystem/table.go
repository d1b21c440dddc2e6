package filesystem

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"dlc2ls/internal/domain"
)

func tableName(scorer string) string {
	return "CollectedData_" + scorer + ".csv"
}

func (r *Repository) tablePath(scorer, videoGroup string) string {
	return filepath.Join(r.groupDir(videoGroup), tableName(scorer))
}

// readGroupTable loads one video group's collected-data table into
// per-file pixel-space annotations. A missing table is not an error; rows
// are keyed by the file name component of the row index, matched exactly.
func (r *Repository) readGroupTable(cfg *domain.ProjectConfig, videoGroup string) (map[string]map[string]domain.Point, error) {
	f, err := os.Open(r.tablePath(cfg.Scorer, videoGroup))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 3 {
		return nil, fmt.Errorf("expected scorer/bodyparts/coords header rows")
	}
	if rows[0][0] != "scorer" || rows[1][0] != "bodyparts" || rows[2][0] != "coords" {
		return nil, fmt.Errorf("unrecognized header layout")
	}
	bodyparts, coords := rows[1], rows[2]
	if len(bodyparts) != len(coords) {
		return nil, fmt.Errorf("bodyparts and coords headers disagree")
	}

	out := make(map[string]map[string]domain.Point)
	for _, row := range rows[3:] {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		fileName := path.Base(strings.ReplaceAll(row[0], `\`, "/"))

		points := make(map[string]domain.Point)
		for i := 1; i < len(row) && i < len(bodyparts); i++ {
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %q: bad value %q: %w", row[0], cell, err)
			}
			p, ok := points[bodyparts[i]]
			if !ok {
				p = domain.MissingPoint()
			}
			switch coords[i] {
			case "x":
				p.X = v
			case "y":
				p.Y = v
			}
			points[bodyparts[i]] = p
		}
		out[fileName] = points
	}

	return out, nil
}

// WriteTable persists one video group's annotation table. Any existing
// table file is first renamed to an unused backup path, so repeated exports
// never destroy data.
func (r *Repository) WriteTable(table *domain.AnnotationTable) (string, error) {
	dest := r.tablePath(table.Scorer, table.VideoGroup)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("failed to create group directory: %w", err)
	}

	backup := ""
	if _, err := os.Stat(dest); err == nil {
		backup, err = backupExistingFile(dest)
		if err != nil {
			return "", fmt.Errorf("failed to back up existing table: %w", err)
		}
	}

	f, err := os.Create(dest)
	if err != nil {
		return backup, fmt.Errorf("failed to create table file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	schema := table.Schema()
	names := schema.Names()
	width := 1 + 2*schema.Len()

	scorerRow := make([]string, 1, width)
	bodypartRow := make([]string, 1, width)
	coordRow := make([]string, 1, width)
	scorerRow[0], bodypartRow[0], coordRow[0] = "scorer", "bodyparts", "coords"
	for _, name := range names {
		scorerRow = append(scorerRow, table.Scorer, table.Scorer)
		bodypartRow = append(bodypartRow, name, name)
		coordRow = append(coordRow, "x", "y")
	}
	for _, row := range [][]string{scorerRow, bodypartRow, coordRow} {
		if err := writer.Write(row); err != nil {
			return backup, err
		}
	}

	for _, fileName := range table.Files() {
		row := make([]string, 1, width)
		row[0] = table.RowIndex(fileName)
		for _, name := range names {
			p := table.Point(fileName, name)
			row = append(row, formatCell(p.X), formatCell(p.Y))
		}
		if err := writer.Write(row); err != nil {
			return backup, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return backup, err
	}
	return backup, nil
}

// formatCell renders a coordinate, with missing as an empty cell
func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// backupExistingFile renames a file to the first unused .backup-N path.
// Backups are never overwritten and never deleted.
func backupExistingFile(original string) (string, error) {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)

	counter := 0
	newPath := original
	for {
		if _, err := os.Stat(newPath); os.IsNotExist(err) {
			break
		}
		counter++
		newPath = fmt.Sprintf("%s.backup-%d%s", base, counter, ext)
	}

	if err := os.Rename(original, newPath); err != nil {
		return "", err
	}
	return newPath, nil
}
