package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dlc2ls/internal/domain"
)

// Scan enumerates the project's images one video group at a time, attaching
// any annotation row found for the exact file name in the group's
// collected-data table. With non-empty filters an image is kept iff its
// group/file relative path matches at least one pattern. Output is sorted by
// (videoGroup, fileName) so repeated scans of the same tree are identical.
func (r *Repository) Scan(cfg *domain.ProjectConfig, filterPatterns []string) ([]domain.LocalImageRecord, []string, error) {
	filters, err := compileFilters(filterPatterns)
	if err != nil {
		return nil, nil, err
	}

	root := r.imagesRoot()
	groups, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrProjectRootNotFound, root)
		}
		return nil, nil, fmt.Errorf("failed to read images root: %w", err)
	}

	var records []domain.LocalImageRecord
	var warnings []string

	for _, group := range groups {
		if !group.IsDir() {
			continue
		}
		groupName := group.Name()

		// A malformed table never aborts the scan: the group is still
		// enumerated, just with no existing annotations.
		annotations, err := r.readGroupTable(cfg, groupName)
		if err != nil {
			warnings = append(warnings,
				fmt.Sprintf("annotation table for %s is unreadable, scanning without it: %v", groupName, err))
			annotations = nil
		}

		files, err := os.ReadDir(r.groupDir(groupName))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("failed to read group %s: %v", groupName, err))
			continue
		}

		for _, file := range files {
			if file.IsDir() {
				continue
			}
			name := file.Name()
			if !strings.EqualFold(filepath.Ext(name), ".png") {
				continue
			}
			rel := groupName + "/" + name
			if len(filters) > 0 && !matchAny(filters, rel) {
				continue
			}

			records = append(records, domain.LocalImageRecord{
				VideoGroup:         groupName,
				FileName:           name,
				AbsolutePath:       filepath.Join(r.groupDir(groupName), name),
				ExistingAnnotation: annotations[name],
			})
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].VideoGroup != records[j].VideoGroup {
			return records[i].VideoGroup < records[j].VideoGroup
		}
		return records[i].FileName < records[j].FileName
	})

	return records, warnings, nil
}
