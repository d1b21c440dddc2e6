package application

import (
	"fmt"
	"strings"
)

// RunReport summarizes one import or export pass. Warnings accumulate every
// non-fatal problem encountered along the way; they are surfaced together at
// the end of the run rather than only logged inline.
type RunReport struct {
	Created  int
	Skipped  int
	Failed   int
	Warnings []string
}

// Warn appends a formatted warning to the report
func (r *RunReport) Warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Summary renders the end-of-run report
func (r *RunReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "created: %d, skipped: %d, failed: %d, warnings: %d",
		r.Created, r.Skipped, r.Failed, len(r.Warnings))
	for _, w := range r.Warnings {
		b.WriteString("\n  warning: ")
		b.WriteString(w)
	}
	return b.String()
}
