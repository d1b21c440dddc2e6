package domain

import (
	"fmt"
	"strings"
)

// labelPalette is a fixed ten-color palette cycled over landmarks in schema
// order, so the generated configuration is identical from run to run.
var labelPalette = []string{
	"#023eff", "#ff7c00", "#1ac938", "#e8000b", "#8b2be2",
	"#9f4800", "#f14cc1", "#a3a3a3", "#ffc400", "#00d7ff",
}

// LandmarkColor returns the deterministic color assigned to the landmark at
// the given schema position.
func LandmarkColor(index int) string {
	return labelPalette[index%len(labelPalette)]
}

// BuildLabelConfig renders the keypoint labeling configuration for a schema:
// an image pane plus one labelable point type per landmark, in schema order.
// Output is byte-identical for equal schemas.
func BuildLabelConfig(schema *LandmarkSchema) string {
	var b strings.Builder

	b.WriteString("<View style=\"display: flex;\">\n")
	b.WriteString("    <View style=\"flex: 90%\">\n")
	b.WriteString("        <Image name=\"image\" value=\"$image\" width=\"750px\" maxWidth=\"1000px\" zoom=\"true\" zoomControl=\"true\" brightnessControl=\"true\" contrastControl=\"true\" />\n")
	b.WriteString("    </View>\n")
	b.WriteString("    <View style=\"flex: 10%; margin-left: 1em\">\n")
	b.WriteString("        <Header value=\"Keypoints\" />\n")
	b.WriteString("        <KeyPointLabels name=\"keypoint-label\" toName=\"image\" strokewidth=\"2\" opacity=\"1\" >\n")
	for i, name := range schema.Names() {
		fmt.Fprintf(&b, "            <Label value=%q background=%q />\n", name, LandmarkColor(i))
	}
	b.WriteString("        </KeyPointLabels>\n")
	b.WriteString("    </View>\n")
	b.WriteString("</View>\n")

	return b.String()
}

// ParsePoints maps remote keypoint results onto the schema, keyed by
// landmark name. Each value keeps its percentage coordinates and the image
// dimensions recorded with the result. Results whose label is not in the
// schema are skipped and reported as warnings, never silently dropped.
// Landmarks absent from the results are simply absent from the map.
func ParsePoints(points []RemotePoint, schema *LandmarkSchema) (map[string]RemotePoint, []string) {
	out := make(map[string]RemotePoint, len(points))
	var warnings []string

	for _, pt := range points {
		if !schema.Contains(pt.Label) {
			warnings = append(warnings,
				fmt.Sprintf("%v: label %q is not in the project schema, skipping", ErrUnknownLandmark, pt.Label))
			continue
		}
		out[pt.Label] = pt
	}

	return out, warnings
}
