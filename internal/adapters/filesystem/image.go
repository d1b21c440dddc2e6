package filesystem

import (
	"bytes"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
)

// ReadImage loads an image file and reports its pixel dimensions, which the
// import path needs to convert pixel annotations to percentages.
func (r *Repository) ReadImage(absolutePath string) ([]byte, int, int, error) {
	data, err := os.ReadFile(absolutePath)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to read image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode image %s: %w", absolutePath, err)
	}

	bounds := img.Bounds()
	return data, bounds.Dx(), bounds.Dy(), nil
}
