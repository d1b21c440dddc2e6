package labelstudio

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadTaskFile reads an exported task file without interpreting the task
// payloads, so merging never loses fields this tool does not model.
func ReadTaskFile(path string) ([]json.RawMessage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}
	var tasks []json.RawMessage
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse task file %s: %w", path, err)
	}
	return tasks, nil
}

// MergeTaskFiles concatenates several exported task files into one
func MergeTaskFiles(inputs []string, output string) (int, error) {
	var merged []json.RawMessage
	for _, input := range inputs {
		tasks, err := ReadTaskFile(input)
		if err != nil {
			return 0, err
		}
		merged = append(merged, tasks...)
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal merged tasks: %w", err)
	}
	if err := os.WriteFile(output, raw, 0644); err != nil {
		return 0, fmt.Errorf("failed to write merged tasks: %w", err)
	}
	return len(merged), nil
}
