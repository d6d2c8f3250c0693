package export

import (
	"encoding/json"
	"fmt"

	"timeTracker/internal/models/sheet"
)

// ToJSON serializes the collection with 2-space indentation. This is
// the canonical at-rest shape, file round-trips are lossless.
func ToJSON(groups []*sheet.TaskGroup) ([]byte, error) {
	if groups == nil {
		groups = []*sheet.TaskGroup{}
	}
	data, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing sheet: %w", err)
	}
	return data, nil
}

// FromJSON parses an exported document back into groups, verbatim and
// all-or-nothing: a malformed document imports nothing.
func FromJSON(data []byte) ([]*sheet.TaskGroup, error) {
	var groups []*sheet.TaskGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("parsing sheet document: %w", err)
	}
	if groups == nil {
		groups = []*sheet.TaskGroup{}
	}
	return groups, nil
}
