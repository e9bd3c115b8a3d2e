package moodle

import (
	"fmt"

	"github.com/Spok95/university-assistant-bot/internal/sheet"
)

// Load читает первый лист файла учётных записей и строит индекс.
func Load(path string) (*Index, error) {
	t, err := sheet.ReadXLSX(path, "")
	if err != nil {
		return nil, fmt.Errorf("moodle load: %w", err)
	}
	r, err := Resolve(t)
	if err != nil {
		return nil, fmt.Errorf("moodle load: %w", err)
	}
	return NewIndex(r), nil
}
