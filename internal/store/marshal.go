package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/cluesolver/internal/board"
)

// marshalBoard converts a board definition to canonical JSON TEXT for storage.
func marshalBoard(def board.Definition) (string, error) {
	data, err := def.MarshalCanonical()
	if err != nil {
		return "", fmt.Errorf("marshal board: %w", err)
	}
	return string(data), nil
}

// unmarshalBoard parses stored JSON TEXT back into a definition.
func unmarshalBoard(data string) (board.Definition, error) {
	var def board.Definition
	if err := json.Unmarshal([]byte(data), &def); err != nil {
		return board.Definition{}, fmt.Errorf("unmarshal board: %w", err)
	}
	return def, nil
}
