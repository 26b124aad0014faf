package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"
)

// marshalList encodes a string list for storage in a TEXT column.
// A nil list is stored as "[]" so reads never see NULL.
func marshalList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encoding list column: %w", err)
	}
	return string(raw), nil
}

// scanList decodes a JSON-array TEXT column back into a string list.
func scanList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decoding list column: %w", err)
	}
	return list, nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. The driver exposes no typed error for this, so the message
// prefix is the stable contract.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// clampList applies the shared defaults for list queries.
func clampList(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
