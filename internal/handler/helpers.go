package handler

import (
	"fmt"
	"strconv"
)

// parseIntParam parses a positive integer path or query parameter.
func parseIntParam(value, name string) (int64, error) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return parsed, nil
}
