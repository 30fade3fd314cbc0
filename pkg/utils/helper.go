package utils

import (
	"fmt"
	"strconv"
)

// ParseID converts a path or query id to int64. Anything that is not a
// positive integer is rejected so handlers can answer 400 instead of 404.
func ParseID(value string) (int64, error) {
	if value == "" {
		return 0, fmt.Errorf("id is required")
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be numeric")
	}

	if id < 1 {
		return 0, fmt.Errorf("id must be positive")
	}

	return id, nil
}

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
