package schema

import (
	"math"
	"strconv"
	"strings"
)

// IntValue coerces the loosely typed scalars that appear in wire
// payloads (json numbers decode as float64, the platform also emits
// string-encoded integers) into an int.
func IntValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
	case float32:
		if float64(v) == math.Trunc(float64(v)) {
			return int(v), true
		}
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		num, err := strconv.Atoi(trimmed)
		if err == nil {
			return num, true
		}
	}
	return 0, false
}

// FloatValue coerces a wire scalar into a float64.
func FloatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		num, err := strconv.ParseFloat(trimmed, 64)
		if err == nil {
			return num, true
		}
	}
	return 0, false
}

// BoolValue coerces a wire scalar into a bool, accepting the "true" and
// "false" string encodings the platform tolerates.
func BoolValue(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.TrimSpace(v) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}
