package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToFloat converts various types to float64.
// Unparseable values yield 0.
func ToFloat(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	case []byte:
		f, _ := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		return f
	default:
		f, _ := strconv.ParseFloat(fmt.Sprintf("%v", v), 64)
		return f
	}
}

// ToBool converts various types to bool.
// Strings accept the roster spreadsheet conventions: "yes", "y", "1", "true".
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		return ToFloat(v) == 1
	case string:
		return boolString(v)
	case []byte:
		return boolString(string(v))
	default:
		return false
	}
}

func boolString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "1", "true":
		return true
	default:
		return false
	}
}
