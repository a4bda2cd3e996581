package utils

import (
	"encoding/json"
	"strings"
)

// PhotosToString converts []string to a JSON string for a text column.
func PhotosToString(photos []string) string {
	if len(photos) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(photos)
	return string(data)
}

// StringToPhotos converts the stored column value back to []string.
func StringToPhotos(s string) []string {
	if s == "" || s == "[]" {
		return []string{}
	}
	var photos []string
	if err := json.Unmarshal([]byte(s), &photos); err != nil {
		// legacy rows kept comma-separated values
		return strings.Split(s, ",")
	}
	return photos
}
