package utils

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

func BytesToStruct(data []byte, s interface{}) error {
	return json.Unmarshal(data, s)
}

// DecodeField unmarshals the JSON value at path inside body into out.
// A missing path is an error; a JSON null leaves out untouched.
func DecodeField(body []byte, path string, out interface{}) error {
	result := gjson.GetBytes(body, path)
	if !result.Exists() {
		return fmt.Errorf("field %q not present in response", path)
	}
	if result.Type == gjson.Null {
		return nil
	}
	return json.Unmarshal([]byte(result.Raw), out)
}

// FirstString returns the first non-empty string found at any of paths.
func FirstString(body []byte, paths ...string) string {
	for _, path := range paths {
		if value := gjson.GetBytes(body, path); value.Exists() && value.String() != "" {
			return value.String()
		}
	}
	return ""
}
