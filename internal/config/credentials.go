package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RectifyCredentials restores the newlines of a service-account private key
// that was flattened into a single-line environment variable.
func RectifyCredentials(raw string) ([]byte, error) {
	var creds map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, fmt.Errorf("unmarshal credentials: %w", err)
	}
	if key, ok := creds["private_key"].(string); ok {
		creds["private_key"] = strings.ReplaceAll(key, "\\n", "\n")
	}
	out, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("marshal credentials: %w", err)
	}
	return out, nil
}
