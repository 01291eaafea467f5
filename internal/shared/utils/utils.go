package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hibiken/asynq"
)

// GetEnvVariable reads an environment variable with a fallback default.
func GetEnvVariable(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// UnmarshalTask decodes an asynq task payload into dest.
func UnmarshalTask(t *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", t.Type(), err)
	}
	return nil
}

// NormalizeHandle lowercases and trims a username or platform name so the
// (username, platform) natural key compares case-insensitively.
func NormalizeHandle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
