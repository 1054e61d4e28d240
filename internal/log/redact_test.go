package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// TestRedactHandler_Keys tests which attribute keys are masked.
func TestRedactHandler_Keys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		wantMask bool
	}{
		{name: "viewer is masked", key: "viewer", value: "Ana Souza", wantMask: true},
		{name: "uppercase key is masked", key: "User", value: "Ana Souza", wantMask: true},
		{name: "suffix _name is masked", key: "viewer_name", value: "Ana Souza", wantMask: true},
		{name: "db_password is masked", key: "db_password", value: "hunter2", wantMask: true},
		{name: "token is masked", key: "token", value: "abc.def", wantMask: true},
		{name: "format is kept", key: "format", value: "CSV", wantMask: false},
		{name: "role is kept", key: "role", value: "ADMIN", wantMask: false},
		{name: "path is kept", key: "path", value: "/tmp/items.yaml", wantMask: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewLogger(&buf, true)
			logger.Info("test message", tt.key, tt.value)

			output := buf.String()
			if tt.wantMask {
				if strings.Contains(output, tt.value) {
					t.Errorf("expected %q to be masked: %s", tt.value, output)
				}
				if !strings.Contains(output, MaskValue) {
					t.Errorf("expected mask in output: %s", output)
				}
				return
			}
			if !strings.Contains(output, tt.value) {
				t.Errorf("expected %q in output: %s", tt.value, output)
			}
		})
	}
}

// TestRedactHandler_Groups tests masking inside groups and WithAttrs.
func TestRedactHandler_Groups(t *testing.T) {
	t.Parallel()

	t.Run("group attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewJSONLogger(&buf, true)
		logger.Info("batch", slog.Group("request", slog.String("viewer", "Bob"), slog.Int("items", 3)))

		var record map[string]any
		if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
			t.Fatalf("invalid JSON log: %v", err)
		}
		group, ok := record["request"].(map[string]any)
		if !ok {
			t.Fatalf("expected request group: %v", record)
		}
		if group["viewer"] != MaskValue {
			t.Errorf("expected viewer masked, got %v", group["viewer"])
		}
		if group["items"] != float64(3) {
			t.Errorf("expected items kept, got %v", group["items"])
		}
	})

	t.Run("logger attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true).With("user", "Ana")
		logger.Info("hello")

		if strings.Contains(buf.String(), "Ana") {
			t.Errorf("expected user masked: %s", buf.String())
		}
	})
}

// TestNewLogger_Level tests verbose and quiet levels.
func TestNewLogger_Level(t *testing.T) {
	t.Parallel()

	var quiet, verbose bytes.Buffer
	NewLogger(&quiet, false).Info("info message")
	NewLogger(&verbose, true).Debug("debug message")

	if quiet.Len() != 0 {
		t.Errorf("expected info suppressed without verbose: %s", quiet.String())
	}
	if !strings.Contains(verbose.String(), "debug message") {
		t.Errorf("expected debug output with verbose: %s", verbose.String())
	}
}
