package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const testItemsYAML = `items:
  - id: "1"
    name: Notebook
    value: 1500
  - id: "2"
    name: Caneta
    value: 10
  - id: "3"
    name: Mesa
    value: 700
`

// writeItemsFile writes the standard test items into dir and returns the path.
func writeItemsFile(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "items.yaml")
	if err := os.WriteFile(path, []byte(testItemsYAML), 0600); err != nil {
		t.Fatalf("failed to write items file: %v", err)
	}
	return path
}

// writeEmptyConfig writes a config file with no settings so that a stray
// .rolereport in the working or home directory cannot affect the test.
func writeEmptyConfig(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("defaults: {}\n"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

// runRoot executes the root command with args and returns stdout and stderr.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
