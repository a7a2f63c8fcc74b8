package app

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBadConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`request_timeout = "-1s"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}
