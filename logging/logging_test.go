package logging

import (
	"path/filepath"
	"testing"
)

func TestSetupLoggingReportsDebugMode(t *testing.T) {
	cleanup, err := SetupLogging("")
	if err != nil {
		t.Fatal(err)
	}
	cleanup()
	if IsDebugMode() {
		t.Fatal("no log file must not enable debug mode")
	}

	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err = SetupLogging(path)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()
	if !IsDebugMode() {
		t.Fatal("a log file should enable debug mode")
	}
}
