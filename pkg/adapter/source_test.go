package adapter_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/propdex/propdex/pkg/adapter"
)

func TestLoadTextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	gt.NoError(t, os.WriteFile(path, []byte("First paragraph.\n\nSecond paragraph."), 0644))

	text, err := adapter.LoadText(context.Background(), path)
	gt.NoError(t, err)
	gt.Equal(t, text, "First paragraph.\n\nSecond paragraph.")
}

func TestLoadTextFileNotFound(t *testing.T) {
	_, err := adapter.LoadText(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	gt.Error(t, err)
}

func TestLoadTextInvalidGSPath(t *testing.T) {
	testCases := []string{
		"gs://",
		"gs://bucket-only",
		"gs://bucket/",
	}

	for _, path := range testCases {
		t.Run(path, func(t *testing.T) {
			_, err := adapter.LoadText(context.Background(), path)
			gt.Error(t, err)
		})
	}
}
