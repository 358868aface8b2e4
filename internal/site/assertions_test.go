package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fileAssertions checks the generated tree relative to the site directory.
type fileAssertions struct {
	t       *testing.T
	baseDir string
}

func newFileAssertions(t *testing.T, baseDir string) *fileAssertions {
	return &fileAssertions{t: t, baseDir: baseDir}
}

func (fa *fileAssertions) exists(relativePath string) *fileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		fa.t.Errorf("Expected file to exist: %s", relativePath)
	}
	return fa
}

func (fa *fileAssertions) notExists(relativePath string) *fileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
	if _, err := os.Stat(fullPath); err == nil {
		fa.t.Errorf("Expected file to not exist: %s", relativePath)
	}
	return fa
}

func (fa *fileAssertions) contains(relativePath string, expected ...string) *fileAssertions {
	fa.t.Helper()
	content := fa.content(relativePath)
	for _, want := range expected {
		if !strings.Contains(content, want) {
			fa.t.Errorf("Expected %s to contain %q\nActual content:\n%s", relativePath, want, content)
		}
	}
	return fa
}

func (fa *fileAssertions) notContains(relativePath, unexpected string) *fileAssertions {
	fa.t.Helper()
	if content := fa.content(relativePath); strings.Contains(content, unexpected) {
		fa.t.Errorf("Expected %s not to contain %q", relativePath, unexpected)
	}
	return fa
}

func (fa *fileAssertions) content(relativePath string) string {
	fa.t.Helper()
	data, err := os.ReadFile(filepath.Join(fa.baseDir, filepath.FromSlash(relativePath)))
	if err != nil {
		fa.t.Fatalf("Failed to read file %s: %v", relativePath, err)
	}
	return string(data)
}
