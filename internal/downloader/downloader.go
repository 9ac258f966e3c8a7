package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Downloader fetches the video behind a public URL into a local temp file
// and returns its path. The caller owns and removes the file.
type Downloader interface {
	Download(ctx context.Context, url string) (string, error)
}

// newTarget reserves a unique base name inside dir.
func newTarget(dir string) (id string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download dir %s: %w", dir, err)
	}
	return uuid.NewString(), nil
}

// findByPrefix returns the first regular file in dir whose name starts with prefix.
func findByPrefix(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) && !strings.HasSuffix(e.Name(), ".part") {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("download finished but no file starting with %s in %s", prefix, dir)
}

// removeByPrefix deletes every file in dir whose name starts with prefix,
// including partial downloads.
func removeByPrefix(dir, prefix string) {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"*"))
	if err != nil {
		return
	}
	for _, m := range matches {
		os.Remove(m)
	}
}

func validScheme(url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("unsupported url %q", url)
	}
	return nil
}
