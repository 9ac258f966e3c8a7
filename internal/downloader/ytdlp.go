package downloader

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// CommandRunner executes an external program and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// YtDlpDownloader shells out to yt-dlp, which understands most social
// video platforms.
type YtDlpDownloader struct {
	binary string
	dir    string
	run    CommandRunner
	logger *zap.Logger
}

// NewYtDlpDownloader creates a downloader writing into dir. An empty binary
// means "yt-dlp" from PATH.
func NewYtDlpDownloader(binary, dir string, logger *zap.Logger) *YtDlpDownloader {
	if binary == "" {
		binary = "yt-dlp"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YtDlpDownloader{binary: binary, dir: dir, run: execRunner, logger: logger.Named("yt-dlp")}
}

func (d *YtDlpDownloader) Download(ctx context.Context, url string) (string, error) {
	if err := validScheme(url); err != nil {
		return "", err
	}
	id, err := newTarget(d.dir)
	if err != nil {
		return "", err
	}

	args := []string{
		"--format", "best[ext=mp4]/best",
		"--output", filepath.Join(d.dir, id+".%(ext)s"),
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		url,
	}

	d.logger.Info("starting download", zap.String("url", url), zap.String("id", id))
	out, err := d.run(ctx, d.binary, args...)
	if err != nil {
		removeByPrefix(d.dir, id)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("yt-dlp failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	path, err := findByPrefix(d.dir, id)
	if err != nil {
		removeByPrefix(d.dir, id)
		return "", err
	}
	d.logger.Info("download finished", zap.String("path", path))
	return path, nil
}
