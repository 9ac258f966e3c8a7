package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const DefaultMaxBytes int64 = 512 << 20

var errTooLarge = errors.New("video exceeds maximum download size")

// HTTPDownloader fetches direct video links. For HTML pages it follows the
// Open Graph video tag once.
type HTTPDownloader struct {
	client   *http.Client
	dir      string
	maxBytes int64
	logger   *zap.Logger
}

// NewHTTPDownloader creates a downloader writing into dir
func NewHTTPDownloader(client *http.Client, dir string, maxBytes int64, logger *zap.Logger) *HTTPDownloader {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPDownloader{client: client, dir: dir, maxBytes: maxBytes, logger: logger.Named("http-downloader")}
}

func (d *HTTPDownloader) Download(ctx context.Context, url string) (string, error) {
	if err := validScheme(url); err != nil {
		return "", err
	}
	return d.fetch(ctx, url, true)
}

func (d *HTTPDownloader) fetch(ctx context.Context, url string, followPage bool) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch {
	case strings.HasPrefix(mediaType, "video/"):
		return d.save(resp.Body, mediaType)
	case mediaType == "text/html" && followPage:
		videoURL, err := ogVideoURL(resp.Body)
		if err != nil {
			return "", err
		}
		d.logger.Debug("following og:video", zap.String("page", url), zap.String("video", videoURL))
		return d.fetch(ctx, videoURL, false)
	default:
		return "", fmt.Errorf("GET %s: content type %q is not a video", url, mediaType)
	}
}

func (d *HTTPDownloader) save(body io.Reader, mediaType string) (string, error) {
	id, err := newTarget(d.dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(d.dir, id+extensionFor(mediaType))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	n, err := io.Copy(f, io.LimitReader(body, d.maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > d.maxBytes {
		err = errTooLarge
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}

	d.logger.Info("download finished", zap.String("path", path), zap.Int64("bytes", n))
	return path, nil
}

// ogVideoURL reads the video URL advertised by a page's Open Graph tags.
func ogVideoURL(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	for _, prop := range []string{"og:video:secure_url", "og:video:url", "og:video"} {
		if v, ok := doc.Find(`meta[property="` + prop + `"]`).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}
	return "", errors.New("page has no og:video tag")
}

func extensionFor(mediaType string) string {
	switch mediaType {
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/quicktime":
		return ".mov"
	}
	if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
		return exts[0]
	}
	return ".mp4"
}
