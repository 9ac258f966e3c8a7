package downloader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYtDlpDownloader_Download(t *testing.T) {
	dir := t.TempDir()
	d := NewYtDlpDownloader("", dir, nil)

	var gotArgs []string
	d.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		assert.Equal(t, "yt-dlp", name)
		gotArgs = args
		for i, a := range args {
			if a == "--output" {
				out := strings.Replace(args[i+1], "%(ext)s", "mp4", 1)
				return nil, os.WriteFile(out, []byte("video"), 0o644)
			}
		}
		return nil, errors.New("no output flag")
	}

	path, err := d.Download(context.Background(), "https://www.tiktok.com/@user/video/1")

	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".mp4"))
	assert.Contains(t, gotArgs, "best[ext=mp4]/best")
	assert.Equal(t, "https://www.tiktok.com/@user/video/1", gotArgs[len(gotArgs)-1])
}

func TestYtDlpDownloader_Failures(t *testing.T) {
	t.Run("command fails", func(t *testing.T) {
		d := NewYtDlpDownloader("", t.TempDir(), nil)
		d.run = func(context.Context, string, ...string) ([]byte, error) {
			return []byte("ERROR: Unsupported URL"), errors.New("exit status 1")
		}

		_, err := d.Download(context.Background(), "https://example.com/x")

		assert.ErrorContains(t, err, "Unsupported URL")
	})

	t.Run("partial files removed", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "other.mp4"), []byte("keep"), 0o644))

		d := NewYtDlpDownloader("", dir, nil)
		d.run = func(_ context.Context, _ string, args ...string) ([]byte, error) {
			for i, a := range args {
				if a == "--output" {
					part := strings.Replace(args[i+1], "%(ext)s", "mp4.part", 1)
					require.NoError(t, os.WriteFile(part, []byte("half"), 0o644))
				}
			}
			return []byte("ERROR: connection reset"), errors.New("exit status 1")
		}

		_, err := d.Download(context.Background(), "https://example.com/x")

		require.Error(t, err)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "other.mp4", entries[0].Name())
	})

	t.Run("no file produced", func(t *testing.T) {
		d := NewYtDlpDownloader("", t.TempDir(), nil)
		d.run = func(context.Context, string, ...string) ([]byte, error) { return nil, nil }

		_, err := d.Download(context.Background(), "https://example.com/x")

		assert.ErrorContains(t, err, "no file")
	})

	t.Run("bad scheme", func(t *testing.T) {
		_, err := NewYtDlpDownloader("", t.TempDir(), nil).Download(context.Background(), "file:///etc/passwd")
		assert.Error(t, err)
	})
}

func TestHTTPDownloader_DirectVideo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		w.Write([]byte("fake-mp4-bytes"))
	}))
	defer server.Close()

	path, err := NewHTTPDownloader(server.Client(), t.TempDir(), 0, nil).Download(context.Background(), server.URL+"/v.mp4")

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".mp4"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fake-mp4-bytes", string(data))
}

func TestHTTPDownloader_FollowsOpenGraph(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="Gato">
			<meta property="og:video" content="` + server.URL + `/media.webm">
		</head><body></body></html>`))
	})
	mux.HandleFunc("/media.webm", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/webm")
		w.Write([]byte("webm"))
	})

	path, err := NewHTTPDownloader(server.Client(), t.TempDir(), 0, nil).Download(context.Background(), server.URL+"/page")

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".webm"))
}

func TestHTTPDownloader_Failures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/no-og", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><meta property="og:title" content="x"></head></html>`))
	})
	mux.HandleFunc("/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/big", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		w.Write([]byte(strings.Repeat("x", 64)))
	})
	mux.HandleFunc("/missing", http.NotFound)
	server := httptest.NewServer(mux)
	defer server.Close()

	dir := t.TempDir()
	d := NewHTTPDownloader(server.Client(), dir, 16, nil)

	for _, path := range []string{"/no-og", "/json", "/big", "/missing"} {
		t.Run(path, func(t *testing.T) {
			_, err := d.Download(context.Background(), server.URL+path)
			assert.Error(t, err)
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "oversized download should be removed")
}

func TestOgVideoURL_PrefersSecureURL(t *testing.T) {
	html := `<html><head>
		<meta property="og:video" content="http://cdn/plain.mp4">
		<meta property="og:video:secure_url" content="https://cdn/secure.mp4">
	</head></html>`

	got, err := ogVideoURL(strings.NewReader(html))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn/secure.mp4", got)
}
