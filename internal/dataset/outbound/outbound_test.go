package outbound

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
	"github.com/phamm25/ai-chatbot/internal/dataset/profile"
)

func TestNormalizeURL(t *testing.T) {
	tests := map[string]string{
		"HTTP://Example.COM:80/data.csv#top":    "http://example.com/data.csv",
		"https://example.com:443/a.csv?x=1":     "https://example.com/a.csv?x=1",
		"https://example.com:8443/a.csv":        "https://example.com:8443/a.csv",
		"  https://user:pw@Example.com  ":       "https://user:pw@example.com/",
		"https://EXAMPLE.com/Case/Sensitive.csv": "https://example.com/Case/Sensitive.csv",
	}

	for in, want := range tests {
		got, err := NormalizeURL(in)
		if err != nil {
			t.Fatalf("NormalizeURL(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("NormalizeURL(%q) = %q, want %q", in, got, want)
		}
	}

	for _, in := range []string{"", "ftp://example.com/a.csv", "file:///etc/passwd", "https://", "::not a url"} {
		if _, err := NormalizeURL(in); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("NormalizeURL(%q) expected ErrInvalidURL, got %v", in, err)
		}
	}
}

func TestStripUserinfo(t *testing.T) {
	if got := StripUserinfo("https://user:pw@example.com/a.csv?x=1"); got != "https://example.com/a.csv?x=1" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := StripUserinfo("https://example.com/a.csv"); got != "https://example.com/a.csv" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestHTTPFetcherSendsURLCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "reader" || pass != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("a\n1\n"))
	}))
	defer srv.Close()

	normalized, err := NormalizeURL(strings.Replace(srv.URL, "http://", "http://reader:s3cret@", 1) + "/data.csv")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	fetcher := NewHTTPFetcher(time.Second, 0)
	data, err := fetcher.Fetch(context.Background(), normalized)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(data) != "a\n1\n" {
		t.Fatalf("unexpected body %q", data)
	}

	_, err = fetcher.Fetch(context.Background(), strings.Replace(normalized, "s3cret", "wrong", 1))
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 fetch error, got %v", err)
	}
	if strings.Contains(err.Error(), "wrong") {
		t.Fatalf("error leaks credentials: %v", err)
	}
}

func TestNameFromURL(t *testing.T) {
	if got := NameFromURL("https://example.com/files/sales.csv?x=1"); got != "sales.csv" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := NameFromURL("https://example.com/"); got != "dataset.csv" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestHTTPFetcherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.csv":
			_, _ = w.Write([]byte("a,b\n1,2\n"))
		case "/big.csv":
			w.Header().Set("Content-Length", "100")
			_, _ = w.Write([]byte(strings.Repeat("x", 100)))
		case "/chunked.csv":
			flusher := w.(http.Flusher)
			for i := 0; i < 10; i++ {
				_, _ = w.Write([]byte(strings.Repeat("y", 10)))
				flusher.Flush()
			}
		case "/boom":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(time.Second, 50)

	data, err := fetcher.Fetch(context.Background(), srv.URL+"/ok.csv")
	if err != nil {
		t.Fatalf("fetch ok: %v", err)
	}
	if string(data) != "a,b\n1,2\n" {
		t.Fatalf("unexpected body %q", data)
	}

	for _, p := range []string{"/big.csv", "/chunked.csv"} {
		if _, err := fetcher.Fetch(context.Background(), srv.URL+p); !errors.Is(err, profile.ErrPayloadTooLarge) {
			t.Fatalf("fetch %s: expected ErrPayloadTooLarge, got %v", p, err)
		}
	}

	_, err = fetcher.Fetch(context.Background(), srv.URL+"/missing")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound || fetchErr.Temporary() {
		t.Fatalf("unexpected fetch error: %+v", fetchErr)
	}

	_, err = fetcher.Fetch(context.Background(), srv.URL+"/boom")
	if !errors.As(err, &fetchErr) || !fetchErr.Temporary() {
		t.Fatalf("expected temporary fetch error, got %v", err)
	}
}

func TestHTTPFetcherTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTPFetcher(50*time.Millisecond, 0).Fetch(context.Background(), srv.URL)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if !fetchErr.Temporary() {
		t.Fatalf("expected timeout to be temporary: %v", err)
	}
}

func TestFileArchiverHandle(t *testing.T) {
	dir := t.TempDir()
	archiver := NewFileArchiver(dir)

	err := archiver.Handle(context.Background(), entity.DatasetProfiledEvent{
		EventID:   "e1",
		DatasetID: "d1",
		Name:      "people.csv",
		Raw:       []byte("a\n1\n"),
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "csv", "d1.csv"))
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if string(got) != "a\n1\n" {
		t.Fatalf("unexpected archive content %q", got)
	}

	if err := archiver.Handle(context.Background(), entity.DatasetProfiledEvent{DatasetID: "../escape"}); err == nil {
		t.Fatalf("expected error for path traversal id")
	}
	if err := archiver.Handle(context.Background(), entity.DatasetProfiledEvent{}); err == nil {
		t.Fatalf("expected error for missing id")
	}
}
