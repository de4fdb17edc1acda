package outbound

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/phamm25/ai-chatbot/internal/dataset/profile"
)

const DefaultFetchTimeout = 15 * time.Second

// FetchError describes a failed remote fetch. StatusCode is zero when no
// response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the same fetch may succeed.
func (e *FetchError) Temporary() bool {
	if e.StatusCode != 0 {
		return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
	}

	var netErr net.Error
	if errors.As(e.Err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(e.Err, context.DeadlineExceeded) || errors.Is(e.Err, io.ErrUnexpectedEOF)
}

type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	return &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: profile.EffectiveLimit(maxBytes),
	}
}

// Fetch downloads url and returns its body. Bodies larger than the limit fail
// with profile.ErrPayloadTooLarge without being read in full.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	shown := StripUserinfo(url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: shown, Err: err}
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: shown, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: shown, StatusCode: resp.StatusCode}
	}

	if resp.ContentLength > 0 {
		if err := profile.CheckSize(resp.ContentLength, f.maxBytes); err != nil {
			return nil, err
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, &FetchError{URL: shown, Err: err}
	}
	if err := profile.CheckSize(int64(len(data)), f.maxBytes); err != nil {
		return nil, err
	}

	return data, nil
}
