// Package fetch downloads one directory page per call and classifies
// the result: success, retry later, or give up on the whole crawl.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"indexcrawl/internal/metrics"
)

// Outcome says what the caller should do with a fetched directory.
type Outcome int

const (
	// Success: 200 with an HTML body, ready for the listing parser.
	Success Outcome = iota
	// Transient: network error or non-200 status; return the path to
	// the frontier and try again later.
	Transient
	// FatalMismatch: 200 with a non-HTML content-type. The directory
	// tree served us a download where a listing should be, so the
	// format contract is broken and the crawl must stop.
	FatalMismatch
)

type Result struct {
	Outcome Outcome
	Body    []byte
	Err     error // set for Transient and FatalMismatch
}

// MismatchError reports a 200 response whose content-type is not HTML.
type MismatchError struct {
	Path        string
	ContentType string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("fetch %s: got content-type %q, want text/html", e.Path, e.ContentType)
}

const maxBody = 1 << 20 // 1 MiB safety cap per page

// Fetcher issues GETs against one fixed base URL.
type Fetcher struct {
	base   string
	client *http.Client
}

// New returns a Fetcher for the given base URL (scheme://host, no
// trailing slash). A hung request is bounded by the client timeout.
func New(base string) *Fetcher {
	return &Fetcher{
		base:   strings.TrimSuffix(base, "/"),
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch GETs {base}{dir} and classifies the outcome. dir always begins
// with "/".
func (f *Fetcher) Fetch(ctx context.Context, dir string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.base+dir, nil)
	if err != nil {
		return Result{Outcome: Transient, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Result{Outcome: Transient, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{
			Outcome: Transient,
			Err:     fmt.Errorf("fetch %s: status %d", dir, resp.StatusCode),
		}
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "text/html") {
		return Result{
			Outcome: FatalMismatch,
			Err:     &MismatchError{Path: dir, ContentType: ct},
		}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Result{Outcome: Transient, Err: fmt.Errorf("fetch %s: read body: %w", dir, err)}
	}
	metrics.BytesFetched.Add(float64(len(b)))
	metrics.PagesFetched.Inc()

	return Result{Outcome: Success, Body: b}
}
