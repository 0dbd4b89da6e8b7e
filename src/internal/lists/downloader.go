package lists

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	apperrors "github.com/maksimkurb/blocklist-sync/src/internal/errors"
	"github.com/maksimkurb/blocklist-sync/src/internal/hashing"
	"github.com/maksimkurb/blocklist-sync/src/internal/log"
)

const DefaultTimeout = 30 * time.Second

// FetchResult is the body of one successfully downloaded source.
type FetchResult struct {
	URL      string
	Body     string
	Size     int64
	Checksum string
}

// Fetcher downloads a single source.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Downloader fetches sources over HTTP(S), one attempt per call.
type Downloader struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// DownloaderOptions configures a Downloader. Zero values select defaults.
type DownloaderOptions struct {
	Client    *http.Client
	Timeout   time.Duration
	UserAgent string
}

func NewDownloader(opts DownloaderOptions) *Downloader {
	d := &Downloader{
		client:    opts.Client,
		timeout:   opts.Timeout,
		userAgent: opts.UserAgent,
	}
	if d.client == nil {
		d.client = &http.Client{}
	}
	if d.timeout <= 0 {
		d.timeout = DefaultTimeout
	}
	return d
}

// Fetch downloads url within the downloader's timeout. The timeout covers the
// whole exchange including reading the body. Failures are returned as
// connection, timeout, HTTP status or cancellation errors.
func (d *Downloader) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewConnectionError(fmt.Sprintf("invalid request for %s", url), err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	log.Debugf("Downloading %s", url)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, d.classify(ctx, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewHTTPStatusError(fmt.Sprintf("failed to download %s", url), resp.StatusCode, resp.Status)
	}

	digest := hashing.NewBodyDigest(resp.Body)
	content, err := io.ReadAll(digest)
	if err != nil {
		return nil, d.classify(ctx, url, err)
	}

	result := &FetchResult{
		URL:      url,
		Body:     string(content),
		Size:     digest.Size(),
		Checksum: digest.GetChecksum(),
	}
	log.Debugf("Downloaded %s: %d bytes, MD5 %s", url, result.Size, result.Checksum)

	return result, nil
}

// classify maps a transport error to the error taxonomy. The per-fetch
// deadline is checked before the parent context so a timeout is never
// reported as a cancellation.
func (d *Downloader) classify(ctx context.Context, url string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError(fmt.Sprintf("timed out after %s downloading %s", d.timeout, url), err)
	case errors.Is(err, context.Canceled):
		return apperrors.NewCanceledError(fmt.Sprintf("download of %s was canceled", url), err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return apperrors.NewTimeoutError(fmt.Sprintf("timed out downloading %s", url), err)
	default:
		return apperrors.NewConnectionError(fmt.Sprintf("failed to download %s", url), err)
	}
}
