package lists

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "github.com/maksimkurb/blocklist-sync/src/internal/errors"
	"github.com/maksimkurb/blocklist-sync/src/internal/log"
)

func init() {
	log.DisableLogs()
}

// fakeFetcher answers from a map. URLs listed in block wait for cancellation.
type fakeFetcher struct {
	mu      sync.Mutex
	bodies  map[string]string
	errs    map[string]error
	block   map[string]bool
	fetched []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, url)
	f.mu.Unlock()

	if f.block[url] {
		select {
		case <-ctx.Done():
			return nil, apperrors.NewCanceledError("canceled "+url, ctx.Err())
		case <-time.After(5 * time.Second):
			return nil, apperrors.NewTimeoutError("fake fetcher was never canceled", nil)
		}
	}
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	body, ok := f.bodies[url]
	if !ok {
		return nil, apperrors.NewHTTPStatusError("not found "+url, 404, "404 Not Found")
	}
	return &FetchResult{URL: url, Body: body}, nil
}

func TestCoordinator_AggregatesAllSources(t *testing.T) {
	fetcher := &fakeFetcher{bodies: map[string]string{
		"https://a.example/list": "10.0.0.5/24\n192.0.2.0/24\n",
		"https://b.example/list": "10.0.0.0/24\n2001:db8::/32\nnot-a-cidr\n",
	}}

	set, err := NewCoordinator(fetcher, CoordinatorOptions{}).Collect(context.Background(), []string{
		"https://a.example/list",
		"https://b.example/list",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := "10.0.0.0/24\n192.0.2.0/24\n2001:db8::/32\n"
	if got := string(set.Bytes()); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCoordinator_OrderIndependent(t *testing.T) {
	bodies := map[string]string{
		"https://a.example/list": "198.51.100.0/24\n10.0.0.0/8\n",
		"https://b.example/list": "2001:db8::/48\n192.0.2.0/24\n",
		"https://c.example/list": "10.0.0.1/8\n203.0.113.0/24\n",
	}
	orders := [][]string{
		{"https://a.example/list", "https://b.example/list", "https://c.example/list"},
		{"https://c.example/list", "https://a.example/list", "https://b.example/list"},
		{"https://b.example/list", "https://c.example/list", "https://a.example/list"},
	}

	var first []byte
	for _, order := range orders {
		set, err := NewCoordinator(&fakeFetcher{bodies: bodies}, CoordinatorOptions{}).Collect(context.Background(), order)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if first == nil {
			first = set.Bytes()
			continue
		}
		if !bytes.Equal(first, set.Bytes()) {
			t.Errorf("Order %v produced %q, expected %q", order, set.Bytes(), first)
		}
	}
}

func TestCoordinator_AnyFailureFailsTheRun(t *testing.T) {
	fetcher := &fakeFetcher{
		bodies: map[string]string{
			"https://a.example/list": "192.0.2.0/24\n",
			"https://c.example/list": "198.51.100.0/24\n",
		},
		errs: map[string]error{
			"https://b.example/list": apperrors.NewHTTPStatusError("failed", 500, "500 Internal Server Error"),
		},
	}

	set, err := NewCoordinator(fetcher, CoordinatorOptions{}).Collect(context.Background(), []string{
		"https://a.example/list",
		"https://b.example/list",
		"https://c.example/list",
	})
	if err == nil {
		t.Fatal("Expected error when one source fails")
	}
	if set != nil {
		t.Errorf("Expected no partial result, got %d prefixes", set.Len())
	}
	if !errors.Is(err, apperrors.ErrHTTPStatus) {
		t.Errorf("Expected HTTP status error, got: %v", err)
	}
}

func TestCoordinator_FailureCancelsInFlightFetches(t *testing.T) {
	fetcher := &fakeFetcher{
		block: map[string]bool{"https://slow.example/list": true},
		errs: map[string]error{
			"https://broken.example/list": apperrors.NewConnectionError("connection refused", nil),
		},
	}

	start := time.Now()
	_, err := NewCoordinator(fetcher, CoordinatorOptions{}).Collect(context.Background(), []string{
		"https://slow.example/list",
		"https://broken.example/list",
	})

	if !errors.Is(err, apperrors.ErrConnection) {
		t.Fatalf("Expected the root cause (connection error), got: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("Expected slow fetch to be canceled early, took %s", elapsed)
	}
}

func TestCoordinator_ParentCancellation(t *testing.T) {
	fetcher := &fakeFetcher{block: map[string]bool{"https://slow.example/list": true}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCoordinator(fetcher, CoordinatorOptions{}).Collect(ctx, []string{"https://slow.example/list"})
	if !errors.Is(err, apperrors.ErrCanceled) {
		t.Fatalf("Expected canceled error, got: %v", err)
	}
}

func TestCoordinator_DuplicateURLsFetchedOnce(t *testing.T) {
	fetcher := &fakeFetcher{bodies: map[string]string{"https://a.example/list": "192.0.2.0/24\n"}}

	_, err := NewCoordinator(fetcher, CoordinatorOptions{}).Collect(context.Background(), []string{
		"https://a.example/list",
		"https://a.example/list",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(fetcher.fetched) != 1 {
		t.Errorf("Expected 1 fetch, got %d", len(fetcher.fetched))
	}
}

func TestCoordinator_NoURLs(t *testing.T) {
	_, err := NewCoordinator(&fakeFetcher{}, CoordinatorOptions{}).Collect(context.Background(), nil)
	if err == nil {
		t.Error("Expected error without sources")
	}
}

func TestCoordinator_Lenient(t *testing.T) {
	fetcher := &fakeFetcher{bodies: map[string]string{
		"https://a.example/list": "192.0.2.0/24 ; SBL1\n198.51.100.0/24\n",
	}}

	strict, err := NewCoordinator(fetcher, CoordinatorOptions{}).Collect(context.Background(), []string{"https://a.example/list"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if strict.Len() != 1 {
		t.Errorf("Expected strict mode to keep 1 prefix, got %d", strict.Len())
	}

	lenient, err := NewCoordinator(fetcher, CoordinatorOptions{Lenient: true}).Collect(context.Background(), []string{"https://a.example/list"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if lenient.Len() != 2 {
		t.Errorf("Expected lenient mode to keep 2 prefixes, got %d", lenient.Len())
	}
}

func TestCoordinator_WithDownloader(t *testing.T) {
	server := newListServer(t, map[string]string{
		"/a.txt": "192.0.2.0/24\n",
		"/b.txt": "198.51.100.0/24\n192.0.2.7/24\n",
	})

	d := NewDownloader(DownloaderOptions{Timeout: 5 * time.Second})
	set, err := NewCoordinator(d, CoordinatorOptions{}).Collect(context.Background(), []string{
		server.URL + "/a.txt",
		server.URL + "/b.txt",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if got := string(set.Bytes()); got != "192.0.2.0/24\n198.51.100.0/24\n" {
		t.Errorf("Unexpected aggregate %q", got)
	}
}
