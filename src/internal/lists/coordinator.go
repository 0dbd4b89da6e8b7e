package lists

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/maksimkurb/blocklist-sync/src/internal/errors"
	"github.com/maksimkurb/blocklist-sync/src/internal/log"
	"github.com/maksimkurb/blocklist-sync/src/internal/netlist"
)

// Coordinator downloads every source concurrently and aggregates the result.
// A run either includes every source or fails: a list silently missing one
// source's entries is never produced.
type Coordinator struct {
	fetcher Fetcher
	lenient bool
}

type CoordinatorOptions struct {
	// Lenient enables lenient line parsing for every source.
	Lenient bool
}

func NewCoordinator(fetcher Fetcher, opts CoordinatorOptions) *Coordinator {
	return &Coordinator{
		fetcher: fetcher,
		lenient: opts.Lenient,
	}
}

// Collect fetches all urls concurrently and returns the union of their
// prefixes. The first failure cancels the fetches still in flight and is
// returned once every fetch has finished.
func (c *Coordinator) Collect(ctx context.Context, urls []string) (*netlist.PrefixSet, error) {
	sources := uniqueURLs(urls)
	if len(sources) == 0 {
		return nil, apperrors.NewValidationError("no source URLs given", nil)
	}

	log.Infof("Downloading %d source(s)", len(sources))

	sets := make([]*netlist.PrefixSet, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, url := range sources {
		g.Go(func() error {
			result, err := c.fetcher.Fetch(gctx, url)
			if err != nil {
				if !errors.Is(err, apperrors.ErrCanceled) {
					log.Errorf("Source %s failed: %v", url, err)
				}
				return err
			}
			sets[i] = c.parse(result)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := netlist.NewPrefixSet()
	for _, set := range sets {
		merged.Merge(set)
	}

	ipv4, ipv6 := merged.Count()
	log.Infof("Aggregated %d unique prefix(es) (%d IPv4, %d IPv6)", merged.Len(), ipv4, ipv6)

	return merged, nil
}

func (c *Coordinator) parse(result *FetchResult) *netlist.PrefixSet {
	malformed := 0
	parser := netlist.Parser{
		Lenient: c.lenient,
		OnMalformed: func(lineNo int, line string, err error) {
			malformed++
			log.Debugf("%s:%d: skipping malformed line %q: %v", result.URL, lineNo, line, err)
		},
	}

	set := parser.ParseAll(result.Body)

	ipv4, ipv6 := set.Count()
	log.Infof("Source %s: %d prefix(es) (%d IPv4, %d IPv6)", result.URL, set.Len(), ipv4, ipv6)
	if malformed > 0 {
		log.Warnf("Source %s: skipped %d malformed line(s)", result.URL, malformed)
	}

	return set
}

func uniqueURLs(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	unique := make([]string, 0, len(urls))
	for _, url := range urls {
		if _, ok := seen[url]; ok {
			log.Debugf("Ignoring duplicate source %s", url)
			continue
		}
		seen[url] = struct{}{}
		unique = append(unique, url)
	}
	return unique
}
