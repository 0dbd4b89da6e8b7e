// Package lists downloads remote prefix lists and aggregates them.
//
// # Components
//
//   - Downloader: one HTTP GET per source with its own timeout; failures are
//     classified as connection, timeout or HTTP status errors
//   - Coordinator: runs one fetch per source concurrently (errgroup), parses
//     every body with netlist.Parser and merges the results
//
// # Failure Policy
//
// Collect is all-or-nothing. The first failing source cancels the others and
// fails the whole collection, because a blocklist quietly missing one
// source's entries is worse than no update at all. Malformed lines inside a
// body are not failures; they are counted, logged and skipped.
//
// # Example Usage
//
//	downloader := lists.NewDownloader(lists.DownloaderOptions{
//	    Timeout:   30 * time.Second,
//	    UserAgent: "blocklist-sync/1.0",
//	})
//	coordinator := lists.NewCoordinator(downloader, lists.CoordinatorOptions{})
//
//	set, err := coordinator.Collect(ctx, urls)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d prefixes\n", set.Len())
package lists
