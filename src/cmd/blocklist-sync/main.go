package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/maksimkurb/blocklist-sync/src/internal/commands"
	apperrors "github.com/maksimkurb/blocklist-sync/src/internal/errors"
	"github.com/maksimkurb/blocklist-sync/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	os.Exit(run())
}

func run() int {
	defer log.Close()

	ctx := &commands.AppContext{Version: version}
	cmd := commands.CreateUpdateCommand()

	if err := cmd.Init(os.Args[1:], ctx); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		log.Errorf("Failed to initialize: %v", err)
		return commands.ExitFailed
	}

	if ctx.ShowVersion {
		fmt.Printf("blocklist-sync %s (Commit: %s, Date: %s)\n", version, commit, date)
		return 0
	}

	if ctx.Verbose {
		log.SetVerbose(true)
	} else if err := log.UseSyslog("blocklist-sync"); err != nil {
		log.Warnf("Syslog is not available, logging to console: %v", err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcome, err := cmd.Run(runCtx)
	if err != nil {
		if apperrors.IsFetchError(err) {
			log.Errorf("Download failed, %s left untouched: %v", cmd.Destination(), err)
		} else {
			log.Errorf("Update failed: %v", err)
		}
		log.Debugf("Failure code: %s", apperrors.CodeOf(err))
	}
	return commands.ExitCode(outcome, err)
}
