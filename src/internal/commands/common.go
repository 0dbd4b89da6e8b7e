package commands

import (
	"github.com/maksimkurb/blocklist-sync/src/internal/destfile"
)

// Exit statuses of a run.
const (
	ExitUpdated   = 0
	ExitFailed    = 1
	ExitUnchanged = 2
)

type AppContext struct {
	ConfigPath  string
	Verbose     bool
	ShowVersion bool
	Version     string
}

// ExitCode maps the result of a run to the process exit status.
func ExitCode(outcome destfile.Outcome, err error) int {
	if err != nil {
		return ExitFailed
	}
	if outcome == destfile.Updated {
		return ExitUpdated
	}
	return ExitUnchanged
}
