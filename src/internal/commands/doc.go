// Package commands implements the command-line layer of blocklist-sync.
//
// UpdateCommand follows the Init/Run pattern: Init parses flags and
// positional arguments, merges them with an optional config file and
// validates the result; Run performs one download-aggregate-write cycle.
// ExitCode turns the outcome into the process exit status:
//
//	0  the destination file was updated
//	1  the run failed (any fetch error, I/O error or invalid arguments)
//	2  the destination file was already up to date
//
// # Example Usage
//
//	cmd := commands.CreateUpdateCommand()
//	appCtx := &commands.AppContext{Version: version}
//	if err := cmd.Init(os.Args[1:], appCtx); err != nil {
//	    os.Exit(commands.ExitFailed)
//	}
//	outcome, err := cmd.Run(ctx)
//	os.Exit(commands.ExitCode(outcome, err))
//
// Commands are thin wrappers; fetching lives in package lists and the
// atomic replace in package destfile.
package commands
