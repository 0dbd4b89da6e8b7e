package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/maksimkurb/blocklist-sync/src/internal/config"
	"github.com/maksimkurb/blocklist-sync/src/internal/destfile"
	apperrors "github.com/maksimkurb/blocklist-sync/src/internal/errors"
	"github.com/maksimkurb/blocklist-sync/src/internal/lists"
	"github.com/maksimkurb/blocklist-sync/src/internal/log"
)

func CreateUpdateCommand() *UpdateCommand {
	c := &UpdateCommand{
		fs:     flag.NewFlagSet("blocklist-sync", flag.ContinueOnError),
		stdout: os.Stdout,
	}

	c.fs.StringVar(&c.configPath, "config", "", "Path to an optional TOML configuration file")
	c.fs.StringVar(&c.tempDir, "tempdir", "", "Directory for temporary files (must be on the DESTFILE filesystem)")
	c.fs.StringVar(&c.tempDir, "t", "", "Shorthand for -tempdir")
	c.fs.BoolVar(&c.verbose, "verbose", false, "Log to the console with debug messages instead of syslog")
	c.fs.BoolVar(&c.verbose, "v", false, "Shorthand for -verbose")
	c.fs.DurationVar(&c.timeout, "timeout", config.DefaultTimeout.Std(), "Per-source download timeout")
	c.fs.BoolVar(&c.lenient, "lenient", false, "Accept lines that only start with an address")
	c.fs.BoolVar(&c.showVersion, "version", false, "Print version and exit")

	c.fs.Usage = func() {
		out := c.fs.Output()
		fmt.Fprintf(out, "Download IP prefix lists and merge them into DESTFILE\n\n")
		fmt.Fprintf(out, "Usage: %s [options] DESTFILE URL [URL...]\n\n", c.fs.Name())
		fmt.Fprintf(out, "DESTFILE \"-\" writes the aggregated list to stdout.\n\n")
		fmt.Fprintf(out, "Exit status:\n")
		fmt.Fprintf(out, "  %d  DESTFILE was updated\n", ExitUpdated)
		fmt.Fprintf(out, "  %d  failure\n", ExitFailed)
		fmt.Fprintf(out, "  %d  DESTFILE was already up to date\n\n", ExitUnchanged)
		fmt.Fprintf(out, "Options:\n")
		c.fs.PrintDefaults()
	}

	return c
}

// UpdateCommand downloads every source, aggregates the prefixes and replaces
// the destination when the result differs from its current content.
type UpdateCommand struct {
	fs     *flag.FlagSet
	cfg    *config.Config
	ctx    *AppContext
	stdout io.Writer

	configPath  string
	tempDir     string
	verbose     bool
	timeout     time.Duration
	lenient     bool
	showVersion bool
}

func (c *UpdateCommand) Name() string {
	return c.fs.Name()
}

// SetOutput redirects usage messages and "-" destination output.
func (c *UpdateCommand) SetOutput(w io.Writer) {
	c.fs.SetOutput(w)
	c.stdout = w
}

func (c *UpdateCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	if err := c.fs.Parse(args); err != nil {
		return err
	}

	if c.showVersion {
		ctx.ShowVersion = true
		return nil
	}

	cfg := config.NewDefaultConfig()
	if c.configPath != "" {
		loaded, err := config.LoadConfig(c.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		ctx.ConfigPath = c.configPath
	}

	cfg.Apply(c.overrides())

	if err := cfg.ValidateConfig(); err != nil {
		c.fs.Usage()
		return apperrors.NewValidationError("invalid arguments", err)
	}

	c.cfg = cfg
	ctx.Verbose = cfg.Verbose
	return nil
}

// overrides collects the flags that were given explicitly and the positional
// DESTFILE and URLs.
func (c *UpdateCommand) overrides() config.Overrides {
	o := config.Overrides{TempDir: c.tempDir}

	if positional := c.fs.Args(); len(positional) > 0 {
		o.Destination = positional[0]
		o.URLs = positional[1:]
	}

	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "timeout":
			timeout := config.Duration(c.timeout)
			o.Timeout = &timeout
		case "lenient":
			lenient := c.lenient
			o.Lenient = &lenient
		case "verbose", "v":
			verbose := c.verbose
			o.Verbose = &verbose
		}
	})

	return o
}

func (c *UpdateCommand) Run(ctx context.Context) (destfile.Outcome, error) {
	cfg := c.cfg
	dest := cfg.GetAbsDestination()
	tempDir := cfg.GetAbsTempDir()

	if log.IsVerbose() {
		if serialized, err := cfg.SerializeConfig(); err == nil {
			log.Debugf("Effective configuration:\n%s", serialized)
		}
	}

	// Fail before downloading anything if the temp dir is unusable.
	if tempDir != "" {
		if info, err := os.Stat(tempDir); err != nil {
			return destfile.Unchanged, apperrors.NewIOError(fmt.Sprintf("temp dir %s is not accessible", tempDir), err)
		} else if !info.IsDir() {
			return destfile.Unchanged, apperrors.NewIOError(fmt.Sprintf("temp dir %s is not a directory", tempDir), nil)
		}
	}

	downloader := lists.NewDownloader(lists.DownloaderOptions{
		Timeout:   cfg.Timeout.Std(),
		UserAgent: cfg.RenderUserAgent(c.version()),
	})
	coordinator := lists.NewCoordinator(downloader, lists.CoordinatorOptions{
		Lenient: cfg.Lenient,
	})

	set, err := coordinator.Collect(ctx, cfg.URLs)
	if err != nil {
		return destfile.Unchanged, err
	}

	if err := ctx.Err(); err != nil {
		return destfile.Unchanged, apperrors.NewCanceledError("run was canceled before writing", err)
	}

	writer := &destfile.Writer{
		TempDir: tempDir,
		Stdout:  c.stdout,
	}
	outcome, err := writer.WriteSet(dest, set)
	if err != nil {
		return destfile.Unchanged, err
	}

	log.Debugf("Run finished: %s", outcome)
	return outcome, nil
}

// Destination returns the resolved destination path after Init.
func (c *UpdateCommand) Destination() string {
	if c.cfg == nil {
		return ""
	}
	return c.cfg.GetAbsDestination()
}

func (c *UpdateCommand) version() string {
	if c.ctx != nil && c.ctx.Version != "" {
		return c.ctx.Version
	}
	return "dev"
}
