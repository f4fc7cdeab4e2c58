package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// called by the main package with values injected via ldflags at build
// time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the labelforge CLI and returns an error if any command
// fails. Logging defaults to info level on stderr; --verbose raises it to
// debug. The logger is attached to the context for all commands.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "labelforge",
		Short:        "labelforge prints barcode sticker sheets from CSV batches",
		Long:         `labelforge turns CSV files carrying a barcode column into printable PDF sheets of Code 128 labels aligned to Avery 5160 die-cut stock.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("labelforge %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newServeCmd())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return root.ExecuteContext(ctx)
}
