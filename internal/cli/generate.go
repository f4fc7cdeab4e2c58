package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arqlabs/labelforge/internal/input"
	"github.com/arqlabs/labelforge/pkg/api"
	"github.com/arqlabs/labelforge/pkg/sheet"
)

// defaultOutput is used when several input files are combined.
const defaultOutput = "output/labels.pdf"

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output        string // output PDF path; derived from the input when empty
	dir           string // scan this directory instead of positional paths
	pattern       string // glob pattern for --dir scans
	geometryFile  string // TOML geometry/calibration override
	noHeader      bool
	noID          bool
	noInstruction bool
}

// newGenerateCmd creates the generate command. With no arguments it scans
// the input/ directory for CSV files, mirroring batch-printing workflows
// where files are dropped into a watched folder.
func newGenerateCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [file.csv ...]",
		Short: "Generate a barcode label PDF from CSV files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PDF file (default: auto-named from the input)")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "process all matching CSV files in this directory")
	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", input.DefaultPattern, "file pattern for --dir")
	cmd.Flags().StringVar(&opts.geometryFile, "geometry", "", "TOML file overriding sheet geometry and calibration")
	cmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "omit page headers")
	cmd.Flags().BoolVar(&opts.noID, "no-id", false, "omit barcode ID text")
	cmd.Flags().BoolVar(&opts.noInstruction, "no-instruction", false, "omit instruction text")

	return cmd
}

func runGenerate(ctx context.Context, args []string, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	paths, err := input.Resolve(args, opts.dir, opts.pattern)
	if err != nil {
		return err
	}
	logger.Debugf("Resolved %d input file(s)", len(paths))

	geo := sheet.Avery5160()
	if opts.geometryFile != "" {
		if geo, err = sheet.Load(opts.geometryFile); err != nil {
			return err
		}
		logger.Debugf("Loaded geometry override from %s", opts.geometryFile)
	}

	output := opts.output
	if output == "" {
		output = deriveOutput(paths)
	}

	generator := api.NewWithOptions(api.DefaultOptions(),
		api.WithGeometry(geo),
		api.WithHeader(!opts.noHeader),
		api.WithIDText(!opts.noID),
		api.WithInstruction(!opts.noInstruction),
		api.WithLogger(logger),
	)

	sum, err := generator.GenerateFiles(paths, output)
	if err != nil {
		return err
	}
	logger.Infof("Wrote %s: %d page(s), %d label(s) from %d file(s)", output, sum.Pages, sum.Labels, sum.Files)
	if sum.Skipped > 0 {
		logger.Warnf("Skipped %d row(s) without a barcode value", sum.Skipped)
	}
	return nil
}

// deriveOutput picks an output path when -o is not given: a single input
// names the PDF after itself under output/, several inputs share the
// default combined name.
func deriveOutput(paths []string) string {
	if len(paths) == 1 {
		base := filepath.Base(paths[0])
		base = strings.TrimSuffix(base, filepath.Ext(base))
		return filepath.Join("output", base+".pdf")
	}
	return defaultOutput
}
