package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnandrea/ngsq2gedcom/internal/version"
	"github.com/johnandrea/ngsq2gedcom/pkg/config"
)

// Usage errors, reported before any input is read
var (
	ErrMissingArgument = errors.New("missing argument: the report directory")
	ErrNotDirectory    = errors.New("not a directory")
	ErrMissingInput    = errors.New("expected input file not found")
)

type options struct {
	configPath string
	source     string
	output     string
	pdfPath    string
	debugAPI   string
	debug      bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "ngsq2gedcom <report-directory>",
		Short: "Convert an OCR'd NGSQ descendant report to GEDCOM",
		Long: `ngsq2gedcom reads the OCR text of a National Genealogical Society Quarterly
style descendant report and writes the people and families it describes as a
GEDCOM 5.5.1 file.

The directory must contain the recognized text: layout.csv (Textract layout
export) by default, or the file configured for the selected --source.`,
		Args: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0:
				return ErrMissingArgument
			case len(args) > 1:
				return fmt.Errorf("expected one report directory, got %d arguments", len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Version = version.Version
	cmd.SetVersionTemplate(fmt.Sprintf("ngsq2gedcom %s\n", version.String()))

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to the YAML configuration file")
	flags.StringVar(&opts.source, "source", "", fmt.Sprintf("Input source %v (default from config, else csv)", config.Sources))
	flags.StringVarP(&opts.output, "output", "o", "", "Write the GEDCOM file here instead of stdout")
	flags.StringVar(&opts.pdfPath, "pdf", "", "Also write a descendant chart PDF to this path")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&opts.debugAPI, "debug-api", "", "Path to save the raw Document AI response as JSON")
	return cmd
}
