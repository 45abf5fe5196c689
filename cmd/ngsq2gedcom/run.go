package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/johnandrea/ngsq2gedcom/internal/logging"
	"github.com/johnandrea/ngsq2gedcom/pkg/config"
	"github.com/johnandrea/ngsq2gedcom/pkg/gdocai"
	"github.com/johnandrea/ngsq2gedcom/pkg/gedcom"
	"github.com/johnandrea/ngsq2gedcom/pkg/hocr"
	"github.com/johnandrea/ngsq2gedcom/pkg/layout"
	"github.com/johnandrea/ngsq2gedcom/pkg/ngsq"
	"github.com/johnandrea/ngsq2gedcom/pkg/report"
)

// lowConfidence is the x_wconf below which an hOCR line is reported at debug level
const lowConfidence = 60

func run(ctx context.Context, opts options, dir string, stdout io.Writer) error {
	logger, err := logging.New(opts.debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	input, err := locateInput(dir, cfg.InputFile())
	if err != nil {
		return err
	}
	logger.Info("reading report", zap.String("source", cfg.Source), zap.String("file", input))

	src, err := openSource(ctx, cfg, input, opts.debugAPI, logger)
	if err != nil {
		return err
	}

	tree, err := ngsq.Parse(src, ngsq.Options{Logger: logger, Resolve: cfg.ResolveOptions()})
	if err != nil {
		return err
	}
	if err := tree.Validate(); err != nil {
		return fmt.Errorf("inconsistent person tree: %w", err)
	}

	ged, err := gedcom.Marshal(tree, cfg.GedcomOptions())
	if err != nil {
		return err
	}

	var chart []byte
	if opts.pdfPath != "" {
		rcfg := report.DefaultConfig()
		rcfg.Logger = logger
		chart, err = report.Chart(tree, rcfg)
		if err != nil {
			return err
		}
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, ged, 0o644); err != nil {
			return fmt.Errorf("failed to write GEDCOM output: %w", err)
		}
		logger.Info("GEDCOM saved", zap.String("path", opts.output))
	} else if _, err := stdout.Write(ged); err != nil {
		return fmt.Errorf("failed to write GEDCOM output: %w", err)
	}

	if chart != nil {
		if err := os.WriteFile(opts.pdfPath, chart, 0o644); err != nil {
			return fmt.Errorf("failed to write PDF chart: %w", err)
		}
		logger.Info("chart saved", zap.String("path", opts.pdfPath))
	}
	return nil
}

// loadConfig reads the config file, if any, and applies the flag overrides
func loadConfig(opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}
	if opts.source != "" {
		cfg.Source = opts.source
	}
	return cfg, cfg.Validate()
}

// locateInput checks the report directory and returns the path of the expected file
func locateInput(dir, name string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	path := filepath.Join(dir, name)
	info, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", fmt.Errorf("%w: %s", ErrMissingInput, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to inspect %s: %w", path, err)
	}
	return path, nil
}

// openSource turns the input file into a row stream for the selected source
func openSource(ctx context.Context, cfg config.Config, path, debugAPI string, logger *zap.Logger) (layout.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	switch cfg.Source {
	case config.SourceHOCR:
		doc, err := hocr.ParseHOCR(data)
		if err != nil {
			return nil, err
		}
		rows := hocr.Rows(doc)
		logger.Debug("hOCR parsed", zap.Int("pages", len(doc.Pages)), zap.Int("rows", len(rows)))
		for _, page := range doc.Pages {
			for _, line := range page.Lines {
				if c := line.MinConfidence(); c >= 0 && c < lowConfidence {
					logger.Debug("low OCR confidence",
						zap.Int("page", page.PageNumber),
						zap.Float64("confidence", c),
						zap.String("text", line.Text()))
				}
			}
		}
		return layout.NewSliceSource(rows), nil

	case config.SourceDocAI:
		rows, raw, err := gdocai.ReadRows(ctx, data, &cfg.DocAI)
		if err != nil {
			return nil, err
		}
		if debugAPI != "" {
			dump, err := gdocai.ToJSON(raw)
			if err != nil {
				return nil, fmt.Errorf("failed to encode Document AI response: %w", err)
			}
			if err := os.WriteFile(debugAPI, []byte(dump), 0o644); err != nil {
				return nil, fmt.Errorf("failed to write Document AI response: %w", err)
			}
			logger.Info("Document AI response saved", zap.String("path", debugAPI))
		}
		logger.Debug("Document AI rows", zap.Int("rows", len(rows)))
		return layout.NewSliceSource(rows), nil

	default:
		text, err := layout.DecodeText(data)
		if err != nil {
			return nil, err
		}
		return layout.NewCSVReader(bytes.NewReader(text), cfg.LayoutColumns())
	}
}
