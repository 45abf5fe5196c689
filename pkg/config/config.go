// Package config holds the converter settings and loads them from YAML.
//
// Every field has a default (see Default), so a config file only needs the keys it
// changes. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/johnandrea/ngsq2gedcom/pkg/gdocai"
	"github.com/johnandrea/ngsq2gedcom/pkg/gedcom"
	"github.com/johnandrea/ngsq2gedcom/pkg/layout"
	"github.com/johnandrea/ngsq2gedcom/pkg/ngsq"
)

// Input sources
const (
	SourceCSV   = "csv"
	SourceHOCR  = "hocr"
	SourceDocAI = "docai"
)

// Sources lists the accepted values of Config.Source
var Sources = []string{SourceCSV, SourceHOCR, SourceDocAI}

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config is the full set of converter settings
type Config struct {
	Source     string        `yaml:"source"`
	Files      Files         `yaml:"files"`
	Columns    Columns       `yaml:"columns"`
	Limits     Limits        `yaml:"limits"`
	Submitter  string        `yaml:"submitter"`
	SourceName string        `yaml:"source_name"`
	Names      Names         `yaml:"names"`
	DocAI      gdocai.Config `yaml:"docai"`
}

// Files names the input file expected inside the report directory, per source
type Files struct {
	CSV   string `yaml:"csv"`
	HOCR  string `yaml:"hocr"`
	DocAI string `yaml:"docai"`
}

// Columns names the header cells of the layout export
type Columns struct {
	Layout string `yaml:"layout"`
	Text   string `yaml:"text"`
}

// Limits caps the length of emitted values, in bytes
type Limits struct {
	Name int `yaml:"name"`
	Note int `yaml:"note"`
}

// Names extends the built-in given-name tables
type Names struct {
	Female []string `yaml:"female"`
	Male   []string `yaml:"male"`
}

// Default returns the settings used when no config file is given
func Default() Config {
	gedOpts := gedcom.DefaultOptions()
	return Config{
		Source: SourceCSV,
		Files: Files{
			CSV:   "layout.csv",
			HOCR:  "layout.hocr",
			DocAI: "report.pdf",
		},
		Columns: Columns{
			Layout: layout.DefaultColumns.Layout,
			Text:   layout.DefaultColumns.Text,
		},
		Limits: Limits{
			Name: ngsq.DefaultNameLimit,
			Note: gedOpts.NoteLimit,
		},
		Submitter:  gedOpts.Submitter,
		SourceName: gedOpts.Source,
		DocAI:      gdocai.Config{Location: "us"},
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late in the run
func (c Config) Validate() error {
	if !slices.Contains(Sources, c.Source) {
		return fmt.Errorf("%w: source %q is not one of %v", ErrInvalid, c.Source, Sources)
	}
	if c.InputFile() == "" {
		return fmt.Errorf("%w: no input file name for source %q", ErrInvalid, c.Source)
	}
	if c.Columns.Layout == "" || c.Columns.Text == "" {
		return fmt.Errorf("%w: column names must not be empty", ErrInvalid)
	}
	if c.Limits.Name <= 0 || c.Limits.Note <= 0 {
		return fmt.Errorf("%w: limits must be positive", ErrInvalid)
	}
	if c.Source == SourceDocAI {
		if err := c.DocAI.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	return nil
}

// InputFile is the file name expected for the selected source
func (c Config) InputFile() string {
	switch c.Source {
	case SourceHOCR:
		return c.Files.HOCR
	case SourceDocAI:
		return c.Files.DocAI
	default:
		return c.Files.CSV
	}
}

// LayoutColumns converts the column names for the CSV reader
func (c Config) LayoutColumns() layout.Columns {
	return layout.Columns{Layout: c.Columns.Layout, Text: c.Columns.Text}
}

// ResolveOptions builds the attribute resolver settings
func (c Config) ResolveOptions() ngsq.ResolveOptions {
	names := ngsq.DefaultNames()
	if len(c.Names.Female) > 0 || len(c.Names.Male) > 0 {
		names = names.WithExtra(c.Names.Female, c.Names.Male)
	}
	return ngsq.ResolveOptions{Names: names, NameLimit: c.Limits.Name}
}

// GedcomOptions builds the emitter settings
func (c Config) GedcomOptions() gedcom.Options {
	return gedcom.Options{Source: c.SourceName, Submitter: c.Submitter, NoteLimit: c.Limits.Note}
}
