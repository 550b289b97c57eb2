package main

import (
	"fmt"
	"os"

	"github.com/tsslim/tsslim/internal/config"
	"github.com/tsslim/tsslim/internal/diagnostic"
	"github.com/tsslim/tsslim/internal/lint"
)

// CheckCmd analyzes the selected files and prints diagnostics.
type CheckCmd struct {
	Paths  []string `arg:"" optional:"" help:"Files to analyze (overrides config globs)."`
	Config string   `help:"Path to tsslim.config.json." default:"tsslim.config.json"`
	Root   string   `help:"Project root to discover files under." default:"."`
	Strict bool     `help:"Treat warnings as errors."`
	Quiet  bool     `help:"Only report errors."`
}

func (c *CheckCmd) Run() error {
	inputs, opts, err := loadInputs(c.Config, c.Root, c.Paths, c.Strict, c.Quiet)
	if err != nil {
		return err
	}

	res := lint.Check(inputs, opts)
	writer := &diagnostic.Writer{
		Out:     os.Stderr,
		Pretty:  diagnostic.IsPrettyOutput(),
		Sources: res.Sources,
	}
	diags := res.Collector.Diagnostics()
	writer.WriteAll(diags)

	if len(diags) > 0 {
		if !writer.Pretty {
			fmt.Fprintln(os.Stderr, res.Collector.Summary())
		}
		return fmt.Errorf("found %d issue(s)", len(diags))
	}
	return nil
}

// loadInputs resolves the config and the file set shared by the
// check, fix, and watch commands. Explicit paths bypass discovery.
func loadInputs(configPath, root string, paths []string, strict, quiet bool) ([]lint.Input, lint.Options, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, lint.Options{}, err
	}

	opts := lint.Options{
		Severity:     severityFromConfig(cfg),
		Strict:       strict || cfg.Strict,
		Quiet:        quiet || cfg.Quiet,
		MaxFixPasses: cfg.MaxFixPasses,
	}

	var inputs []lint.Input
	if len(paths) > 0 {
		for _, p := range paths {
			data, err := os.ReadFile(p)
			if err != nil {
				return nil, opts, fmt.Errorf("reading %s: %w", p, err)
			}
			inputs = append(inputs, lint.Input{Path: p, Text: string(data)})
		}
		return inputs, opts, nil
	}

	inputs, err = lint.Discover(root, cfg)
	if err != nil {
		return nil, opts, err
	}
	return inputs, opts, nil
}

// loadConfig falls back to defaults when the config file is absent at
// its default location.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		return &cfg, nil
	}
	return config.Load(path)
}

func severityFromConfig(cfg *config.Config) diagnostic.Severity {
	switch cfg.Severity {
	case "error":
		return diagnostic.SeverityError
	case "info":
		return diagnostic.SeverityInfo
	default:
		return diagnostic.SeverityWarning
	}
}
