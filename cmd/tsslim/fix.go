package main

import (
	"fmt"
	"os"

	"github.com/tsslim/tsslim/internal/lint"
)

// FixCmd rewrites the selected files, removing redundant trailing
// type arguments. Each file is re-analyzed from scratch between fix
// passes until nothing is left to remove.
type FixCmd struct {
	Paths  []string `arg:"" optional:"" help:"Files to fix (overrides config globs)."`
	Config string   `help:"Path to tsslim.config.json." default:"tsslim.config.json"`
	Root   string   `help:"Project root to discover files under." default:"."`
	DryRun bool     `help:"Print the files that would change without writing them."`
}

func (c *FixCmd) Run() error {
	inputs, opts, err := loadInputs(c.Config, c.Root, c.Paths, false, false)
	if err != nil {
		return err
	}

	changed := 0
	for _, in := range inputs {
		fixed, passes, err := lint.FixText(in.Path, in.Text, opts.MaxFixPasses)
		if err != nil {
			return err
		}
		if fixed == in.Text {
			continue
		}
		changed++
		if c.DryRun {
			fmt.Printf("would fix %s (%d pass(es))\n", in.Path, passes)
			continue
		}
		if err := os.WriteFile(in.Path, []byte(fixed), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", in.Path, err)
		}
		fmt.Printf("fixed %s (%d pass(es))\n", in.Path, passes)
	}

	if changed == 0 {
		fmt.Println("nothing to fix")
	}
	return nil
}
