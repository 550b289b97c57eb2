package main

import (
	"fmt"
	"os"
	"time"

	"github.com/tsslim/tsslim/internal/diagnostic"
	"github.com/tsslim/tsslim/internal/lint"
	"github.com/tsslim/tsslim/internal/watcher"
)

// WatchCmd re-runs the check whenever a watched source file changes.
type WatchCmd struct {
	Config string `help:"Path to tsslim.config.json." default:"tsslim.config.json"`
	Root   string `help:"Project root to watch." default:"."`
}

func (c *WatchCmd) Run() error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}

	run := func() {
		inputs, opts, err := loadInputs(c.Config, c.Root, nil, false, false)
		if err != nil {
			fmt.Fprintln(os.Stderr, "watch:", err)
			return
		}
		res := lint.Check(inputs, opts)
		writer := &diagnostic.Writer{
			Out:     os.Stderr,
			Pretty:  diagnostic.IsPrettyOutput(),
			Sources: res.Sources,
		}
		diags := res.Collector.Diagnostics()
		writer.WriteAll(diags)
		if len(diags) == 0 {
			fmt.Fprintln(os.Stderr, "no issues")
		}
	}

	run()

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	w, err := watcher.New([]string{c.Root}, []string{".ts", ".tsx", ".mts", ".cts"}, debounce, func(events []watcher.Event) {
		fmt.Fprintf(os.Stderr, "\n%d file(s) changed, re-checking...\n", len(events))
		run()
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "watching %s for changes...\n", c.Root)
	return w.Watch()
}
