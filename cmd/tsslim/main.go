// Command tsslim detects and removes unnecessary explicit generic
// type arguments in TypeScript sources: arguments that restate the
// declared type-parameter defaults and can be dropped without
// changing meaning.
package main

import (
	"fmt"

	"github.com/alecthomas/kong"
)

const version = "0.1.0-dev"

type CLI struct {
	Check   CheckCmd   `cmd:"" default:"withargs" help:"Analyze files and report redundant type arguments."`
	Fix     FixCmd     `cmd:"" help:"Remove redundant type arguments in place."`
	Watch   WatchCmd   `cmd:"" help:"Re-run check when source files change."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println("tsslim", version)
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("tsslim"),
		kong.Description("Remove TypeScript type arguments that restate declared defaults."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
