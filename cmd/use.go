package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type useCmd struct{}

func (*useCmd) Name() string     { return "use" }
func (*useCmd) Synopsis() string { return "switches the current sheet" }
func (*useCmd) Usage() string {
	return `kas use <sheet>

Makes the named sheet current, remembers the choice for later invocations,
and loads it. The sheet must be one of the listed sheets.
`
}

func (*useCmd) SetFlags(f *flag.FlagSet) {}

func (c *useCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one sheet name is required.")
		f.Usage()
		return subcommands.ExitUsageError
	}
	ctl, err := StartSession(ctx)
	if err != nil {
		return fail(err)
	}
	if err := ctl.SelectSheet(ctx, f.Arg(0)); err != nil {
		return fail(err)
	}
	toast(fmt.Sprintf("Sheet aktif: %s", f.Arg(0)))
	return subcommands.ExitSuccess
}
