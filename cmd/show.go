package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type showCmd struct {
	sheet string
	plain bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "shows the current sheet: balances and transactions" }
func (*showCmd) Usage() string {
	return `kas show [-sheet <name>] [-plain]

Loads the current sheet fresh from the endpoint and shows its balances and
transactions in server order. With -sheet the named sheet becomes current
first (and is remembered for the next invocation).

Usage Examples:
# Show the remembered sheet.
$ kas show

# Switch to the sheet "Mei" and show it.
$ kas show -sheet Mei
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sheet, "sheet", "", "Sheet to show; defaults to the remembered one.")
	f.BoolVar(&c.plain, "plain", false, "Skip the balance count-up animation.")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctl, err := StartSession(ctx)
	if err != nil {
		return fail(err)
	}
	if c.sheet != "" && c.sheet != ctl.Session().CurrentSheet() {
		if err := ctl.SelectSheet(ctx, c.sheet); err != nil {
			return fail(err)
		}
	}
	if !c.plain {
		animateSaldo(ctl.Session())
	}
	printMarkdown(renderSession(ctl.Session()))
	return subcommands.ExitSuccess
}
