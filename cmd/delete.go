package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"

	"github.com/kasku-app/kasku/renderer"
)

type deleteCmd struct {
	yes bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "deletes a transaction of the current sheet" }
func (*deleteCmd) Usage() string {
	return `kas delete <row> [-yes]

Deletes the row at the given position, counting from 1 in the order
'kas show' lists them. The row is shown in full (date, description, party,
source and signed amount) and nothing is sent until it is confirmed.

Usage Examples:
$ kas delete 7
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Confirm the deletion without prompting.")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one row position is required.")
		f.Usage()
		return subcommands.ExitUsageError
	}
	pos, err := strconv.Atoi(f.Arg(0))
	if err != nil || pos < 1 {
		warn(fmt.Sprintf("invalid row position %q", f.Arg(0)))
		return subcommands.ExitUsageError
	}

	ctl, err := StartSession(ctx)
	if err != nil {
		return fail(err)
	}
	row, err := ctl.RowAt(pos - 1)
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.RenderDeleteCard(renderer.BuildDeleteCard(row)))
	if !c.yes && !confirm("Hapus transaksi ini?") {
		fmt.Fprintln(os.Stderr, "Batal.")
		return subcommands.ExitSuccess
	}

	toastSaving()
	if err := ctl.DeleteRow(ctx, pos-1); err != nil {
		return fail(err)
	}
	toast("Tersimpan")
	printMarkdown(renderSession(ctl.Session()))
	return subcommands.ExitSuccess
}
