package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type sheetsCmd struct{}

func (*sheetsCmd) Name() string     { return "sheets" }
func (*sheetsCmd) Synopsis() string { return "lists the ledger sheets" }
func (*sheetsCmd) Usage() string {
	return `kas sheets

Lists the sheets of the ledger, marking the current one. Hidden sheets
(names starting with '.') are never listed.
`
}

func (*sheetsCmd) SetFlags(f *flag.FlagSet) {}

func (c *sheetsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctl, err := StartSession(ctx)
	if err != nil {
		return fail(err)
	}
	s := ctl.Session()
	for _, name := range s.Sheets() {
		marker := " "
		if name == s.CurrentSheet() {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, name)
	}
	return subcommands.ExitSuccess
}
