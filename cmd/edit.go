package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"

	"github.com/kasku-app/kasku"
)

type editCmd struct {
	date       string
	keterangan string
	nominal    string
	pihak      string
	sumber     string
	jenis      string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edits a transaction of the current sheet" }
func (*editCmd) Usage() string {
	return `kas edit <row> [-date YYYY-MM-DD] [-ket ...] [-nominal ...] [-pihak ...] [-sumber ...] [-jenis ...]

Edits the row at the given position, counting from 1 in the order 'kas show'
lists them. Fields left out keep the row's current values. The time of day is
only preserved when the date is unchanged.

Usage Examples:
# Fix the amount of the third row.
$ kas edit 3 -nominal 15.000
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "New date, YYYY-MM-DD; defaults to the row's date.")
	f.StringVar(&c.keterangan, "ket", "", "New description; defaults to the row's.")
	f.StringVar(&c.nominal, "nominal", "", "New amount; defaults to the row's.")
	f.StringVar(&c.pihak, "pihak", "", "New party; defaults to the row's.")
	f.StringVar(&c.sumber, "sumber", "", "New source; defaults to the row's.")
	f.StringVar(&c.jenis, "jenis", "", "New kind; defaults to the row's.")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	// Pre-populate from the selected row, as the edit dialog always did.
	in := kasku.EditInput{
		Date:       row.Date(),
		Keterangan: row.Keterangan,
		Nominal:    row.Amount().Decimal().String(),
		Pihak:      row.Pihak,
		Sumber:     row.Sumber,
		Jenis:      string(row.Kind()),
	}
	if c.date != "" {
		in.Date, err = kasku.Parse(c.date)
		if err != nil {
			warn(err.Error())
			return subcommands.ExitUsageError
		}
	}
	set := map[string]*string{"ket": &c.keterangan, "nominal": &c.nominal, "pihak": &c.pihak, "sumber": &c.sumber, "jenis": &c.jenis}
	dst := map[string]*string{"ket": &in.Keterangan, "nominal": &in.Nominal, "pihak": &in.Pihak, "sumber": &in.Sumber, "jenis": &in.Jenis}
	f.Visit(func(fl *flag.Flag) {
		if v, ok := set[fl.Name]; ok {
			*dst[fl.Name] = *v
		}
	})

	// A rejected submission never shows the saving notice.
	if err := in.Validate(); err != nil {
		return fail(err)
	}

	toastSaving()
	if err := ctl.EditRow(ctx, pos-1, in); err != nil {
		return fail(err)
	}
	toast("Tersimpan")
	printMarkdown(renderSession(ctl.Session()))
	return subcommands.ExitSuccess
}
