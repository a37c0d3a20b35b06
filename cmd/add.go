package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/kasku-app/kasku"
)

type addCmd struct {
	date       string
	keterangan string
	nominal    string
	pihak      string
	sumber     string
	jenis      string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "records a new transaction on the current sheet" }
func (*addCmd) Usage() string {
	return `kas add -ket <description> -nominal <amount> -pihak <party> -sumber <ATM|CASH> -jenis <debit|kredit> [-date YYYY-MM-DD]

Records a transaction. Party, source and kind are all required; without them
the submission is rejected locally and nothing is sent. The amount field is
free text: everything but digits is stripped, so "Rp 12.000" records 12000.
The date defaults to today; entries dated today also get a time of day,
stamped by the server.

After the write the current sheet is reloaded in full; the balances shown
afterwards always come from the server.

Usage Examples:
$ kas add -ket "Belanja mingguan" -nominal 250.000 -pihak Budi -sumber CASH -jenis kredit
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Transaction date, YYYY-MM-DD; defaults to today.")
	f.StringVar(&c.keterangan, "ket", "", "Description of the transaction.")
	f.StringVar(&c.nominal, "nominal", "", "Amount; non-digits are stripped.")
	f.StringVar(&c.pihak, "pihak", "", "Party the transaction belongs to.")
	f.StringVar(&c.sumber, "sumber", "", "Source: ATM or CASH.")
	f.StringVar(&c.jenis, "jenis", "", "Kind: debit (in) or kredit (out).")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	date := kasku.Today()
	if c.date != "" {
		var err error
		date, err = kasku.Parse(c.date)
		if err != nil {
			warn(err.Error())
			return subcommands.ExitUsageError
		}
	}

	in := kasku.CreateInput{
		Date:       date,
		Keterangan: c.keterangan,
		Nominal:    c.nominal,
		Pihak:      c.pihak,
		Sumber:     c.sumber,
		Jenis:      c.jenis,
	}
	// A rejected submission never shows the saving notice.
	if err := in.Validate(); err != nil {
		return fail(err)
	}

	ctl, err := StartSession(ctx)
	if err != nil {
		return fail(err)
	}

	toastSaving()
	if err := ctl.Create(ctx, in); err != nil {
		return fail(err)
	}
	toast("Tersimpan")
	printMarkdown(renderSession(ctl.Session()))
	return subcommands.ExitSuccess
}

// toastSaving prints the transient saving notice shown for the duration of
// every write.
func toastSaving() {
	os.Stderr.WriteString("Menyimpan...\n")
}
