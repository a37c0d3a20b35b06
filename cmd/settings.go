package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/kasku-app/kasku"
)

type settingsCmd struct {
	title    string
	subtitle string
	photo    string
	pin      string
	pihak1   string
	pihak2   string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "views or changes the ledger settings" }
func (*settingsCmd) Usage() string {
	return `kas settings [-title ...] [-subtitle ...] [-photo ...] [-pin ...] [-pihak1 ...] [-pihak2 ...]

Without flags, shows the current settings. With flags, saves the changed
settings to the endpoint; fields left out keep their current values. A new
PIN must be exactly 6 digits; leaving -pin out keeps the existing one.

Usage Examples:
$ kas settings -title "Catatan Keuangan" -pihak1 Budi -pihak2 Sari
$ kas settings -pin 123456
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "Ledger title.")
	f.StringVar(&c.subtitle, "subtitle", "", "Ledger subtitle.")
	f.StringVar(&c.photo, "photo", "", "Profile photo URL.")
	f.StringVar(&c.pin, "pin", "", "New 6-digit PIN; empty keeps the current one.")
	f.StringVar(&c.pihak1, "pihak1", "", "Name of the first party.")
	f.StringVar(&c.pihak2, "pihak2", "", "Name of the second party.")
}

func (c *settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctl, err := StartSession(ctx)
	if err != nil {
		return fail(err)
	}
	cur := ctl.Session().Options()

	changed := false
	f.Visit(func(*flag.Flag) { changed = true })
	if !changed {
		c.print(cur)
		return subcommands.ExitSuccess
	}

	// Fields without a flag keep their current values, like the settings
	// dialog pre-populating every input.
	ch := kasku.OptionChanges{
		Title:    cur.Title,
		Subtitle: cur.Subtitle,
		Photo:    cur.Photo,
		PIN:      c.pin,
		Pihak1:   c.pihak1,
		Pihak2:   c.pihak2,
	}
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "title":
			ch.Title = c.title
		case "subtitle":
			ch.Subtitle = c.subtitle
		case "photo":
			ch.Photo = c.photo
		}
	})

	toastSaving()
	if err := ctl.SaveOptions(ctx, ch); err != nil {
		return fail(err)
	}
	toast("Pengaturan tersimpan")
	c.print(ctl.Session().Options())
	return subcommands.ExitSuccess
}

func (c *settingsCmd) print(opt kasku.Options) {
	cash1, cash2 := opt.CashLabels()
	fmt.Printf("Judul:     %s\n", opt.Title)
	fmt.Printf("Sub judul: %s\n", opt.Subtitle)
	fmt.Printf("Foto:      %s\n", opt.Photo)
	fmt.Printf("Pihak:     %s, %s\n", opt.Pihak[0], opt.Pihak[1])
	fmt.Printf("Label:     %s / %s\n", cash1, cash2)
	if opt.PIN != "" {
		fmt.Println("PIN:       aktif")
	} else {
		fmt.Println("PIN:       tidak aktif")
	}
}
