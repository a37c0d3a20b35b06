package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/kasku-app/kasku/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion wires shell completion; it takes over and exits when invoked by
// the shell's completion machinery, and is a no-op otherwise.
func completion() {
	globalFlags := map[string]complete.Predictor{
		"config":    predict.Something,
		"state-dir": predict.Dirs("*"),
		"v":         predict.Nothing,
	}
	tx := map[string]complete.Predictor{
		"date":    predict.Something,
		"ket":     predict.Something,
		"nominal": predict.Something,
		"pihak":   predict.Something,
		"sumber":  predict.Set{"ATM", "CASH"},
		"jenis":   predict.Set{"debit", "kredit"},
	}
	c := &complete.Command{
		Flags: globalFlags,
		Sub: map[string]*complete.Command{
			"sheets": {},
			"show": {Flags: map[string]complete.Predictor{
				"sheet": predict.Something,
				"plain": predict.Nothing,
			}},
			"use":    {},
			"add":    {Flags: tx},
			"edit":   {Flags: tx},
			"delete": {Flags: map[string]complete.Predictor{"yes": predict.Nothing}},
			"settings": {Flags: map[string]complete.Predictor{
				"title":    predict.Something,
				"subtitle": predict.Something,
				"photo":    predict.Something,
				"pin":      predict.Something,
				"pihak1":   predict.Something,
				"pihak2":   predict.Something,
			}},
			"assist": {},
			"topic":  {Args: predict.Set{"readme", "endpoint", "pin", "sync"}},
		},
	}
	c.Complete("kas")
}
