// Package cmd implements the CLI application to operate the cash ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/kasku-app/kasku"
	"github.com/kasku-app/kasku/gas"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&sheetsCmd{}, "ledger")
	c.Register(&showCmd{}, "ledger")
	c.Register(&useCmd{}, "ledger")

	c.Register(&addCmd{}, "transactions")
	c.Register(&editCmd{}, "transactions")
	c.Register(&deleteCmd{}, "transactions")

	c.Register(&settingsCmd{}, "settings")
	c.Register(&assistCmd{}, "assist")
	c.Register(&topicCmd{}, "docs")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFlag = flag.String("config", "", "Deployment identifier of the ledger endpoint.\n If missing it is read from the KAS_CONFIG environment variable or from config.yaml under the kas config directory.")
var stateDirFlag = flag.String("state-dir", "", "Directory for local state (last selected sheet). Defaults under the user config directory.")
var Verbose = flag.Bool("v", false, "Enable debug logging.")

var viperOnce bool

// settings loads the optional config file and environment once.
func settings() *viper.Viper {
	if !viperOnce {
		viperOnce = true
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "kas"))
		}
		viper.SetEnvPrefix("kas")
		viper.AutomaticEnv()
		// A missing config file is fine: flags and env can carry everything.
		_ = viper.ReadInConfig()
	}
	return viper.GetViper()
}

// Logger returns the application logger, console-formatted on stderr. The
// default level only lets warnings through; -v opens up debug.
func Logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// DeploymentID resolves the endpoint deployment identifier: flag, then env,
// then config file. Empty means the startup is misconfigured.
func DeploymentID() string {
	if *configFlag != "" {
		return *configFlag
	}
	return settings().GetString("config")
}

// StateDir resolves where the last-selected-sheet slot lives.
func StateDir() string {
	if *stateDirFlag != "" {
		return *stateDirFlag
	}
	if dir := settings().GetString("state_dir"); dir != "" {
		return dir
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".kas"
	}
	return filepath.Join(dir, "kas")
}

// NewController wires the endpoint client, the local store and the
// controller. A missing deployment identifier fails here, before any
// network call.
func NewController() (*kasku.Controller, error) {
	log := Logger()
	client, err := gas.New(DeploymentID(), log)
	if err != nil {
		return nil, err
	}
	store, err := kasku.NewStateStore(StateDir())
	if err != nil {
		return nil, err
	}
	return kasku.NewController(client, store, log), nil
}

// StartSession performs the strict startup sequence every data command goes
// through: configuration bootstrap, then the PIN gate, then the first sheet
// listing and load. Never concurrent, never reordered.
func StartSession(ctx context.Context) (*kasku.Controller, error) {
	c, err := NewController()
	if err != nil {
		return nil, err
	}
	if err := c.Bootstrap(ctx); err != nil {
		return nil, err
	}
	if err := resolveGate(c.Gate()); err != nil {
		return nil, err
	}
	if err := c.ListSheets(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// printMarkdown renders markdown for the terminal through glamour, falling
// back to the raw text when stdout is not a terminal or rendering fails.
func printMarkdown(md string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// toast prints the short transient-style feedback messages the ledger always
// used ("Tersimpan", "Lengkapi Data", ...).
func toast(msg string) {
	fmt.Fprintf(os.Stderr, "✅ %s\n", msg)
}

func warn(msg string) {
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}

// fail reports err the way every command does and picks the exit status.
// Validation problems are warnings, not failures of the endpoint.
func fail(err error) subcommands.ExitStatus {
	if kasku.IsValidation(err) {
		warn(err.Error())
		return subcommands.ExitUsageError
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
