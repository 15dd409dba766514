package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

const (
	keyEnv      = "STRUCTMAP_KEY"
	passwordEnv = "STRUCTMAP_MAIL_PASSWORD"
)

type MainConfig struct {
	Verbose bool `cli:"name=v aliases=verbose desc='log debug messages'"`
	NoColor bool `cli:"name=nocolor desc='disable colored status output'"`

	Main *cli.Command
}

// status returns a printer highlighting status lines when w is a terminal
func (cfg *MainConfig) status(w io.Writer) func(format string, args ...any) string {
	plain := color.New()
	plain.DisableColor()
	if cfg.NoColor {
		return plain.Sprintf
	}
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return plain.Sprintf
	}
	highlight := color.New(color.FgGreen, color.Bold)
	highlight.EnableColor()
	return highlight.Sprintf
}

type HashConfig struct {
	*MainConfig
	Salt string `cli:"name=s aliases=salt desc='salt prepended to each text'"`

	Hash *cli.Command
}

type SaltConfig struct {
	*MainConfig
	Length int `cli:"name=n desc='number of random bytes'"`

	Salt *cli.Command
}

type CipherConfig struct {
	*MainConfig
	Key    string `cli:"name=k aliases=key desc='16, 24 or 32 byte key, defaults to $STRUCTMAP_KEY'"`
	ZeroIV bool   `cli:"name=z aliases=zeroiv desc='legacy format with an all-zero IV'"`

	Cmd *cli.Command
}

func (cfg *CipherConfig) key() string {
	if cfg.Key != "" {
		return cfg.Key
	}
	return os.Getenv(keyEnv)
}

type SendConfig struct {
	*MainConfig
	Config string `cli:"name=c aliases=config desc='mail relay YAML config'"`
	From   string `cli:"name=f aliases=from desc='sender address'"`

	Send *cli.Command
}
