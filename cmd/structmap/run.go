package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/viant/structmap/aescrypt"
	"github.com/viant/structmap/digest"
	"github.com/viant/structmap/mail"
)

func structmapMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logLevel.Set(slog.LevelDebug)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func hash(cfg *HashConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Hash.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: hash requires at least one text", cli.ErrUsage)
	}
	for _, text := range args {
		fmt.Fprintln(cc.Out, digest.SHA256Hex(text, cfg.Salt))
	}
	return nil
}

func salt(cfg *SaltConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Salt.Parse(cc, args); err != nil {
		return err
	}
	value, err := digest.GenerateSalt(cfg.Length)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	fmt.Fprintln(cc.Out, value)
	return nil
}

func encrypt(cfg *CipherConfig, cc *cli.Context, args []string) error {
	return transform(cfg, cc, args, "encrypt", aescrypt.Encrypt)
}

func decrypt(cfg *CipherConfig, cc *cli.Context, args []string) error {
	return transform(cfg, cc, args, "decrypt", aescrypt.Decrypt)
}

func transform(cfg *CipherConfig, cc *cli.Context, args []string, name string, fn func(string, string, ...aescrypt.Option) (string, error)) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: %s requires at least one argument", cli.ErrUsage, name)
	}
	var opts []aescrypt.Option
	if cfg.ZeroIV {
		theLog.Warn("using zero IV legacy format")
		opts = append(opts, aescrypt.WithZeroIV())
	}
	key := cfg.key()
	for _, arg := range args {
		result, err := fn(arg, key, opts...)
		if errors.Is(err, aescrypt.ErrInvalidKey) {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cc.Out, result)
	}
	return nil
}

func send(cfg *SendConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Send.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.From == "" || len(args) == 0 {
		return fmt.Errorf("%w: send requires -f from and at least one message file", cli.ErrUsage)
	}
	relay := mail.DefaultConfig()
	if cfg.Config != "" {
		if relay, err = mail.LoadConfig(cfg.Config); err != nil {
			return err
		}
	}
	sender := mail.NewSender(relay, mail.WithLogger(theLog))
	status := cfg.status(cc.Out)
	ctx := context.Background()
	for _, arg := range args {
		data, err := readInput(arg)
		if err != nil {
			return err
		}
		msg, err := mail.ParseMessage(data)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", arg, err)
		}
		if err = sender.Send(ctx, msg, cfg.From, os.Getenv(passwordEnv)); err != nil {
			return fmt.Errorf("error sending %s: %w", arg, err)
		}
		fmt.Fprintln(cc.Out, status("sent %s to %d recipient(s)", arg, len(msg.Recipients())))
	}
	return nil
}

func readInput(location string) ([]byte, error) {
	if location == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(location)
}
