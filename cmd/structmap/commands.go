package main

import (
	"github.com/scott-cotton/cli"
	"github.com/viant/structmap/digest"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "structmap").
		WithSynopsis("structmap [opts] command [opts]").
		WithDescription("structmap runs the hashing, cipher and mail services.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return structmapMain(cfg, cc, args)
		}).
		WithSubs(
			HashCommand(cfg),
			SaltCommand(cfg),
			EncryptCommand(cfg),
			DecryptCommand(cfg),
			SendCommand(cfg))
}

func HashCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &HashConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Hash, "hash").
		WithAliases("h").
		WithSynopsis("hash [-s salt] texts...").
		WithDescription("print uppercase hex SHA-256 of salt followed by each text").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return hash(cfg, cc, args)
		})
}

func SaltCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SaltConfig{MainConfig: mainCfg, Length: digest.DefaultSaltLength}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Salt, "salt").
		WithSynopsis("salt [-n bytes]").
		WithDescription("print a random base64 salt").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return salt(cfg, cc, args)
		})
}

func EncryptCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CipherConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Cmd, "encrypt").
		WithAliases("enc").
		WithSynopsis("encrypt [-k key] [-z] texts...").
		WithDescription("encrypt texts with AES-CBC, printing base64 cipher texts").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return encrypt(cfg, cc, args)
		})
}

func DecryptCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CipherConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Cmd, "decrypt").
		WithAliases("dec").
		WithSynopsis("decrypt [-k key] [-z] ciphertexts...").
		WithDescription("decrypt base64 cipher texts produced by encrypt").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return decrypt(cfg, cc, args)
		})
}

func SendCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SendConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Send, "send").
		WithSynopsis("send [-c config.yaml] -f from message.json...").
		WithDescription("send JSON messages through the SMTP relay, password is read from $STRUCTMAP_MAIL_PASSWORD").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return send(cfg, cc, args)
		})
}
