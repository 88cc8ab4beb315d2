package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/paraglidehq/b32"
	"github.com/paraglidehq/b32/crockford"
	"github.com/paraglidehq/b32/internal/config"
	"github.com/paraglidehq/b32/internal/log"
)

type app struct {
	*cli.App
	cfg *config.Config
	log log.Logger
}

func newApp(stdout, stderr io.Writer) *app {
	a := &app{}
	a.log, _ = log.New(stderr, "")

	groupFlag := func() cli.Flag {
		return &cli.IntFlag{
			Name:    "group",
			Aliases: []string{"g"},
			Usage:   "insert a hyphen every `N` symbols (0 disables grouping)",
		}
	}

	a.App = &cli.App{
		Name:      "crockford",
		Usage:     "Crockford Base32 codes for decimal numbers",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to configuration file",
				EnvVars: []string{"CROCKFORD_CONFIG"},
				Value:   "crockford.yml",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "logging level (debug, info, warn, error)",
				EnvVars: []string{"CROCKFORD_LOG_LEVEL"},
			},
		},
		Before: func(ctx *cli.Context) error {
			var err error
			a.cfg, err = config.Load(ctx.String("config"), !ctx.IsSet("config"))
			if err != nil {
				return err
			}
			level := ctx.String("log-level")
			if level == "" {
				level = a.cfg.Log.Level
			}
			l, err := log.New(stderr, level)
			if err != nil {
				return err
			}
			a.log = l
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Aliases:   []string{"e"},
				Usage:     "Encode decimal numbers of at most ten digits",
				ArgsUsage: "NUMBER...",
				Flags:     []cli.Flag{groupFlag()},
				Action:    a.encode,
			},
			{
				Name:      "decode",
				Aliases:   []string{"d"},
				Usage:     "Decode codes back to decimal numbers",
				ArgsUsage: "CODE...",
				Action:    a.decode,
			},
			{
				Name:      "normalize",
				Aliases:   []string{"n"},
				Usage:     "Print the canonical form of codes",
				ArgsUsage: "CODE...",
				Flags:     []cli.Flag{groupFlag()},
				Action:    a.normalize,
			},
			{
				Name:  "next",
				Usage: "Issue sequential codes",
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "start", Usage: "first code to issue"},
					&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 1, Usage: "number of codes to issue"},
					&cli.Uint64Flag{Name: "key", Usage: "obfuscation key (0 disables obfuscation)", EnvVars: []string{"CROCKFORD_KEY"}},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output format (crockford, decimal, base58)"},
				},
				Action: a.next,
			},
			{
				Name:  "config",
				Usage: "Show the effective configuration",
				Action: func(ctx *cli.Context) error {
					return config.Encode(ctx.App.Writer, a.cfg)
				},
			},
		},
	}
	return a
}

func (a *app) group(ctx *cli.Context) int {
	if ctx.IsSet("group") {
		return ctx.Int("group")
	}
	return a.cfg.Encoding.Group
}

func (a *app) encode(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("encode: missing NUMBER argument")
	}
	size := a.group(ctx)
	for _, arg := range ctx.Args().Slice() {
		s, err := crockford.Encode(arg)
		if err != nil {
			return err
		}
		a.log.Debug().Str("input", arg).Str("output", s).Msg("encoded")
		fmt.Fprintln(ctx.App.Writer, crockford.Group(s, size))
	}
	return nil
}

func (a *app) decode(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("decode: missing CODE argument")
	}
	for _, arg := range ctx.Args().Slice() {
		s, err := crockford.Decode(arg)
		if err != nil {
			return err
		}
		a.log.Debug().Str("input", arg).Str("output", s).Msg("decoded")
		fmt.Fprintln(ctx.App.Writer, s)
	}
	return nil
}

func (a *app) normalize(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("normalize: missing CODE argument")
	}
	size := a.group(ctx)
	for _, arg := range ctx.Args().Slice() {
		s, err := crockford.Normalize(arg)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, crockford.Group(s, size))
	}
	return nil
}

func (a *app) next(ctx *cli.Context) error {
	cfg := *a.cfg.Generator
	if ctx.IsSet("start") {
		start := ctx.Uint64("start")
		cfg.Start = &start
	}
	if ctx.IsSet("key") {
		cfg.Key = ctx.Uint64("key")
	}
	if ctx.IsSet("format") {
		cfg.Format = b32.Format(ctx.String("format"))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	count := ctx.Int("count")
	if count < 1 {
		return fmt.Errorf("next: count must be positive, got %d", count)
	}

	var o *b32.Obfuscator
	if cfg.Key != 0 {
		o = b32.NewObfuscator(cfg.Key)
	}
	gen := b32.NewGenerator(b32.Code(*cfg.Start))
	for i := 0; i < count; i++ {
		c, err := gen.Generate()
		if err != nil {
			return err
		}
		if o != nil {
			c = o.Obfuscate(c)
		}
		fmt.Fprintln(ctx.App.Writer, c.Format(cfg.Format))
	}
	a.log.Info().Uint64("start", *cfg.Start).Int("count", count).Bool("obfuscated", o != nil).Msg("issued codes")
	return nil
}
