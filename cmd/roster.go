package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/okian/rondo/internal/domain/roster"
	"github.com/okian/rondo/internal/rostergen"
	"github.com/okian/rondo/pkg/logger"
)

var (
	countFlag = &cli.IntFlag{
		Name:  "count",
		Usage: "Number of competitors to generate",
		Value: 40,
	}

	genSeedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Generator seed; count and seed together reproduce the roster",
		Value: 1,
	}

	genOutputFlag = &cli.StringFlag{
		Name:        "output",
		Aliases:     []string{"o"},
		Usage:       "Path for the generated roster JSON",
		DefaultText: "stdout",
	}

	rosterCmd = &cli.Command{
		Name:  "roster",
		Usage: "Roster utilities",
		Subcommands: []*cli.Command{
			{
				Name:    "gen",
				Aliases: []string{"g"},
				Usage:   "Generate a synthetic roster for demos and benchmarks",
				Action:  cmdRosterGen,
				Flags: []cli.Flag{
					countFlag,
					genSeedFlag,
					genOutputFlag,
				},
			},
		},
	}
)

func cmdRosterGen(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	gen := rostergen.New(cfg, c.Int64(genSeedFlag.Name))
	profiles := gen.Roster(c.Int(countFlag.Name))

	out := os.Stdout
	if path := c.String(genOutputFlag.Name); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating roster file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := roster.Write(out, profiles); err != nil {
		return err
	}

	logger.Named("roster").Info(c.Context, "roster generated",
		logger.Int("competitors", len(profiles)),
		logger.Int64("seed", c.Int64(genSeedFlag.Name)))
	return nil
}
