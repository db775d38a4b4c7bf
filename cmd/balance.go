package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/okian/rondo/internal/adapters/report"
	service "github.com/okian/rondo/internal/app"
	"github.com/okian/rondo/internal/domain/roster"
	"github.com/okian/rondo/pkg/logger"
)

var (
	inputFlag = &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "Path to the roster JSON file",
		Value:   "players.json",
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Path for the assignment JSON report",
		Value:   "balanced_teams.json",
	}

	teamsFlag = &cli.IntFlag{
		Name:  "teams",
		Usage: "Number of teams to build",
		Value: 8,
	}

	sizeFlag = &cli.IntFlag{
		Name:  "size",
		Usage: "Number of competitors per team",
		Value: 5,
	}

	iterationsFlag = &cli.IntFlag{
		Name:        "iterations",
		Usage:       "Optimizer budget (0 disables refinement, leaving the draft order)",
		Value:       -1,
		DefaultText: "from config",
	}

	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Optimizer seed; the same roster and seed reproduce the same teams",
		Value: 42,
	}

	balanceCmd = &cli.Command{
		Name:    "balance",
		Aliases: []string{"b"},
		Usage:   "Score a roster and partition it into balanced teams",
		Action:  cmdBalance,
		Flags: []cli.Flag{
			inputFlag,
			outputFlag,
			teamsFlag,
			sizeFlag,
			iterationsFlag,
			seedFlag,
		},
	}
)

func cmdBalance(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	serveMetrics(c.Context, c.String(metricsAddrFlag.Name))
	log := logger.Named("balance")

	profiles, err := roster.ParseFile(c.String(inputFlag.Name))
	if err != nil {
		return err
	}
	log.Info(c.Context, "roster loaded",
		logger.String("input", c.String(inputFlag.Name)),
		logger.Int("competitors", len(profiles)))

	opts := []service.Option{
		service.WithTeamCount(c.Int(teamsFlag.Name)),
		service.WithTeamSize(c.Int(sizeFlag.Name)),
		service.WithSeed(c.Int64(seedFlag.Name)),
	}
	if n := c.Int(iterationsFlag.Name); n >= 0 {
		opts = append(opts, service.WithIterations(n))
	}

	svc := service.New(cfg, opts...)
	res, err := svc.Run(c.Context, profiles)
	if err != nil {
		return err
	}

	if err := report.WriteTable(os.Stdout, res.Assignment); err != nil {
		return err
	}

	out := c.String(outputFlag.Name)
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()
	if err := report.WriteJSON(f, report.FromModel(res.Assignment, res.RunID)); err != nil {
		return err
	}

	log.Info(c.Context, "assignment written",
		logger.String("run_id", res.RunID),
		logger.String("output", out),
		logger.Float64("fairness", res.Assignment.Fairness))
	return nil
}
