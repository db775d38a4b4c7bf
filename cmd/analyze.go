package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/okian/rondo/internal/adapters/report"
)

var analyzeCmd = &cli.Command{
	Name:    "analyze",
	Aliases: []string{"an"},
	Usage:   "Summarize the balance quality of a saved assignment",
	Action:  cmdAnalyze,
	Flags: []cli.Flag{
		assignmentFlag,
	},
}

func cmdAnalyze(c *cli.Context) error {
	if _, err := loadConfig(c); err != nil {
		return err
	}

	f, err := os.Open(c.String(assignmentFlag.Name))
	if err != nil {
		return fmt.Errorf("opening assignment report: %w", err)
	}
	defer f.Close()

	rep, err := report.ReadJSON(f)
	if err != nil {
		return err
	}
	return report.WriteAnalysis(os.Stdout, rep)
}
