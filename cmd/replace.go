package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/okian/rondo/internal/adapters/report"
	service "github.com/okian/rondo/internal/app"
	"github.com/okian/rondo/internal/domain/balance"
	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/internal/domain/roster"
	"github.com/okian/rondo/pkg/logger"
)

var (
	assignmentFlag = &cli.StringFlag{
		Name:    "assignment",
		Aliases: []string{"a"},
		Usage:   "Path to a previously written assignment JSON report",
		Value:   "balanced_teams.json",
	}

	departingFlag = &cli.StringFlag{
		Name:     "departing",
		Usage:    "Name of the member leaving their team",
		Required: true,
	}

	substituteFlag = &cli.StringFlag{
		Name:     "substitute",
		Usage:    "Name of the unassigned roster competitor taking the open slot",
		Required: true,
	}

	teamFlag = &cli.IntFlag{
		Name:        "team",
		Usage:       "Team number to modify",
		DefaultText: "located from the departing member",
	}

	replaceOutputFlag = &cli.StringFlag{
		Name:        "output",
		Aliases:     []string{"o"},
		Usage:       "Path for the updated assignment report",
		DefaultText: "overwrites --assignment",
	}

	replaceCmd = &cli.Command{
		Name:    "replace",
		Aliases: []string{"r"},
		Usage:   "Swap one assigned member for an unassigned substitute",
		Action:  cmdReplace,
		Flags: []cli.Flag{
			inputFlag,
			assignmentFlag,
			departingFlag,
			substituteFlag,
			teamFlag,
			replaceOutputFlag,
		},
	}
)

func cmdReplace(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	serveMetrics(c.Context, c.String(metricsAddrFlag.Name))
	log := logger.Named("replace")

	profiles, err := roster.ParseFile(c.String(inputFlag.Name))
	if err != nil {
		return err
	}

	svc := service.New(cfg)
	scored, err := svc.ScoreAll(c.Context, profiles)
	if err != nil {
		return err
	}

	rf, err := os.Open(c.String(assignmentFlag.Name))
	if err != nil {
		return fmt.Errorf("opening assignment report: %w", err)
	}
	rep, err := report.ReadJSON(rf)
	rf.Close()
	if err != nil {
		return err
	}

	assignment, err := rep.ToModel(scored)
	if err != nil {
		return err
	}

	departing := c.String(departingFlag.Name)
	substitute, err := pickSubstitute(assignment, scored, c.String(substituteFlag.Name))
	if err != nil {
		return err
	}

	teamNumber := c.Int(teamFlag.Name)
	if teamNumber == 0 {
		if teamNumber, err = teamOf(assignment, departing); err != nil {
			return err
		}
	}

	updated, err := svc.Replace(c.Context, assignment, teamNumber, departing, substitute)
	if err != nil {
		return err
	}

	if err := report.WriteTable(os.Stdout, updated); err != nil {
		return err
	}

	out := c.String(replaceOutputFlag.Name)
	if out == "" {
		out = c.String(assignmentFlag.Name)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()
	if err := report.WriteJSON(f, report.FromModel(updated, rep.RunID)); err != nil {
		return err
	}

	log.Info(c.Context, "member replaced",
		logger.String("departing", departing),
		logger.String("substitute", substitute.Name),
		logger.Int("team", teamNumber),
		logger.Float64("fairness_before", assignment.Fairness),
		logger.Float64("fairness_after", updated.Fairness))
	return nil
}

// pickSubstitute resolves the substitute against the scored roster and
// rejects competitors who already hold a slot.
func pickSubstitute(a model.Assignment, scored []model.Profile, name string) (model.Profile, error) {
	for _, t := range a.Teams {
		for _, m := range t.Members {
			if m.Name == name {
				return model.Profile{}, fmt.Errorf("%w: %q is already assigned to team %d",
					balance.ErrMemberNotFound, name, t.Number)
			}
		}
	}
	for _, p := range scored {
		if p.Name == name {
			return p, nil
		}
	}
	return model.Profile{}, fmt.Errorf("%w: %q is not on the roster", balance.ErrMemberNotFound, name)
}

// teamOf locates the team holding the departing member.
func teamOf(a model.Assignment, name string) (int, error) {
	for _, t := range a.Teams {
		for _, m := range t.Members {
			if m.Name == name {
				return t.Number, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", balance.ErrMemberNotFound, name)
}
