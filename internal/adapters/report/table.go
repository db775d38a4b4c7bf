package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/okian/rondo/internal/domain/model"
)

const tableWidth = 132

// rankShortener compacts rank names so the table columns stay aligned.
var rankShortener = strings.NewReplacer(
	"Ascendant", "Asc",
	"Immortal", "Imm",
	"Diamond", "Dia",
	"Platinum", "Plat",
	"Bronze", "Brz",
	"Silver", "Slv",
	"Radiant", "Rad",
)

// WriteTable renders a human-readable fixed-width report of the assignment.
func WriteTable(w io.Writer, a model.Assignment) error {
	var b strings.Builder
	rule := strings.Repeat("=", tableWidth)

	teamSize := 0
	if len(a.Teams) > 0 {
		teamSize = len(a.Teams[0].Members)
	}

	fmt.Fprintf(&b, "%s\nBALANCED TEAMS\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "Number of Teams:    %d\n", len(a.Teams))
	fmt.Fprintf(&b, "Team Size:          %d\n", teamSize)
	fmt.Fprintf(&b, "Total Competitors:  %d\n", a.Size())
	fmt.Fprintf(&b, "Average Team Skill: %.2f\n", a.AverageSkill)
	fmt.Fprintf(&b, "Fairness Score:     %.2f (lower = better)\n\n", a.Fairness)

	for _, team := range a.Teams {
		deviation := team.TotalSkill - a.AverageSkill
		fmt.Fprintf(&b, "%s\nTeam %d  (Total Skill: %.2f, Deviation: %+.2f, Range: %.1f)\n%s\n",
			rule, team.Number, team.TotalSkill, deviation, team.Range(), rule)
		fmt.Fprintf(&b, "%-20s | %-22s | %5s | %4s | %5s | %5s | %4s | %4s | %6s | %5s\n",
			"Competitor", "Rank (Cur->Peak)", "KD", "ACS", "WR%", "HS%", "R", "S", "Smurf", "Final")
		fmt.Fprintln(&b, strings.Repeat("-", tableWidth))

		for _, m := range team.Members {
			peak := m.RankPeak
			if peak == "" {
				peak = m.RankCurrent
			}
			rankDisplay := rankShortener.Replace(m.RankCurrent) + "->" + rankShortener.Replace(peak)

			flag := " "
			if m.Suspected {
				flag = "!"
			}
			fmt.Fprintf(&b, "%-20s | %-22s | %5.2f | %4s | %5s | %5s | %4.0f | %4.0f | %5.0f%s | %5.1f\n",
				m.Name, rankDisplay, m.KDRatio,
				optDisplay(m.CombatScore, "%4.0f", "  --"),
				optDisplay(m.WinRate, "%5.1f", "   --"),
				optDisplay(m.HeadshotRate, "%5.1f", "   --"),
				m.RankScore, m.StatsScore, m.Suspicion, flag, m.FinalScore)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "%s\n", rule)
	_, err := io.WriteString(w, b.String())
	return err
}

// optDisplay formats an optional stat or a placeholder when absent.
func optDisplay(v *float64, format, missing string) string {
	if v == nil {
		return missing
	}
	return fmt.Sprintf(format, *v)
}
