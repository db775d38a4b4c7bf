package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// Analysis summarizes the balance quality of a saved assignment.
type Analysis struct {
	Fairness      float64
	AverageSkill  float64
	TeamRanges    []float64
	MeanRange     float64
	MaxRange      float64
	MinRange      float64
	TeamsOverMean int
}

// Analyze computes per-team and summary balance statistics from a report.
func Analyze(a Assignment) Analysis {
	out := Analysis{
		Fairness:     a.Fairness,
		AverageSkill: a.AverageSkill,
		TeamRanges:   make([]float64, 0, len(a.Teams)),
	}
	for _, t := range a.Teams {
		out.TeamRanges = append(out.TeamRanges, playersRange(t.Players))
	}
	if len(out.TeamRanges) == 0 {
		return out
	}

	out.MinRange = out.TeamRanges[0]
	out.MaxRange = out.TeamRanges[0]
	sum := 0.0
	for _, r := range out.TeamRanges {
		sum += r
		out.MinRange = math.Min(out.MinRange, r)
		out.MaxRange = math.Max(out.MaxRange, r)
	}
	out.MeanRange = sum / float64(len(out.TeamRanges))
	for _, r := range out.TeamRanges {
		if r > out.MeanRange {
			out.TeamsOverMean++
		}
	}
	return out
}

// WriteAnalysis renders the balance analysis of a saved assignment.
func WriteAnalysis(w io.Writer, a Assignment) error {
	analysis := Analyze(a)
	rule := strings.Repeat("=", 80)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nTEAM BALANCE ANALYSIS\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "Overall Fairness Score: %.2f\n", analysis.Fairness)
	fmt.Fprintf(&b, "Average Team Skill:     %.2f\n\n", analysis.AverageSkill)

	for i, t := range a.Teams {
		scores := make([]float64, len(t.Players))
		for j, p := range t.Players {
			scores[j] = p.FinalScore
		}
		sort.Float64s(scores)

		fmt.Fprintf(&b, "Team %d:\n", t.Number)
		fmt.Fprintf(&b, "  Total Skill: %.2f\n", t.TotalSkill)
		fmt.Fprintf(&b, "  Scores:      %s\n", formatScores(scores))
		fmt.Fprintf(&b, "  Range:       %.1f\n\n", analysis.TeamRanges[i])
	}

	fmt.Fprintf(&b, "%s\nSUMMARY\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Mean internal range: %.2f\n", analysis.MeanRange)
	fmt.Fprintf(&b, "Max internal range:  %.2f\n", analysis.MaxRange)
	fmt.Fprintf(&b, "Min internal range:  %.2f\n", analysis.MinRange)
	fmt.Fprintf(&b, "Teams above mean:    %d/%d\n", analysis.TeamsOverMean, len(a.Teams))

	_, err := io.WriteString(w, b.String())
	return err
}

func playersRange(players []Member) float64 {
	if len(players) == 0 {
		return 0
	}
	lo, hi := players[0].FinalScore, players[0].FinalScore
	for _, p := range players[1:] {
		lo = math.Min(lo, p.FinalScore)
		hi = math.Max(hi, p.FinalScore)
	}
	return hi - lo
}

func formatScores(scores []float64) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = fmt.Sprintf("%.1f", s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
