package balance

import (
	"fmt"

	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/pkg/metrics"
)

// Replace swaps the named departing member of one team for a fully scored
// substitute. Only the affected team's membership and total are rebuilt; every
// other team is reused as-is. The global fairness and average are recomputed
// over the patched partition. This is a local patch, not a re-optimization:
// the resulting fairness is not guaranteed optimal.
func Replace(a model.Assignment, teamNumber int, departing string, substitute model.Profile, homogeneityWeight float64) (model.Assignment, error) {
	teamIdx := -1
	for i, t := range a.Teams {
		if t.Number == teamNumber {
			teamIdx = i
			break
		}
	}
	if teamIdx < 0 {
		return model.Assignment{}, fmt.Errorf("%w: team %d", ErrTeamNotFound, teamNumber)
	}

	memberIdx := -1
	for i, m := range a.Teams[teamIdx].Members {
		if m.Name == departing {
			memberIdx = i
			break
		}
	}
	if memberIdx < 0 {
		return model.Assignment{}, fmt.Errorf("%w: %q is not in team %d", ErrMemberNotFound, departing, teamNumber)
	}

	patched := model.Assignment{Teams: make([]model.Team, len(a.Teams))}
	copy(patched.Teams, a.Teams)

	members := make([]model.Profile, len(a.Teams[teamIdx].Members))
	copy(members, a.Teams[teamIdx].Members)
	members[memberIdx] = substitute

	total := 0.0
	for _, m := range members {
		total += m.FinalScore
	}
	patched.Teams[teamIdx] = model.Team{
		Number:     teamNumber,
		Members:    members,
		TotalSkill: total,
	}

	grouped := make([][]model.Profile, len(patched.Teams))
	for i, t := range patched.Teams {
		grouped[i] = t.Members
	}
	fairness, _, avg := Fairness(grouped, homogeneityWeight)
	patched.Fairness = fairness
	patched.AverageSkill = avg

	metrics.RecordReplacement()
	metrics.SetFairnessScore(fairness)
	return patched, nil
}
