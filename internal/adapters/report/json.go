// Package report renders team assignments for external consumers. The JSON
// record and the text table are pure projections of the same assignment; the
// core never depends on either shape.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/rondo/internal/domain/model"
)

// Member is the serialized view of one assigned competitor.
type Member struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Rank       string  `json:"rank_current"`
	Suspicion  float64 `json:"suspicion_score"`
	Suspected  bool    `json:"suspected,omitempty"`
	FinalScore float64 `json:"final_skill_score"`
}

// Team is the serialized view of one team.
type Team struct {
	Number     int      `json:"team_number"`
	TotalSkill float64  `json:"total_skill"`
	Players    []Member `json:"players"`
}

// Assignment is the serialized view of a full partition.
type Assignment struct {
	RunID        string  `json:"run_id,omitempty"`
	Fairness     float64 `json:"fairness_score"`
	AverageSkill float64 `json:"average_team_skill"`
	Teams        []Team  `json:"teams"`
}

// FromModel projects a domain assignment into its serialized view.
func FromModel(a model.Assignment, runID string) Assignment {
	out := Assignment{
		RunID:        runID,
		Fairness:     a.Fairness,
		AverageSkill: a.AverageSkill,
		Teams:        make([]Team, len(a.Teams)),
	}
	for i, t := range a.Teams {
		team := Team{
			Number:     t.Number,
			TotalSkill: t.TotalSkill,
			Players:    make([]Member, len(t.Members)),
		}
		for j, m := range t.Members {
			team.Players[j] = Member{
				ID:         m.ID,
				Name:       m.Name,
				Rank:       m.RankCurrent,
				Suspicion:  m.Suspicion,
				Suspected:  m.Suspected,
				FinalScore: m.FinalScore,
			}
		}
		out.Teams[i] = team
	}
	return out
}

// WriteJSON encodes the assignment as indented JSON.
func WriteJSON(w io.Writer, a Assignment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encoding assignment: %w", err)
	}
	return nil
}

// ReadJSON decodes a previously written assignment report.
func ReadJSON(r io.Reader) (Assignment, error) {
	var a Assignment
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return Assignment{}, fmt.Errorf("%w: %w", ErrMalformedReport, err)
	}
	if len(a.Teams) == 0 {
		return Assignment{}, fmt.Errorf("%w: no teams", ErrMalformedReport)
	}
	return a, nil
}

// ToModel rebuilds a domain assignment from a report by resolving each member
// against a fully scored roster. Members missing from the roster are an
// error: a report alone does not carry enough fields to rescore anyone.
func (a Assignment) ToModel(scored []model.Profile) (model.Assignment, error) {
	byName := make(map[string]model.Profile, len(scored))
	for _, p := range scored {
		byName[p.Name] = p
	}

	out := model.Assignment{
		Fairness:     a.Fairness,
		AverageSkill: a.AverageSkill,
		Teams:        make([]model.Team, len(a.Teams)),
	}
	for i, t := range a.Teams {
		team := model.Team{
			Number:     t.Number,
			Members:    make([]model.Profile, len(t.Players)),
			TotalSkill: t.TotalSkill,
		}
		for j, m := range t.Players {
			p, ok := byName[m.Name]
			if !ok {
				return model.Assignment{}, fmt.Errorf("%w: %q", ErrUnknownMember, m.Name)
			}
			team.Members[j] = p
		}
		out.Teams[i] = team
	}
	return out, nil
}
