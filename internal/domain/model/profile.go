// Package model contains domain models passed between pipeline stages.
package model

import "github.com/okian/rondo/internal/domain/types"

// Profile represents one competitor with raw inputs and derived scores.
// Derived fields are populated by the scoring pipeline in a fixed order and
// must not be read before the pipeline has run.
type Profile struct {
	// Identity.
	ID   int
	Name string

	// Rank data.
	RankCurrent string
	RankPeak    string // empty means unknown; rank score falls back to current

	// Performance stats.
	KDRatio      float64
	CombatScore  *float64 // average combat score, nil if unavailable
	WinRate      *float64 // percentage 0-100
	HeadshotRate *float64 // percentage 0-100

	// Account metadata.
	AccountLevel  *int
	RankedMatches *int

	// Admin evaluation.
	AdminRating *int // 1-10
	Familiarity *int // 1-5

	// Derived fields, populated by the scoring pipeline.
	Tier           types.Tier
	RankScore      float64
	StatsScore     float64
	CommunityScore *float64 // nil when no admin rating exists
	Suspicion      float64  // 0-100
	Suspected      bool
	EngineScore    float64
	FinalScore     float64
}

// Team is one fixed-size group of an assignment.
type Team struct {
	Number     int
	Members    []Profile
	TotalSkill float64
}

// Range returns the spread between the strongest and weakest member.
func (t Team) Range() float64 {
	if len(t.Members) == 0 {
		return 0
	}
	minScore, maxScore := t.Members[0].FinalScore, t.Members[0].FinalScore
	for _, m := range t.Members[1:] {
		if m.FinalScore < minScore {
			minScore = m.FinalScore
		}
		if m.FinalScore > maxScore {
			maxScore = m.FinalScore
		}
	}
	return maxScore - minScore
}

// Assignment is a full partition of the roster into teams.
type Assignment struct {
	Teams        []Team
	Fairness     float64 // lower is better
	AverageSkill float64 // mean of team totals
}

// Size reports the total number of assigned competitors.
func (a Assignment) Size() int {
	n := 0
	for _, t := range a.Teams {
		n += len(t.Members)
	}
	return n
}
