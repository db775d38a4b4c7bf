package balance

import (
	"math"

	"github.com/okian/rondo/internal/domain/model"
)

// Fairness scores a partition; lower is strictly better. It combines the
// spread of team skill totals with the mean spread of scores inside each
// team, weighted by homogeneityWeight. Spread is the population standard
// deviation.
func Fairness(teams [][]model.Profile, homogeneityWeight float64) (score float64, sums []float64, avg float64) {
	if len(teams) == 0 {
		return 0, nil, 0
	}

	sums = make([]float64, len(teams))
	internal := 0.0
	for i, team := range teams {
		scores := make([]float64, len(team))
		for j, p := range team {
			sums[i] += p.FinalScore
			scores[j] = p.FinalScore
		}
		internal += stddev(scores)
	}
	internal /= float64(len(teams))

	avg = mean(sums)
	score = stddev(sums) + homogeneityWeight*internal
	return score, sums, avg
}

// teamRange returns max-min final score of one team's members.
func teamRange(team []model.Profile) float64 {
	if len(team) == 0 {
		return 0
	}
	lo, hi := team[0].FinalScore, team[0].FinalScore
	for _, p := range team[1:] {
		if p.FinalScore < lo {
			lo = p.FinalScore
		}
		if p.FinalScore > hi {
			hi = p.FinalScore
		}
	}
	return hi - lo
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	variance := 0.0
	for _, v := range values {
		d := v - m
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(values)))
}
