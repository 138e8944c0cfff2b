package scoring

import (
	"fmt"
	"math"
	"sort"

	"mindhaven/internal/apperr"
	"mindhaven/internal/model"
)

// HealthyThreshold splits the global severity index: below it the overall
// level is healthy, at or above it the level is at risk. Same scale as
// the option scores.
const HealthyThreshold = 2.0

const (
	LevelHealthy = "健康"
	LevelAtRisk  = "at-risk"
)

// Score computes the assessment result for the given active question set
// and answer map. Pure: identical input yields an identical result,
// narrative text included.
//
// Answer keys must reference questions in the active set; a foreign key
// is a caller bug and fails with apperr.ErrInvalidInput. An empty answer
// map is valid and scores as healthy.
func Score(questions []model.Question, answers map[int]int) (*model.AssessmentResult, error) {
	byID := make(map[int]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	for id := range answers {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: answer for question %d outside active set", apperr.ErrInvalidInput, id)
		}
	}

	// Per-factor accumulation over answered questions only.
	sums := make(map[model.Factor]int)
	counts := make(map[model.Factor]int)
	total := 0
	for id, score := range answers {
		f := byID[id].Factor
		sums[f] += score
		counts[f]++
		total += score
	}

	factorScores := make(map[model.Factor]model.FactorScore, len(counts))
	for f, count := range counts {
		factorScores[f] = model.FactorScore{
			Sum:     sums[f],
			Count:   count,
			Average: round2(float64(sums[f]) / float64(count)),
		}
	}

	// Flat average over every answered question, not per factor.
	index := 0.0
	if len(answers) > 0 {
		index = float64(total) / float64(len(answers))
	}

	level := LevelHealthy
	if index >= HealthyThreshold {
		level = LevelAtRisk
	}

	return &model.AssessmentResult{
		Level:                 level,
		WarmIntro:             warmIntroFor(level),
		DetailedAnalysis:      detailedFor(level, elevatedFactors(factorScores)),
		FactorScores:          factorScores,
		ComprehensiveAnalysis: comprehensiveFor(factorScores),
	}, nil
}

// elevatedFactors returns factors at or above the threshold, strongest
// first, ties broken by canonical factor order.
func elevatedFactors(scores map[model.Factor]model.FactorScore) []model.Factor {
	var out []model.Factor
	for _, f := range factorOrder {
		if s, ok := scores[f]; ok && s.Average >= HealthyThreshold {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return scores[out[i]].Average > scores[out[j]].Average
	})
	if len(out) > topFactorLimit {
		out = out[:topFactorLimit]
	}
	return out
}

// comprehensiveFor iterates answered factors in canonical order and maps
// each into its narrative bucket.
func comprehensiveFor(scores map[model.Factor]model.FactorScore) []model.FactorInsight {
	out := make([]model.FactorInsight, 0, len(scores))
	for _, f := range factorOrder {
		s, ok := scores[f]
		if !ok {
			continue
		}
		b := bucketNormal
		if s.Average >= HealthyThreshold {
			b = bucketElevated
		}
		entry := lookupInsight(f, b)
		entry.Score = s.Average
		out = append(out, entry)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
