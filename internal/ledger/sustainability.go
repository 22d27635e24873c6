package ledger

import (
	"strings"

	"spendwise/internal/core"
)

const (
	baseScore = 50.0
	minScore  = 0.0
	maxScore  = 100.0
)

// WeightRule adjusts the score for expenses whose category contains
// Substring.
type WeightRule struct {
	Substring string
	Weight    float64
}

// sustainRules are checked in order and only the first hit counts, so a
// category such as "Transport - Public Train/Bus" scores as "Public".
var sustainRules = []WeightRule{
	{"Home Cooking", 2},
	{"Public", 2},
	{"Train/Bus", 1.5},
	{"Delivery", -1.5},
	{"Cab/Auto", -1},
	{"Flight", -3},
}

// CategoryWeight returns the weight of the first rule whose substring the
// category contains, or 0.
func CategoryWeight(category string) float64 {
	if category == "" {
		return 0
	}
	for _, r := range sustainRules {
		if strings.Contains(category, r.Substring) {
			return r.Weight
		}
	}
	return 0
}

// SustainabilityScore starts at 50, adds the category weight of every
// expense and clamps the result to [0, 100]. It reports false for an empty
// list. Income never moves the score.
func SustainabilityScore(txs []core.Transaction) (float64, bool) {
	if len(txs) == 0 {
		return 0, false
	}
	score := baseScore
	for _, t := range txs {
		if t.Type == core.Expense {
			score += CategoryWeight(t.Category)
		}
	}
	return max(minScore, min(maxScore, score)), true
}

// Verdict is the one-line advice shown under the score.
func Verdict(score float64, ok bool) string {
	switch {
	case !ok:
		return "Cook more at home and prefer public transport to boost sustainability."
	case score >= 75:
		return "Nice! Your spending choices are quite planet-friendly."
	case score >= 50:
		return "Decent balance. Small changes in commute and food habits can improve this."
	default:
		return "Try cutting down on deliveries, cabs and flights to improve your sustainability."
	}
}
