package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spendwise/internal/core"
)

func TestCategoryWeight(t *testing.T) {
	tests := []struct {
		category string
		want     float64
	}{
		{"Food - Home Cooking", 2},
		{"Transport - Public", 2},
		{"Transport - Train/Bus", 1.5},
		{"Food - Delivery", -1.5},
		{"Transport - Cab/Auto", -1},
		{"Travel - Flight", -3},
		{"Shopping", 0},
		{"", 0},
		// first rule wins when several substrings are present
		{"Public Train/Bus", 2},
		{"Delivery by Flight", -1.5},
		// matching is case sensitive
		{"home cooking", 0},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryWeight(tt.category))
		})
	}
}

func TestSustainabilityScoreEmpty(t *testing.T) {
	_, ok := SustainabilityScore(nil)
	assert.False(t, ok)
}

func TestSustainabilityScoreHomeCooking(t *testing.T) {
	for _, n := range []int{1, 10, 25, 26, 60} {
		txs := make([]core.Transaction, n)
		for i := range txs {
			txs[i] = tx(core.Expense, "10", "Food - Home Cooking", 0)
		}
		score, ok := SustainabilityScore(txs)
		assert.True(t, ok)
		assert.Equal(t, min(100, 50+2*float64(n)), score, "n=%d", n)
	}
}

func TestSustainabilityScoreBounds(t *testing.T) {
	var flights []core.Transaction
	for i := 0; i < 40; i++ {
		flights = append(flights, tx(core.Expense, "5000", "Travel - Flight", 0))
	}
	score, ok := SustainabilityScore(flights)
	assert.True(t, ok)
	assert.Equal(t, 0.0, score)

	mixed := []core.Transaction{
		tx(core.Expense, "1", "Transport - Train/Bus", 0),
		tx(core.Expense, "1", "Food - Delivery", 0),
		tx(core.Expense, "1", "Transport - Cab/Auto", 0),
	}
	score, _ = SustainabilityScore(mixed)
	assert.Equal(t, 49.0, score)
}

func TestSustainabilityScoreIgnoresIncome(t *testing.T) {
	txs := []core.Transaction{
		tx(core.Income, "100", "Travel - Flight", 0),
		tx(core.Income, "100", "Food - Home Cooking", 0),
	}
	score, ok := SustainabilityScore(txs)
	assert.True(t, ok)
	assert.Equal(t, 50.0, score)
}

func TestVerdict(t *testing.T) {
	assert.Contains(t, Verdict(0, false), "Cook more at home")
	assert.Contains(t, Verdict(75, true), "planet-friendly")
	assert.Contains(t, Verdict(50, true), "Decent balance")
	assert.Contains(t, Verdict(49.5, true), "cutting down")
}
