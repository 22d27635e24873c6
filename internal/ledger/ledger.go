// Package ledger derives the summary figures shown next to the transaction
// list: totals, survival days and the sustainability score.
//
// Every function here is pure and recomputes from the full list; callers
// re-run them whenever the ledger changes.
package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"spendwise/internal/core"
)

// SurvivalWindow is the trailing window used to average recent spending.
const SurvivalWindow = 30 * 24 * time.Hour

var windowDays = decimal.NewFromInt(30)

// Totals holds the income/expense sums and their difference.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Survival is the estimated number of days the balance lasts at the recent
// average daily spend. OK is false when there is not enough data.
type Survival struct {
	Days     int64
	AvgDaily decimal.Decimal
	OK       bool
}

// ComputeTotals sums income transactions into Income and everything else
// into Expense.
func ComputeTotals(txs []core.Transaction) Totals {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txs {
		if t.Type == core.Income {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	return Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// ComputeSurvival estimates survival days from expenses dated on or after
// now-30d. The average always divides by the full 30 day window, not by the
// number of days that actually saw spending.
func ComputeSurvival(txs []core.Transaction, balance decimal.Decimal, now time.Time) Survival {
	cutoff := now.Add(-SurvivalWindow)

	recent := decimal.Zero
	found := false
	for _, t := range txs {
		if t.Type != core.Expense || t.Date.Before(cutoff) {
			continue
		}
		recent = recent.Add(t.Amount)
		found = true
	}

	if !found || !balance.IsPositive() || !recent.IsPositive() {
		return Survival{}
	}

	// floor(balance / (recent/30)) == floor(balance*30 / recent), computed
	// without rounding the average first.
	days, _ := balance.Mul(windowDays).QuoRem(recent, 0)

	return Survival{
		Days:     days.IntPart(),
		AvgDaily: recent.Div(windowDays),
		OK:       true,
	}
}

// Summary is a read-only snapshot for presentation.
type Summary struct {
	Totals
	Survival     Survival
	Score        float64
	HasScore     bool
	Verdict      string
	Transactions int
}

// Summarize recomputes every figure from txs.
func Summarize(txs []core.Transaction, now time.Time) Summary {
	totals := ComputeTotals(txs)
	score, ok := SustainabilityScore(txs)
	return Summary{
		Totals:       totals,
		Survival:     ComputeSurvival(txs, totals.Balance, now),
		Score:        score,
		HasScore:     ok,
		Verdict:      Verdict(score, ok),
		Transactions: len(txs),
	}
}

// Filter selects transactions for display. Empty or "all" fields match
// everything.
type Filter struct {
	Type     string
	Category string
}

const filterAll = "all"

func (f Filter) matches(t core.Transaction) bool {
	if f.Type != "" && f.Type != filterAll && string(t.Type) != f.Type {
		return false
	}
	if f.Category != "" && f.Category != filterAll && t.Category != f.Category {
		return false
	}
	return true
}

// Apply returns the matching transactions in their original order.
func (f Filter) Apply(txs []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func Categories(txs []core.Transaction) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, t := range txs {
		c := strings.TrimSpace(t.Category)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
