// Package goal projects how long it takes to save up for a purchase.
package goal

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("goal name is required")
	ErrInvalidCost   = errors.New("goal cost must be a positive number")
	ErrInvalidSaving = errors.New("monthly saving must be a positive number")
	ErrInvalidSaved  = errors.New("amount already saved cannot be negative")
)

var hundred = decimal.NewFromInt(100)

type Goal struct {
	Name          string
	Cost          decimal.Decimal
	MonthlySaving decimal.Decimal
	AlreadySaved  decimal.Decimal
}

type Projection struct {
	Goal         Goal
	Remaining    decimal.Decimal
	MonthsNeeded int64
	TargetDate   time.Time
	ProgressPct  decimal.Decimal
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if !g.Cost.IsPositive() {
		return ErrInvalidCost
	}
	if !g.MonthlySaving.IsPositive() {
		return ErrInvalidSaving
	}
	if g.AlreadySaved.IsNegative() {
		return ErrInvalidSaved
	}
	return nil
}

// Project computes the months needed to cover the remaining cost at the
// monthly saving rate. TargetDate advances now by that many calendar months;
// day overflow normalizes the same way time.AddDate does (31 Jan + 1 month is
// 3 Mar in a non-leap year).
func Project(g Goal, now time.Time) (Projection, error) {
	if err := g.Validate(); err != nil {
		return Projection{}, err
	}

	remaining := decimal.Max(decimal.Zero, g.Cost.Sub(g.AlreadySaved))

	q, r := remaining.QuoRem(g.MonthlySaving, 0)
	months := q.IntPart()
	if r.IsPositive() {
		months++
	}

	progress := decimal.Min(hundred, g.AlreadySaved.Div(g.Cost).Mul(hundred))

	return Projection{
		Goal:         g,
		Remaining:    remaining,
		MonthsNeeded: months,
		TargetDate:   now.AddDate(0, int(months), 0),
		ProgressPct:  progress,
	}, nil
}
