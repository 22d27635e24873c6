package goal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var now = time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)

func TestProject(t *testing.T) {
	tests := []struct {
		name     string
		goal     Goal
		months   int64
		target   time.Time
		progress string
	}{
		{
			name:     "exact division",
			goal:     Goal{Name: "Laptop", Cost: dec("10000"), MonthlySaving: dec("2500"), AlreadySaved: decimal.Zero},
			months:   4,
			target:   time.Date(2025, time.May, 15, 9, 0, 0, 0, time.UTC),
			progress: "0",
		},
		{
			name:     "rounds months up",
			goal:     Goal{Name: "Phone", Cost: dec("10000"), MonthlySaving: dec("3000"), AlreadySaved: dec("500")},
			months:   4,
			target:   time.Date(2025, time.May, 15, 9, 0, 0, 0, time.UTC),
			progress: "5",
		},
		{
			name:     "already saved",
			goal:     Goal{Name: "Bike", Cost: dec("5000"), MonthlySaving: dec("100"), AlreadySaved: dec("6000")},
			months:   0,
			target:   now,
			progress: "100",
		},
		{
			name:     "fractional rates",
			goal:     Goal{Name: "Trip", Cost: dec("100.50"), MonthlySaving: dec("33.50"), AlreadySaved: decimal.Zero},
			months:   3,
			target:   time.Date(2025, time.April, 15, 9, 0, 0, 0, time.UTC),
			progress: "0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Project(tt.goal, now)
			require.NoError(t, err)
			assert.Equal(t, tt.months, p.MonthsNeeded)
			assert.True(t, tt.target.Equal(p.TargetDate), "target %s", p.TargetDate)
			assert.True(t, p.ProgressPct.Equal(dec(tt.progress)), "progress %s", p.ProgressPct)
		})
	}
}

func TestProjectMonthOverflow(t *testing.T) {
	jan31 := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	p, err := Project(Goal{Name: "x", Cost: dec("10"), MonthlySaving: dec("10")}, jan31)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.MonthsNeeded)
	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), p.TargetDate)
}

func TestProjectValidation(t *testing.T) {
	base := Goal{Name: "x", Cost: dec("10"), MonthlySaving: dec("1")}

	g := base
	g.Name = "  "
	_, err := Project(g, now)
	assert.ErrorIs(t, err, ErrEmptyName)

	g = base
	g.Cost = decimal.Zero
	_, err = Project(g, now)
	assert.ErrorIs(t, err, ErrInvalidCost)

	g = base
	g.MonthlySaving = dec("-1")
	_, err = Project(g, now)
	assert.ErrorIs(t, err, ErrInvalidSaving)

	g = base
	g.AlreadySaved = dec("-1")
	_, err = Project(g, now)
	assert.ErrorIs(t, err, ErrInvalidSaved)
}
