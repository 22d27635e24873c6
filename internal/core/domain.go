package core

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Note        string          `json:"note,omitempty"`
		Date        time.Time       `json:"date"`
	}

	// UpcomingExpense is a planned outflow. Date is not checked against today.
	UpcomingExpense struct {
		ID     string          `json:"id"`
		Name   string          `json:"name"`
		Amount decimal.Decimal `json:"amount"`
		Date   time.Time       `json:"date"`
	}

	Challenge struct {
		ID            string `json:"id"`
		Title         string `json:"title"`
		Description   string `json:"description"`
		CompletedDays int    `json:"completedDays"`
		TotalDays     int    `json:"totalDays"`
	}

	SplitItem struct {
		ID     string          `json:"id"`
		Name   string          `json:"name"`
		Price  decimal.Decimal `json:"price"`
		People []string        `json:"people"`
	}
)

var (
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyPeople      = errors.New("at least one person is required")
	ErrZeroDate         = errors.New("date cannot be zero")
	ErrInvalidDays      = errors.New("invalid challenge days")
)

// ParseTransactionType accepts "income" or "expense" in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case Income, Expense:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true for income and expense.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// ValidateAmount reports ErrInvalidAmount unless d is strictly positive.
func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (u UpcomingExpense) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if err := ValidateAmount(u.Amount); err != nil {
		return err
	}
	if u.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (s SplitItem) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if err := ValidateAmount(s.Price); err != nil {
		return err
	}
	if len(s.People) == 0 {
		return ErrEmptyPeople
	}
	return nil
}

func (c Challenge) Validate() error {
	if c.TotalDays < 1 || c.CompletedDays < 0 || c.CompletedDays > c.TotalDays {
		return ErrInvalidDays
	}
	return nil
}

// Advance marks one more day done. It reports false when the challenge is
// already complete.
func (c *Challenge) Advance() bool {
	if c.CompletedDays >= c.TotalDays {
		return false
	}
	c.CompletedDays++
	return true
}

// Done returns true once every day has been completed.
func (c Challenge) Done() bool {
	return c.CompletedDays >= c.TotalDays
}

// Percent is the rounded share of completed days.
func (c Challenge) Percent() int {
	if c.TotalDays <= 0 {
		return 0
	}
	return int(math.Round(float64(c.CompletedDays) / float64(c.TotalDays) * 100))
}

// DefaultChallenges are seeded when no challenge has been stored yet.
func DefaultChallenges() []Challenge {
	return []Challenge{
		{
			ID:          "no-swiggy-week",
			Title:       "No Swiggy Week",
			Description: "Avoid food delivery for 7 days straight.",
			TotalDays:   7,
		},
		{
			ID:          "no-cab-3days",
			Title:       "No Cab 3 Days",
			Description: "Use walking/public transport for 3 days.",
			TotalDays:   3,
		},
	}
}

// ParsePeople splits a comma separated list of names, trimming each and
// dropping empties.
func ParsePeople(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
