// Package voice turns a dictated sentence such as "spent 250 on groceries"
// into a transaction draft the user confirms before it reaches the ledger.
//
// The parser is an ordered list of rules: amount extraction with a thousand
// separator heuristic, keyword based type classification where expense
// keywords override income keywords, and description extraction after the
// first "on".
package voice

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"spendwise/internal/core"
)

// NotePrefix marks notes of transactions created from a voice draft.
const NotePrefix = "[Logged via voice] "

var (
	ErrNoAmount            = errors.New("no amount detected")
	ErrAmountNotUnderstood = errors.New("amount not understood")
)

var (
	// a digit followed by any mix of digits, commas, periods and spaces
	// (including Unicode spaces such as NBSP, which \s alone misses)
	amountRe = regexp.MustCompile(`\d[\d.,\s\p{Zs}]*`)
	groupRe  = regexp.MustCompile(`[\s\p{Zs},]`)
	numberRe = regexp.MustCompile(`^\d+(?:\.\d+)?`)
)

type typeRule struct {
	typ      core.TransactionType
	keywords []string
}

// typeRules run in order and every matching rule overwrites the previous
// result, so expense keywords win when both kinds appear ("got paid back"
// is an expense).
var typeRules = []typeRule{
	{core.Income, []string{"salary", "credited", "income", "received", "got", "allowance", "stipend", "pocket money"}},
	{core.Expense, []string{"spent", "paid", "bought", "recharged", "recharge", "gave"}},
}

// Draft is an unconfirmed transaction produced from a transcript.
type Draft struct {
	Type        core.TransactionType
	Amount      decimal.Decimal
	Description string
	Note        string
}

// Parse converts a transcript into a draft. It never touches the ledger.
func Parse(text string) (Draft, error) {
	lower := strings.ToLower(text)

	amount, err := extractAmount(lower)
	if err != nil {
		return Draft{}, err
	}

	typ := classify(lower)

	return Draft{
		Type:        typ,
		Amount:      amount,
		Description: describe(lower, typ),
		Note:        NotePrefix + text,
	}, nil
}

// extractAmount handles "50000", "50,000", "50 000" and "50.000". A single
// period followed by exactly three digits, with at most three digits before
// it, is read as a thousand separator; any other period is a decimal point.
func extractAmount(lower string) (decimal.Decimal, error) {
	run := amountRe.FindString(lower)
	if run == "" {
		return decimal.Zero, ErrNoAmount
	}

	raw := groupRe.ReplaceAllString(run, "")
	if parts := strings.Split(raw, "."); len(parts) == 2 && len(parts[1]) == 3 && len(parts[0]) <= 3 {
		raw = parts[0] + parts[1]
	}

	// Like a lenient float parse, only the leading number counts:
	// "1.500.000" reads as 1.5.
	num := numberRe.FindString(raw)
	if num == "" {
		return decimal.Zero, ErrAmountNotUnderstood
	}
	amount, err := decimal.NewFromString(num)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, ErrAmountNotUnderstood
	}
	return amount, nil
}

func classify(lower string) core.TransactionType {
	typ := core.Expense
	for _, rule := range typeRules {
		if containsAny(lower, rule.keywords) {
			typ = rule.typ
		}
	}
	return typ
}

// describe uses the text between the first "on" and the next one. "on" is
// matched as a plain substring, so "money" also splits.
func describe(lower string, typ core.TransactionType) string {
	if _, after, ok := strings.Cut(lower, "on"); ok {
		segment, _, _ := strings.Cut(after, "on")
		if segment = strings.TrimSpace(segment); segment != "" {
			return segment
		}
	}
	switch {
	case typ == core.Income && strings.Contains(lower, "salary"):
		return "Salary"
	case typ == core.Income:
		return "Income"
	default:
		return "Expense"
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Transaction turns a confirmed draft into a ledger entry.
func (d Draft) Transaction(id, category string, now time.Time) core.Transaction {
	return core.Transaction{
		ID:          id,
		Type:        d.Type,
		Description: d.Description,
		Amount:      d.Amount,
		Category:    category,
		Note:        d.Note,
		Date:        now,
	}
}
