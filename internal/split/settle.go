// Package split provides the shared-expense calculators: settling a group
// bill against what each person already paid and splitting itemised bills
// among the people who shared each item.
package split

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTotal   = errors.New("total must be a positive number")
	ErrNoParticipants = errors.New("no valid \"Name, amount\" lines")
	ErrNoItems        = errors.New("no items to split")
)

// settleTolerance is the absolute difference, in currency units, below which
// a person counts as settled.
var settleTolerance = decimal.NewFromInt(1)

// Status of one participant after settlement.
type Status string

const (
	Settled  Status = "settled"
	Receives Status = "receives"
	Pays     Status = "pays"
)

// PaidEntry is one "Name, amount" line.
type PaidEntry struct {
	Name string
	Paid decimal.Decimal
}

// PersonResult is the outcome for a single participant. Amount is always
// non-negative; Status tells the direction.
type PersonResult struct {
	Name   string
	Paid   decimal.Decimal
	Status Status
	Amount decimal.Decimal
}

// Settlement is the fair share and per-person results in input order.
type Settlement struct {
	Total     decimal.Decimal
	FairShare decimal.Decimal
	People    []PersonResult
}

// ParsePaidLines reads one "Name, amount" entry per line. Blank lines, lines
// that do not split into exactly two comma separated fields, empty names and
// unparseable amounts are dropped silently.
func ParsePaidLines(text string) []PaidEntry {
	var out []PaidEntry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			continue
		}
		name := strings.TrimSpace(fields[0])
		amt, err := decimal.NewFromString(strings.TrimSpace(fields[1]))
		if name == "" || err != nil {
			continue
		}
		out = append(out, PaidEntry{Name: name, Paid: amt})
	}
	return out
}

// SettleGroup divides total equally among entries and reports who is owed
// and who owes. Differences under one currency unit count as settled.
func SettleGroup(total decimal.Decimal, entries []PaidEntry) (Settlement, error) {
	if !total.IsPositive() {
		return Settlement{}, ErrInvalidTotal
	}
	if len(entries) == 0 {
		return Settlement{}, ErrNoParticipants
	}

	fair := total.Div(decimal.NewFromInt(int64(len(entries))))
	results := make([]PersonResult, 0, len(entries))
	for _, e := range entries {
		diff := e.Paid.Sub(fair)
		r := PersonResult{Name: e.Name, Paid: e.Paid}
		switch {
		case diff.Abs().LessThan(settleTolerance):
			r.Status = Settled
			r.Amount = decimal.Zero
		case diff.IsPositive():
			r.Status = Receives
			r.Amount = diff
		default:
			r.Status = Pays
			r.Amount = diff.Neg()
		}
		results = append(results, r)
	}

	return Settlement{Total: total, FairShare: fair, People: results}, nil
}

// UPILink builds a UPI deep link a receiver can share to collect amount.
func UPILink(payee string, amount decimal.Decimal, note string) string {
	q := url.Values{}
	q.Set("pa", payee)
	q.Set("am", amount.StringFixed(2))
	if note != "" {
		q.Set("tn", note)
	}
	return fmt.Sprintf("upi://pay?%s", q.Encode())
}
