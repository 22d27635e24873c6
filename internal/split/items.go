package split

import (
	"github.com/shopspring/decimal"

	"spendwise/internal/core"
)

// Share is what one person owes across all items.
type Share struct {
	Name   string
	Amount decimal.Decimal
}

// Shares keeps people in the order they first appear in the item list.
type Shares []Share

// Map returns the shares keyed by person name.
func (s Shares) Map() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(s))
	for _, sh := range s {
		m[sh.Name] = sh.Amount
	}
	return m
}

// SplitItems divides each item's price equally among its people and sums the
// shares per name. Names match by exact string equality.
func SplitItems(items []core.SplitItem) (Shares, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	index := map[string]int{}
	var out Shares
	for _, item := range items {
		if len(item.People) == 0 {
			continue
		}
		share := item.Price.Div(decimal.NewFromInt(int64(len(item.People))))
		for _, name := range item.People {
			i, ok := index[name]
			if !ok {
				i = len(out)
				index[name] = i
				out = append(out, Share{Name: name, Amount: decimal.Zero})
			}
			out[i].Amount = out[i].Amount.Add(share)
		}
	}
	return out, nil
}
