package storage

import (
	"context"
	"errors"
)

// Keys of the four persisted collections.
const (
	KeyTransactions = "smart_expense_transactions"
	KeyUpcoming     = "smart_expense_upcoming"
	KeyChallenges   = "smart_expense_challenges"
	KeySplitItems   = "smart_expense_items"
)

// ErrNotFound is returned by KV.Get for keys that were never written.
var ErrNotFound = errors.New("key not found")

// Ports for outbound adapters.
type (
	// KV stores whole values under fixed keys. Put replaces the previous
	// value atomically; last write wins.
	KV interface {
		Get(ctx context.Context, key string) ([]byte, error)
		Put(ctx context.Context, key string, value []byte) error
	}
)

// Keys returns every collection key in load order.
func Keys() []string {
	return []string{KeyTransactions, KeyUpcoming, KeyChallenges, KeySplitItems}
}
