package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"spendwise/internal/core"
	"spendwise/internal/goal"
	"spendwise/internal/ledger"
	"spendwise/internal/log"
	"spendwise/internal/split"
	"spendwise/internal/storage"
	"spendwise/internal/voice"
)

// ErrNotFound is returned when an id matches nothing in its collection.
var ErrNotFound = errors.New("not found")

// NewTransaction carries the user input for the add flow. Date and id are
// assigned by the tracker.
type NewTransaction struct {
	Type        core.TransactionType
	Description string
	Amount      decimal.Decimal
	Category    string
	Note        string
}

// Tracker owns the four collections of one session. Every mutation writes
// the whole affected collection back to the store before it becomes
// visible; a failed write leaves the in-memory state untouched.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	kv     storage.KV
	logger *log.Logger
	now    func() time.Time
	newID  func() string

	txs        []core.Transaction
	upcoming   []core.UpcomingExpense
	challenges []core.Challenge
	items      []core.SplitItem
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(t *Tracker) { t.newID = gen }
}

func WithLogger(logger *log.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

// Open loads every collection from kv and seeds the default challenges when
// none are stored.
func Open(ctx context.Context, kv storage.KV, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		kv:     kv,
		logger: log.FromContext(ctx),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.WithComponent(log.ComponentTracker)

	// The collections are independent; load them side by side.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		t.txs, err = storage.LoadCollection[core.Transaction](gctx, kv, storage.KeyTransactions)
		return err
	})
	g.Go(func() (err error) {
		t.upcoming, err = storage.LoadCollection[core.UpcomingExpense](gctx, kv, storage.KeyUpcoming)
		return err
	})
	g.Go(func() (err error) {
		t.challenges, err = storage.LoadCollection[core.Challenge](gctx, kv, storage.KeyChallenges)
		return err
	})
	g.Go(func() (err error) {
		t.items, err = storage.LoadCollection[core.SplitItem](gctx, kv, storage.KeySplitItems)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("open tracker: %w", err)
	}

	if len(t.challenges) == 0 {
		seed := core.DefaultChallenges()
		if err := storage.SaveCollection(ctx, kv, storage.KeyChallenges, seed); err != nil {
			return nil, fmt.Errorf("seed challenges: %w", err)
		}
		t.challenges = seed
		t.logger.InfoContext(ctx, "Seeded default challenges", log.FieldCount, len(seed))
	}

	t.logger.DebugContext(ctx, "Tracker loaded",
		log.FieldOperation, log.OpLoad,
		"transactions", len(t.txs),
		"upcoming", len(t.upcoming),
		"challenges", len(t.challenges),
		"split_items", len(t.items))

	return t, nil
}

// save persists next under key. Callers assign next to their field only
// after save succeeds.
func save[T any](ctx context.Context, t *Tracker, key string, next []T) error {
	if err := storage.SaveCollection(ctx, t.kv, key, next); err != nil {
		t.logger.ErrorContext(ctx, "Failed to persist collection", log.NewFields().
			WithOperation(log.OpSave).
			WithCollection(key).
			WithError(err).
			ToSlice()...)
		return err
	}
	return nil
}

// AddTransaction validates the input, appends a new transaction dated now
// and persists the ledger.
func (t *Tracker) AddTransaction(ctx context.Context, in NewTransaction) (core.Transaction, error) {
	tx := core.Transaction{
		ID:          t.newID(),
		Type:        in.Type,
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		Category:    strings.TrimSpace(in.Category),
		Note:        strings.TrimSpace(in.Note),
		Date:        t.now(),
	}
	return t.appendTransaction(ctx, tx)
}

func (t *Tracker) appendTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	next := append(slices.Clone(t.txs), tx)
	if err := save(ctx, t, storage.KeyTransactions, next); err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	t.txs = next

	t.logger.InfoContext(ctx, "Transaction added", log.NewFields().
		WithOperation(log.OpCreate).
		WithTransaction(tx.ID, tx.Type.String(), tx.Amount, tx.Category).
		ToSlice()...)
	return tx, nil
}

// DeleteTransaction removes the transaction with the given id.
func (t *Tracker) DeleteTransaction(ctx context.Context, id string) error {
	i := slices.IndexFunc(t.txs, func(tx core.Transaction) bool { return tx.ID == id })
	if i < 0 {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}

	next := slices.Delete(slices.Clone(t.txs), i, i+1)
	if err := save(ctx, t, storage.KeyTransactions, next); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	t.txs = next

	t.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldTransactionID, id)
	return nil
}

// Transactions returns the ledger entries matching f in insertion order.
func (t *Tracker) Transactions(f ledger.Filter) []core.Transaction {
	return f.Apply(t.txs)
}

// Categories lists the distinct categories in the ledger.
func (t *Tracker) Categories() []string {
	return ledger.Categories(t.txs)
}

// Summary recomputes totals, survival and sustainability from the full
// ledger.
func (t *Tracker) Summary() ledger.Summary {
	return ledger.Summarize(t.txs, t.now())
}

func (t *Tracker) AddUpcoming(ctx context.Context, name string, amount decimal.Decimal, date time.Time) (core.UpcomingExpense, error) {
	u := core.UpcomingExpense{
		ID:     t.newID(),
		Name:   strings.TrimSpace(name),
		Amount: amount,
		Date:   date,
	}
	if err := u.Validate(); err != nil {
		return core.UpcomingExpense{}, err
	}

	next := append(slices.Clone(t.upcoming), u)
	if err := save(ctx, t, storage.KeyUpcoming, next); err != nil {
		return core.UpcomingExpense{}, fmt.Errorf("add upcoming: %w", err)
	}
	t.upcoming = next

	t.logger.InfoContext(ctx, "Upcoming expense added",
		log.FieldOperation, log.OpCreate,
		log.FieldAmount, amount.String())
	return u, nil
}

// Upcoming returns the planned expenses sorted by date. Stored order is not
// changed.
func (t *Tracker) Upcoming() []core.UpcomingExpense {
	out := slices.Clone(t.upcoming)
	slices.SortStableFunc(out, func(a, b core.UpcomingExpense) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

func (t *Tracker) RemoveUpcoming(ctx context.Context, id string) error {
	i := slices.IndexFunc(t.upcoming, func(u core.UpcomingExpense) bool { return u.ID == id })
	if i < 0 {
		return fmt.Errorf("upcoming %s: %w", id, ErrNotFound)
	}

	next := slices.Delete(slices.Clone(t.upcoming), i, i+1)
	if err := save(ctx, t, storage.KeyUpcoming, next); err != nil {
		return fmt.Errorf("remove upcoming: %w", err)
	}
	t.upcoming = next
	return nil
}

func (t *Tracker) Challenges() []core.Challenge {
	return slices.Clone(t.challenges)
}

// AdvanceChallenge records one more completed day. A finished challenge is
// returned unchanged and nothing is written.
func (t *Tracker) AdvanceChallenge(ctx context.Context, id string) (core.Challenge, error) {
	i := slices.IndexFunc(t.challenges, func(c core.Challenge) bool { return c.ID == id })
	if i < 0 {
		return core.Challenge{}, fmt.Errorf("challenge %s: %w", id, ErrNotFound)
	}

	next := slices.Clone(t.challenges)
	if !next[i].Advance() {
		return next[i], nil
	}
	if err := save(ctx, t, storage.KeyChallenges, next); err != nil {
		return core.Challenge{}, fmt.Errorf("advance challenge: %w", err)
	}
	t.challenges = next

	t.logger.InfoContext(ctx, "Challenge advanced",
		log.FieldOperation, log.OpAdvance,
		"challenge_id", id,
		"completed_days", next[i].CompletedDays)
	return next[i], nil
}

func (t *Tracker) AddSplitItem(ctx context.Context, name string, price decimal.Decimal, people []string) (core.SplitItem, error) {
	var cleaned []string
	for _, p := range people {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	item := core.SplitItem{
		ID:     t.newID(),
		Name:   strings.TrimSpace(name),
		Price:  price,
		People: cleaned,
	}
	if err := item.Validate(); err != nil {
		return core.SplitItem{}, err
	}

	next := append(slices.Clone(t.items), item)
	if err := save(ctx, t, storage.KeySplitItems, next); err != nil {
		return core.SplitItem{}, fmt.Errorf("add split item: %w", err)
	}
	t.items = next
	return item, nil
}

func (t *Tracker) SplitItems() []core.SplitItem {
	return slices.Clone(t.items)
}

// ClearSplitItems empties the pending item list.
func (t *Tracker) ClearSplitItems(ctx context.Context) error {
	if err := save(ctx, t, storage.KeySplitItems, []core.SplitItem{}); err != nil {
		return fmt.Errorf("clear split items: %w", err)
	}
	t.items = []core.SplitItem{}

	t.logger.InfoContext(ctx, "Split items cleared", log.FieldOperation, log.OpClear)
	return nil
}

// SplitShares divides every pending item among its people.
func (t *Tracker) SplitShares() (split.Shares, error) {
	return split.SplitItems(t.items)
}

// ProjectGoal projects g from today.
func (t *Tracker) ProjectGoal(g goal.Goal) (goal.Projection, error) {
	return goal.Project(g, t.now())
}

// SettleGroup parses "Name, amount" lines and settles them against total.
func (t *Tracker) SettleGroup(total decimal.Decimal, paidLines string) (split.Settlement, error) {
	return split.SettleGroup(total, split.ParsePaidLines(paidLines))
}

// CaptureVoice records one utterance and parses it into a draft. The ledger
// is not touched; pass the draft to ConfirmDraft to keep it.
func (t *Tracker) CaptureVoice(ctx context.Context, rec voice.Recognizer) (voice.Draft, string, error) {
	draft, transcript, err := voice.Capture(ctx, rec)
	if err != nil {
		t.logger.WithComponent(log.ComponentVoice).WarnContext(ctx, "Voice capture produced no draft",
			log.FieldOperation, log.OpParse,
			log.FieldError, err)
		return voice.Draft{}, transcript, err
	}
	return draft, transcript, nil
}

// ConfirmDraft adds a reviewed voice draft to the ledger.
func (t *Tracker) ConfirmDraft(ctx context.Context, d voice.Draft, category string) (core.Transaction, error) {
	return t.appendTransaction(ctx, d.Transaction(t.newID(), strings.TrimSpace(category), t.now()))
}

// UpcomingTotal sums every planned expense.
func (t *Tracker) UpcomingTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, u := range t.upcoming {
		sum = sum.Add(u.Amount)
	}
	return sum
}

// NextUpcoming returns the earliest planned expense dated today or later.
func (t *Tracker) NextUpcoming() (core.UpcomingExpense, bool) {
	now := t.now()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	var (
		best  core.UpcomingExpense
		found bool
	)
	for _, u := range t.upcoming {
		if u.Date.Before(today) {
			continue
		}
		if !found || u.Date.Before(best.Date) {
			best, found = u, true
		}
	}
	return best, found
}
