// Package services implements the transaction and card engines. Both own
// their collections exclusively: callers mutate state only through the
// operations here, and every mutation writes the full collection through
// the storage collaborator before returning.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/core"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/log"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/storage"
)

// Ledger owns the transaction collection and the viewing-month cursor.
type Ledger struct {
	mu    sync.Mutex
	store storage.Store

	transactions []core.Transaction
	cursor       core.YearMonth

	newID func() string
	now   func() time.Time
}

// NewLedger loads the persisted transaction collection and positions the
// viewing cursor on the current month.
func NewLedger(ctx context.Context, store storage.Store) (*Ledger, error) {
	l := &Ledger{
		store: store,
		newID: uuid.NewString,
		now:   time.Now,
	}
	txs, err := store.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	l.transactions = txs
	l.cursor = core.YearMonthOf(l.now())

	slog.InfoContext(ctx, "Ledger loaded",
		"transactions", len(txs),
		log.FieldYear, l.cursor.Year,
		log.FieldMonth, l.cursor.Month)
	return l, nil
}

// AddTransactionInput is the user-entered form of a transaction, before
// installment expansion.
type AddTransactionInput struct {
	Description  string
	Amount       core.Money
	Category     core.Category
	Date         core.Date
	Type         core.TransactionType
	CardID       string // optional
	Installments int    // 0 or 1 means a single transaction
}

// AddTransaction validates the input, expands it into an installment
// series when Installments > 1 and appends the generated transactions.
// The i-th member is dated i-1 calendar months after the input date (day
// clamped to the target month), carries its position in the series and a
// "(i/n)" description suffix, and receives an equal share of the amount
// with the rounding residue on the last member so the series sums exactly.
// A card-linked transaction is forced onto the card category regardless
// of the one selected. Returns the ids of every transaction created.
func (l *Ledger) AddTransaction(ctx context.Context, in AddTransactionInput) ([]string, error) {
	n := in.Installments
	if n < 1 {
		n = 1
	}
	if n > core.MaxInstallments {
		return nil, fmt.Errorf("%w: max %d", core.ErrInvalidInstallment, core.MaxInstallments)
	}

	category := in.Category
	if in.CardID != "" {
		category = core.CategoryCard
	}

	shares := in.Amount.Split(n)
	generated := make([]core.Transaction, n)
	for i := 0; i < n; i++ {
		tx := core.Transaction{
			ID:          l.newID(),
			Description: in.Description,
			Amount:      shares[i],
			Category:    category,
			Date:        in.Date.AddMonths(i),
			Type:        in.Type,
			CardID:      in.CardID,
		}
		if n > 1 {
			tx.Description = fmt.Sprintf("%s (%d/%d)", in.Description, i+1, n)
			tx.Installment = &core.InstallmentInfo{Current: i + 1, Total: n}
		}
		if err := tx.Validate(); err != nil {
			// Nothing has been appended yet: all-or-nothing.
			return nil, fmt.Errorf("validate transaction: %w", err)
		}
		generated[i] = tx
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.transactions = append(l.transactions, generated...)
	if err := l.persist(ctx); err != nil {
		l.transactions = l.transactions[:len(l.transactions)-n]
		return nil, err
	}

	ids := make([]string, n)
	for i, tx := range generated {
		ids[i] = tx.ID
	}
	slog.InfoContext(ctx, "Transactions added",
		"description", in.Description,
		log.FieldAmountCents, in.Amount.Cents,
		log.FieldCategory, string(category),
		"type", string(in.Type),
		log.FieldInstallments, n,
		log.FieldCardID, in.CardID)
	return ids, nil
}

// TransactionPatch carries the fields an update may change. Nil fields
// are left untouched.
type TransactionPatch struct {
	Description *string
	Amount      *core.Money
	Category    *core.Category
	Date        *core.Date
	Type        *core.TransactionType
	CardID      *string
}

// UpdateTransaction applies patch to the single transaction with the
// given id and re-validates the result against the creation invariants.
// Editing a member of an installment series never touches its siblings.
func (l *Ledger) UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("transaction %s: %w", id, core.ErrNotFound)
	}

	updated := l.transactions[idx]
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Amount != nil {
		updated.Amount = *patch.Amount
	}
	if patch.Category != nil {
		updated.Category = *patch.Category
	}
	if patch.Date != nil {
		updated.Date = *patch.Date
	}
	if patch.Type != nil {
		updated.Type = *patch.Type
	}
	if patch.CardID != nil {
		updated.CardID = *patch.CardID
	}
	if updated.CardID != "" {
		updated.Category = core.CategoryCard
	}
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("validate transaction: %w", err)
	}

	previous := l.transactions[idx]
	l.transactions[idx] = updated
	if err := l.persist(ctx); err != nil {
		l.transactions[idx] = previous
		return err
	}
	slog.InfoContext(ctx, "Transaction updated", log.FieldTransactionID, id)
	return nil
}

// RemoveTransaction deletes the transaction with the given id. Removing
// an absent id is a silent no-op, so the call is idempotent.
func (l *Ledger) RemoveTransaction(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.transactions[:0:0]
	removed := false
	for _, tx := range l.transactions {
		if tx.ID == id {
			removed = true
			continue
		}
		kept = append(kept, tx)
	}
	if !removed {
		return nil
	}

	previous := l.transactions
	l.transactions = kept
	if err := l.persist(ctx); err != nil {
		l.transactions = previous
		return err
	}
	slog.InfoContext(ctx, "Transaction removed", log.FieldTransactionID, id)
	return nil
}

// RemoveByCard deletes every transaction referencing cardID. Used by the
// card engine's cascade; removing for an unknown card is a no-op.
func (l *Ledger) RemoveByCard(ctx context.Context, cardID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.transactions[:0:0]
	removed := 0
	for _, tx := range l.transactions {
		if tx.CardID == cardID {
			removed++
			continue
		}
		kept = append(kept, tx)
	}
	if removed == 0 {
		return nil
	}

	previous := l.transactions
	l.transactions = kept
	if err := l.persist(ctx); err != nil {
		l.transactions = previous
		return err
	}
	slog.InfoContext(ctx, "Card transactions removed", log.FieldCardID, cardID, "count", removed)
	return nil
}

// ChangeMonth moves the viewing cursor by step calendar months. Any step
// is legal; the cursor is presentation state and is never persisted.
func (l *Ledger) ChangeMonth(step int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cursor = l.cursor.Shift(step)
}

// ViewMonth returns the current viewing cursor.
func (l *Ledger) ViewMonth() core.YearMonth {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}

// FilteredTransactions returns a fresh slice of the transactions whose
// date falls in the viewing month, most recent date first. Ties keep
// their insertion order.
func (l *Ledger) FilteredTransactions() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []core.Transaction
	for _, tx := range l.transactions {
		if l.cursor.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

// Transactions returns a copy of the full collection in insertion order,
// for the export collaborator.
func (l *Ledger) Transactions() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Transaction(nil), l.transactions...)
}

// Totals computes the viewing month's income and expense flows plus the
// lifetime balance over the entire collection. The scope asymmetry is
// deliberate: income/expense describe the browsed month, balance is net
// worth across all recorded history.
func (l *Ledger) Totals() core.Totals {
	l.mu.Lock()
	defer l.mu.Unlock()

	var t core.Totals
	for _, tx := range l.transactions {
		if l.cursor.Contains(tx.Date) {
			switch tx.Type {
			case core.Income:
				t.Income = t.Income.Add(tx.Amount)
			case core.Expense:
				t.Expense = t.Expense.Add(tx.Amount)
			}
		}
		if tx.Type == core.Income {
			t.Balance = t.Balance.Add(tx.Amount)
		} else {
			t.Balance = t.Balance.Sub(tx.Amount)
		}
	}
	return t
}

// CategoryBreakdown aggregates the viewing month's transactions of the
// given type per category, largest first, with each category's share of
// the month's flow for that type.
func (l *Ledger) CategoryBreakdown(txType core.TransactionType) []core.CategoryShare {
	l.mu.Lock()
	defer l.mu.Unlock()

	sums := make(map[core.Category]int64)
	var total int64
	for _, tx := range l.transactions {
		if tx.Type != txType || !l.cursor.Contains(tx.Date) {
			continue
		}
		sums[tx.Category] += tx.Amount.Cents
		total += tx.Amount.Cents
	}

	out := make([]core.CategoryShare, 0, len(sums))
	for _, c := range core.Categories() {
		cents, ok := sums[c]
		if !ok {
			continue
		}
		share := core.CategoryShare{Category: c, Amount: core.Money{Cents: cents}}
		if total > 0 {
			share.Percentage = float64(cents) / float64(total) * 100
		}
		out = append(out, share)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// persist writes the whole collection through the store. Callers hold
// l.mu and roll their mutation back when it fails.
func (l *Ledger) persist(ctx context.Context) error {
	if err := l.store.SaveTransactions(ctx, l.transactions); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	return nil
}
