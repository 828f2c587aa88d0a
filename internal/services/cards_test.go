package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/core"
)

func newTestCardService(t *testing.T, store *fakeStore, ledger *Ledger) *CardService {
	t.Helper()
	s, err := NewCardService(context.Background(), store, ledger)
	require.NoError(t, err)
	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("card-%d", seq)
	}
	s.now = func() time.Time { return time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC) }
	return s
}

func validCard() AddCardInput {
	return AddCardInput{
		Name:       "Nubank",
		LastDigits: "4242",
		Limit:      core.Money{Cents: 100000},
		ClosingDay: 28,
		DueDay:     5,
		Color:      "#8b5cf6",
	}
}

func TestAddCard(t *testing.T) {
	store := &fakeStore{}
	l := newTestLedger(t, store)
	s := newTestCardService(t, store, l)
	ctx := context.Background()

	card, err := s.AddCard(ctx, validCard())
	require.NoError(t, err)
	assert.Equal(t, "card-1", card.ID)
	assert.Equal(t, 1, store.cardSaves)
	require.Len(t, s.Cards(), 1)

	bad := validCard()
	bad.LastDigits = "42x"
	_, err = s.AddCard(ctx, bad)
	assert.ErrorIs(t, err, core.ErrInvalidCardDigits)
	assert.Len(t, s.Cards(), 1, "failed add leaves the collection untouched")
}

func TestRemoveCardCascades(t *testing.T) {
	store := &fakeStore{}
	l := newTestLedger(t, store)
	s := newTestCardService(t, store, l)
	ctx := context.Background()

	card, err := s.AddCard(ctx, validCard())
	require.NoError(t, err)

	_, err = l.AddTransaction(ctx, AddTransactionInput{
		Description:  "tv 4k",
		Amount:       core.Money{Cents: 240000},
		Category:     core.CategoryOther,
		Date:         core.NewDate(2024, 5, 2),
		Type:         core.Expense,
		CardID:       card.ID,
		Installments: 4,
	})
	require.NoError(t, err)
	_, err = l.AddTransaction(ctx, AddTransactionInput{
		Description: "aluguel",
		Amount:      core.Money{Cents: 150000},
		Category:    core.CategoryHousing,
		Date:        core.NewDate(2024, 5, 5),
		Type:        core.Expense,
	})
	require.NoError(t, err)
	require.Len(t, l.Transactions(), 5)

	require.NoError(t, s.RemoveCard(ctx, card.ID))
	assert.Empty(t, s.Cards())
	txs := l.Transactions()
	require.Len(t, txs, 1, "every card transaction cascades away")
	assert.Equal(t, "aluguel", txs[0].Description)

	// Stale reference after removal: zero, not an error.
	assert.Equal(t, int64(0), s.TotalUsed(card.ID).Cents)

	require.NoError(t, s.RemoveCard(ctx, card.ID), "removing an absent card is a no-op")
}

func TestRemoveCardCascadeFailureLeavesStateIntact(t *testing.T) {
	store := &fakeStore{}
	l := newTestLedger(t, store)
	s := newTestCardService(t, store, l)
	ctx := context.Background()

	card, err := s.AddCard(ctx, validCard())
	require.NoError(t, err)
	_, err = l.AddTransaction(ctx, AddTransactionInput{
		Description: "compra",
		Amount:      core.Money{Cents: 50000},
		Category:    core.CategoryCard,
		Date:        core.NewDate(2024, 5, 2),
		Type:        core.Expense,
		CardID:      card.ID,
	})
	require.NoError(t, err)

	store.failTxSaves = true
	err = s.RemoveCard(ctx, card.ID)
	require.Error(t, err)

	// Neither side of the cascade applied: the card is still there and
	// its transaction never became an orphan.
	require.Len(t, s.Cards(), 1)
	require.Len(t, l.Transactions(), 1)
	assert.Equal(t, card.ID, l.Transactions()[0].CardID)
	assert.Len(t, store.cards, 1, "persisted cards untouched")
	assert.Len(t, store.txs, 1, "persisted transactions untouched")

	store.failTxSaves = false
	require.NoError(t, s.RemoveCard(ctx, card.ID))
	assert.Empty(t, s.Cards())
	assert.Empty(t, l.Transactions())
}

func TestTotalUsedIgnoresViewingCursor(t *testing.T) {
	store := &fakeStore{}
	l := newTestLedger(t, store)
	s := newTestCardService(t, store, l)
	ctx := context.Background()

	card, err := s.AddCard(ctx, validCard())
	require.NoError(t, err)

	add := func(amount int64, d core.Date) {
		_, err := l.AddTransaction(ctx, AddTransactionInput{
			Description: "compra",
			Amount:      core.Money{Cents: amount},
			Category:    core.CategoryCard,
			Date:        d,
			Type:        core.Expense,
			CardID:      card.ID,
		})
		require.NoError(t, err)
	}
	add(10000, core.NewDate(2024, 5, 1)) // current real-world month (fixed clock: May 2024)
	add(20000, core.NewDate(2024, 5, 20))
	add(99900, core.NewDate(2024, 4, 30)) // previous month, not counted

	assert.Equal(t, int64(30000), s.TotalUsed(card.ID).Cents)

	l.ChangeMonth(-1)
	assert.Equal(t, int64(30000), s.TotalUsed(card.ID).Cents, "browsing another month changes nothing")
}

func TestInvoice(t *testing.T) {
	store := &fakeStore{}
	l := newTestLedger(t, store)
	s := newTestCardService(t, store, l)
	ctx := context.Background()

	card, err := s.AddCard(ctx, validCard())
	require.NoError(t, err)

	_, err = l.AddTransaction(ctx, AddTransactionInput{
		Description:  "geladeira",
		Amount:       core.Money{Cents: 300000},
		Category:     core.CategoryOther,
		Date:         core.NewDate(2024, 5, 10),
		Type:         core.Expense,
		CardID:       card.ID,
		Installments: 3,
	})
	require.NoError(t, err)

	inv := s.Invoice(card.ID, 6, 2024)
	assert.Equal(t, card.ID, inv.CardID)
	require.Len(t, inv.Transactions, 1, "one installment falls in June")
	assert.Equal(t, int64(100000), inv.TotalAmount.Cents)
	assert.False(t, inv.IsPaid, "payment tracking is not implemented")

	empty := s.Invoice(card.ID, 1, 2023)
	assert.Empty(t, empty.Transactions)
	assert.Equal(t, int64(0), empty.TotalAmount.Cents)
}

func TestStatusesClampUtilization(t *testing.T) {
	store := &fakeStore{}
	l := newTestLedger(t, store)
	s := newTestCardService(t, store, l)
	ctx := context.Background()

	in := validCard()
	in.Limit = core.Money{Cents: 100000} // R$ 1.000,00
	card, err := s.AddCard(ctx, in)
	require.NoError(t, err)

	_, err = l.AddTransaction(ctx, AddTransactionInput{
		Description: "estouro",
		Amount:      core.Money{Cents: 150000}, // R$ 1.500,00, over the limit
		Category:    core.CategoryCard,
		Date:        core.NewDate(2024, 5, 10),
		Type:        core.Expense,
		CardID:      card.ID,
	})
	require.NoError(t, err)

	statuses := s.Statuses()
	require.Len(t, statuses, 1)
	assert.Equal(t, int64(150000), statuses[0].Used.Cents)
	assert.Equal(t, 100.0, statuses[0].UsedPercentage, "percentage never exceeds 100")
	assert.Equal(t, int64(0), statuses[0].Available.Cents, "available never goes negative")
}
