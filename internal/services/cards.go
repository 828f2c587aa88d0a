package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/core"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/log"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/storage"
)

// CardService owns the credit card collection. Everything it reports
// about usage comes from the ledger's transaction collection; the only
// write it performs there is the cascade on card removal.
type CardService struct {
	mu     sync.Mutex
	store  storage.Store
	ledger *Ledger

	cards []core.CreditCard

	newID func() string
	now   func() time.Time
}

// NewCardService loads the persisted card collection.
func NewCardService(ctx context.Context, store storage.Store, ledger *Ledger) (*CardService, error) {
	s := &CardService{
		store:  store,
		ledger: ledger,
		newID:  uuid.NewString,
		now:    time.Now,
	}
	cards, err := store.LoadCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	s.cards = cards
	slog.InfoContext(ctx, "Cards loaded", "count", len(cards))
	return s, nil
}

// AddCardInput is a credit card without an id.
type AddCardInput struct {
	Name       string
	LastDigits string
	Limit      core.Money
	ClosingDay int
	DueDay     int
	Color      string
}

// AddCard validates the input, assigns a fresh id, appends the card and
// persists, returning the created record.
func (s *CardService) AddCard(ctx context.Context, in AddCardInput) (core.CreditCard, error) {
	card := core.CreditCard{
		ID:         s.newID(),
		Name:       in.Name,
		LastDigits: in.LastDigits,
		Limit:      in.Limit,
		ClosingDay: in.ClosingDay,
		DueDay:     in.DueDay,
		Color:      in.Color,
	}
	if err := card.Validate(); err != nil {
		return core.CreditCard{}, fmt.Errorf("validate card: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards = append(s.cards, card)
	if err := s.store.SaveCards(ctx, s.cards); err != nil {
		s.cards = s.cards[:len(s.cards)-1]
		return core.CreditCard{}, fmt.Errorf("persist cards: %w", err)
	}
	slog.InfoContext(ctx, "Card added", log.FieldCardID, card.ID, "name", card.Name, "last_digits", card.LastDigits)
	return card, nil
}

// RemoveCard deletes the card and cascades, deleting every transaction
// referencing it. The cascade runs first: RemoveByCard rolls itself back
// when its save fails, so a failure at either step never leaves a
// transaction referencing a deleted card. Removing an absent id is a
// no-op.
func (s *CardService) RemoveCard(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.cards[:0:0]
	removed := false
	for _, c := range s.cards {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return nil
	}

	if err := s.ledger.RemoveByCard(ctx, id); err != nil {
		return fmt.Errorf("cascade card transactions: %w", err)
	}

	previous := s.cards
	s.cards = kept
	if err := s.store.SaveCards(ctx, s.cards); err != nil {
		s.cards = previous
		return fmt.Errorf("persist cards: %w", err)
	}
	slog.InfoContext(ctx, "Card removed", log.FieldCardID, id)
	return nil
}

// Cards returns a copy of the card collection in insertion order.
func (s *CardService) Cards() []core.CreditCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.CreditCard(nil), s.cards...)
}

// TotalUsed sums the card's transactions dated in the current real-world
// month. Utilization always reflects "now", independent of the viewing
// cursor the user is browsing. A stale or unknown card id yields zero.
func (s *CardService) TotalUsed(cardID string) core.Money {
	month := core.YearMonthOf(s.now())
	var used core.Money
	for _, tx := range s.ledger.Transactions() {
		if tx.CardID == cardID && month.Contains(tx.Date) {
			used = used.Add(tx.Amount)
		}
	}
	return used
}

// Invoice lists the card's transactions for the given month/year with
// their sum. IsPaid stays false: payment tracking is not implemented.
func (s *CardService) Invoice(cardID string, month, year int) core.CardInvoice {
	inv := core.CardInvoice{CardID: cardID, Month: month, Year: year}
	ym := core.YearMonth{Year: year, Month: month}
	for _, tx := range s.ledger.Transactions() {
		if tx.CardID == cardID && ym.Contains(tx.Date) {
			inv.Transactions = append(inv.Transactions, tx)
			inv.TotalAmount = inv.TotalAmount.Add(tx.Amount)
		}
	}
	return inv
}

// Statuses returns every card with its computed utilization. The
// percentage is clamped to 100 and the available amount to zero.
func (s *CardService) Statuses() []core.CardStatus {
	cards := s.Cards()
	out := make([]core.CardStatus, len(cards))
	for i, c := range cards {
		used := s.TotalUsed(c.ID)
		pct := 0.0
		if c.Limit.Cents > 0 {
			pct = float64(used.Cents) / float64(c.Limit.Cents) * 100
			if pct > 100 {
				pct = 100
			}
		}
		available := c.Limit.Sub(used)
		if available.Cents < 0 {
			available = core.Money{}
		}
		out[i] = core.CardStatus{
			Card:           c,
			Used:           used,
			Available:      available,
			UsedPercentage: pct,
		}
	}
	return out
}
