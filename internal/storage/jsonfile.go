package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/core"
)

const (
	transactionsFile = "transactions.json"
	cardsFile        = "cards.json"
)

// FileStore keeps each collection in a JSON file under a data directory.
// Writes go through a temp file plus rename so a crash mid-write never
// leaves a torn record behind.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Close() error { return nil }

type transactionRecord struct {
	ID          string             `json:"id"`
	Description string             `json:"description"`
	AmountCents int64              `json:"amount_cents"`
	Category    string             `json:"category"`
	Date        string             `json:"date"`
	Type        string             `json:"type"`
	CardID      string             `json:"card_id,omitempty"`
	Installment *installmentRecord `json:"installment,omitempty"`
}

type installmentRecord struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type cardRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	LastDigits string `json:"last_digits"`
	LimitCents int64  `json:"limit_cents"`
	ClosingDay int    `json:"closing_day"`
	DueDay     int    `json:"due_day"`
	Color      string `json:"color"`
}

func (s *FileStore) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	var records []transactionRecord
	if err := s.read(transactionsFile, &records); err != nil {
		return nil, err
	}
	txs := make([]core.Transaction, 0, len(records))
	for _, r := range records {
		date, err := core.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", r.ID, err)
		}
		tx := core.Transaction{
			ID:          r.ID,
			Description: r.Description,
			Amount:      core.Money{Cents: r.AmountCents},
			Category:    core.Category(r.Category),
			Date:        date,
			Type:        core.TransactionType(r.Type),
			CardID:      r.CardID,
		}
		if r.Installment != nil {
			tx.Installment = &core.InstallmentInfo{Current: r.Installment.Current, Total: r.Installment.Total}
		}
		txs = append(txs, tx)
	}
	slog.DebugContext(ctx, "Transactions loaded from file", "count", len(txs), "dir", s.dir)
	return txs, nil
}

func (s *FileStore) SaveTransactions(ctx context.Context, txs []core.Transaction) error {
	records := make([]transactionRecord, len(txs))
	for i, tx := range txs {
		records[i] = transactionRecord{
			ID:          tx.ID,
			Description: tx.Description,
			AmountCents: tx.Amount.Cents,
			Category:    string(tx.Category),
			Date:        tx.Date.ISO(),
			Type:        string(tx.Type),
			CardID:      tx.CardID,
		}
		if tx.Installment != nil {
			records[i].Installment = &installmentRecord{Current: tx.Installment.Current, Total: tx.Installment.Total}
		}
	}
	return s.write(ctx, transactionsFile, records)
}

func (s *FileStore) LoadCards(ctx context.Context) ([]core.CreditCard, error) {
	var records []cardRecord
	if err := s.read(cardsFile, &records); err != nil {
		return nil, err
	}
	cards := make([]core.CreditCard, len(records))
	for i, r := range records {
		cards[i] = core.CreditCard{
			ID:         r.ID,
			Name:       r.Name,
			LastDigits: r.LastDigits,
			Limit:      core.Money{Cents: r.LimitCents},
			ClosingDay: r.ClosingDay,
			DueDay:     r.DueDay,
			Color:      r.Color,
		}
	}
	slog.DebugContext(ctx, "Cards loaded from file", "count", len(cards), "dir", s.dir)
	return cards, nil
}

func (s *FileStore) SaveCards(ctx context.Context, cards []core.CreditCard) error {
	records := make([]cardRecord, len(cards))
	for i, c := range cards {
		records[i] = cardRecord{
			ID:         c.ID,
			Name:       c.Name,
			LastDigits: c.LastDigits,
			LimitCents: c.Limit.Cents,
			ClosingDay: c.ClosingDay,
			DueDay:     c.DueDay,
			Color:      c.Color,
		}
	}
	return s.write(ctx, cardsFile, records)
}

func (s *FileStore) read(name string, out any) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: nothing persisted yet.
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) write(ctx context.Context, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	slog.DebugContext(ctx, "Collection persisted", "file", name, "bytes", len(data))
	return nil
}
