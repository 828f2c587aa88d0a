package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists both collections in a SQLite database. Saves
// replace the whole table inside one transaction, which keeps the
// rewrite-wholesale contract while still surviving a crash mid-save.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, category, date, type, card_id,
		       installment_current, installment_total
		FROM transactions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			tx       core.Transaction
			cents    int64
			category string
			date     string
			txType   string
			cardID   sql.NullString
			instCur  sql.NullInt64
			instTot  sql.NullInt64
		)
		if err := rows.Scan(&tx.ID, &tx.Description, &cents, &category, &date, &txType, &cardID, &instCur, &instTot); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Amount = core.Money{Cents: cents}
		tx.Category = core.Category(category)
		tx.Type = core.TransactionType(txType)
		tx.CardID = cardID.String
		tx.Date, err = core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
		if instCur.Valid && instTot.Valid {
			tx.Installment = &core.InstallmentInfo{Current: int(instCur.Int64), Total: int(instTot.Int64)}
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	slog.DebugContext(ctx, "Transactions loaded from sqlite", "count", len(txs))
	return txs, nil
}

func (s *SQLiteStore) SaveTransactions(ctx context.Context, txs []core.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transactions: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions
			(id, description, amount_cents, category, date, type, card_id,
			 installment_current, installment_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert transaction: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		cardID := sql.NullString{String: tx.CardID, Valid: tx.CardID != ""}
		var instCur, instTot sql.NullInt64
		if tx.Installment != nil {
			instCur = sql.NullInt64{Int64: int64(tx.Installment.Current), Valid: true}
			instTot = sql.NullInt64{Int64: int64(tx.Installment.Total), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, tx.ID, tx.Description, tx.Amount.Cents,
			string(tx.Category), tx.Date.ISO(), string(tx.Type), cardID, instCur, instTot); err != nil {
			return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
		}
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit save transactions: %w", err)
	}
	slog.DebugContext(ctx, "Transactions persisted to sqlite", "count", len(txs))
	return nil
}

func (s *SQLiteStore) LoadCards(ctx context.Context) ([]core.CreditCard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, last_digits, limit_cents, closing_day, due_day, color
		FROM credit_cards ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []core.CreditCard
	for rows.Next() {
		var (
			c     core.CreditCard
			cents int64
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.LastDigits, &cents, &c.ClosingDay, &c.DueDay, &c.Color); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		c.Limit = core.Money{Cents: cents}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	slog.DebugContext(ctx, "Cards loaded from sqlite", "count", len(cards))
	return cards, nil
}

func (s *SQLiteStore) SaveCards(ctx context.Context, cards []core.CreditCard) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save cards: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM credit_cards`); err != nil {
		return fmt.Errorf("clear cards: %w", err)
	}
	for _, c := range cards {
		if _, err := dbTx.ExecContext(ctx, `
			INSERT INTO credit_cards (id, name, last_digits, limit_cents, closing_day, due_day, color)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.LastDigits, c.Limit.Cents, c.ClosingDay, c.DueDay, c.Color); err != nil {
			return fmt.Errorf("insert card %s: %w", c.ID, err)
		}
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit save cards: %w", err)
	}
	slog.DebugContext(ctx, "Cards persisted to sqlite", "count", len(cards))
	return nil
}
