// Package storage persists the engine's collections. State is loaded
// wholesale at startup and rewritten wholesale after every mutation; the
// engine owns the in-memory truth and a Store is only its durable copy.
package storage

import (
	"context"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/core"
)

// Store is the persistence collaborator. Implementations must report
// write failures instead of swallowing them: the engine never assumes a
// save succeeded without confirmation.
type Store interface {
	LoadTransactions(ctx context.Context) ([]core.Transaction, error)
	SaveTransactions(ctx context.Context, txs []core.Transaction) error
	LoadCards(ctx context.Context) ([]core.CreditCard, error)
	SaveCards(ctx context.Context, cards []core.CreditCard) error
	Close() error
}
