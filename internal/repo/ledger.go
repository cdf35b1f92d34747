package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"kasirprof/backend/internal/domain"
	"kasirprof/backend/internal/kv"
)

const transactionsKey = "pos:transactions"

// Ledger owns the append-only transaction collection. Existing records are
// never mutated or removed.
type Ledger struct {
	store kv.Store
}

func NewLedger(store kv.Store) *Ledger {
	return &Ledger{store: store}
}

// LoadAll returns every transaction in commit order, or an empty slice when
// the ledger entry does not exist yet.
func (l *Ledger) LoadAll(ctx context.Context) ([]domain.Transaction, error) {
	raw, ok, err := l.store.Get(ctx, transactionsKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}
	if !ok {
		return []domain.Transaction{}, nil
	}

	var transactions []domain.Transaction
	if err := json.Unmarshal([]byte(raw), &transactions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}
	return transactions, nil
}

// Append reads the current collection, appends tx and persists the whole
// collection back.
func (l *Ledger) Append(ctx context.Context, tx domain.Transaction) error {
	transactions, err := l.LoadAll(ctx)
	if err != nil {
		return err
	}

	transactions = append(transactions, tx)
	payload, err := json.Marshal(transactions)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	if err := l.store.Set(ctx, transactionsKey, string(payload)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	return nil
}

// FindByID returns the transaction with the given id or ErrNotFound.
func (l *Ledger) FindByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	transactions, err := l.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		if transactions[i].ID == id {
			return &transactions[i], nil
		}
	}
	return nil, ErrNotFound
}
