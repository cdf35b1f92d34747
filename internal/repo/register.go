package repo

import (
	"context"
	"fmt"
	"log"
	"time"

	"kasirprof/backend/internal/domain"
	"kasirprof/backend/internal/xid"
)

// Register models the catalog and the ledger as one logical aggregate so the
// whole commit lives behind a single CommitSale operation. The two underlying
// writes are still sequential and non-atomic; the fixed catalog-then-ledger
// order guarantees a crash between them can only undercount inventory, never
// oversell it.
type Register struct {
	catalog *Catalog
	ledger  *Ledger
}

func NewRegister(catalog *Catalog, ledger *Ledger) *Register {
	return &Register{catalog: catalog, ledger: ledger}
}

// CommitSale converts cart lines into a committed transaction:
//
//  1. reload the authoritative catalog, ignoring whatever the session cached
//  2. re-check stock for every line; any shortfall aborts the whole commit
//     with StockChangedError and no write at all
//  3. decrement stock for every line and persist the catalog
//  4. append the transaction record to the ledger
//
// If step 4 fails after step 3 succeeded, the decrement stands: inventory
// then undercounts until the operator reconciles it, which is the safe side
// of the missing cross-key transaction.
func (r *Register) CommitSale(ctx context.Context, lines []domain.CartLine) (*domain.Transaction, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("commit requires at least one cart line")
	}

	products, err := r.catalog.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[int64]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}

	var changed []string
	for _, line := range lines {
		i, exists := index[line.Product.ID]
		if !exists || products[i].Stock < line.Quantity {
			changed = append(changed, line.Product.Name)
		}
	}
	if len(changed) > 0 {
		return nil, &StockChangedError{Products: changed}
	}

	total := int64(0)
	items := make([]domain.TransactionItem, 0, len(lines))
	for _, line := range lines {
		i := index[line.Product.ID]
		products[i].Stock -= line.Quantity

		// Snapshot price and costPrice from the session's product copy:
		// the operator confirmed the sale at those values.
		items = append(items, domain.TransactionItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			CostPrice: line.Product.CostPrice,
			Quantity:  line.Quantity,
		})
		total += line.Product.Price * int64(line.Quantity)
	}

	if err := r.catalog.SaveAll(ctx, products); err != nil {
		return nil, err
	}

	tx := domain.Transaction{
		ID:    xid.Next(),
		Date:  time.Now().UTC(),
		Total: total,
		Items: items,
	}

	if err := r.ledger.Append(ctx, tx); err != nil {
		// The stock decrement is already durable and is not rolled back.
		log.Printf("[register] WARN: ledger append failed after catalog write, stock stays decremented: %v", err)
		return nil, fmt.Errorf("sale not recorded, stock already decremented: %w", err)
	}

	return &tx, nil
}
