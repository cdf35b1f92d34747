package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"kasirprof/backend/internal/domain"
	"kasirprof/backend/internal/receipt"
	"kasirprof/backend/internal/repo"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientPayment = errors.New("payment amount is less than the total")
	ErrOutOfStock          = errors.New("not enough stock")
)

type Service struct {
	catalog  *repo.Catalog
	ledger   *repo.Ledger
	register *repo.Register
	printer  *receipt.Printer
	lowStock int
}

func New(catalog *repo.Catalog, ledger *repo.Ledger, register *repo.Register, printer *receipt.Printer, lowStockThreshold int) *Service {
	if lowStockThreshold < 1 {
		lowStockThreshold = 10
	}
	return &Service{
		catalog:  catalog,
		ledger:   ledger,
		register: register,
		printer:  printer,
		lowStock: lowStockThreshold,
	}
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.LoadAll(ctx)
}

func (s *Service) CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.Product, error) {
	created, err := s.catalog.Add(ctx, req)
	if err != nil {
		return domain.Product{}, err
	}
	return *created, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.catalog.Remove(ctx, id)
}

// ListTransactions returns the sales history newest first.
func (s *Service) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	transactions, err := s.ledger.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(transactions, func(a, b domain.Transaction) int {
		if a.Date.Equal(b.Date) {
			switch {
			case a.ID > b.ID:
				return -1
			case a.ID < b.ID:
				return 1
			}
			return 0
		}
		if a.Date.After(b.Date) {
			return -1
		}
		return 1
	})

	return transactions, nil
}

// Checkout runs one full session on behalf of a stateless API caller: build
// the cart with the optimistic per-add stock checks, take the payment, then
// confirm through the commit protocol.
func (s *Service) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResponse, error) {
	session, err := s.NewSession(ctx)
	if err != nil {
		return domain.CheckoutResponse{}, err
	}

	for _, item := range req.Items {
		if item.Qty < 1 {
			return domain.CheckoutResponse{}, fmt.Errorf("quantity for product %d must be positive", item.ProductID)
		}
		for n := 0; n < item.Qty; n++ {
			if err := session.Add(item.ProductID); err != nil {
				return domain.CheckoutResponse{}, err
			}
		}
	}

	if err := session.BeginPayment(); err != nil {
		return domain.CheckoutResponse{}, err
	}
	session.SetPayment(req.PaymentAmount)

	return s.Confirm(ctx, session)
}

// Confirm commits the session's cart. On StockChangedError or a storage
// failure the session stays in AwaitingPayment so the operator can adjust
// the cart or retry; on success the session is cleared and completed.
func (s *Service) Confirm(ctx context.Context, session *Session) (domain.CheckoutResponse, error) {
	if session.state != StateAwaitingPayment {
		return domain.CheckoutResponse{}, fmt.Errorf("no payment in progress")
	}

	total := session.Total()
	if session.payment < total {
		return domain.CheckoutResponse{}, ErrInsufficientPayment
	}

	session.state = StateCommitting
	tx, err := s.register.CommitSale(ctx, session.Lines())
	if err != nil {
		session.state = StateAwaitingPayment
		return domain.CheckoutResponse{}, err
	}

	change := session.Change()
	session.lines = nil
	session.payment = 0
	session.state = StateCompleted

	return domain.CheckoutResponse{Transaction: *tx, Change: change}, nil
}

// SalesReport aggregates the whole ledger and the current catalog. Profit is
// computed from each item's sale-time costPrice snapshot, not the product's
// current costPrice.
func (s *Service) SalesReport(ctx context.Context) (domain.SalesReport, error) {
	transactions, err := s.ledger.LoadAll(ctx)
	if err != nil {
		return domain.SalesReport{}, err
	}

	report := domain.SalesReport{Transactions: len(transactions)}
	for _, tx := range transactions {
		report.TotalSales += tx.Total
		for _, item := range tx.Items {
			report.TotalProfit += (item.Price - item.CostPrice) * int64(item.Quantity)
		}
	}

	products, err := s.catalog.LoadAll(ctx)
	if err != nil {
		return domain.SalesReport{}, err
	}
	report.StockLevels = make([]domain.StockLevel, 0, len(products))
	for _, p := range products {
		report.StockLevels = append(report.StockLevels, domain.StockLevel{
			ProductID: p.ID,
			Name:      p.Name,
			Stock:     p.Stock,
			LowStock:  p.Stock <= s.lowStock,
		})
	}

	return report, nil
}

// Receipt renders the printable documents for a committed transaction.
// Rendering reads history only and never touches persisted state.
func (s *Service) Receipt(ctx context.Context, transactionID int64) (domain.ReceiptResponse, error) {
	tx, err := s.ledger.FindByID(ctx, transactionID)
	if err != nil {
		return domain.ReceiptResponse{}, err
	}
	return s.printer.Render(*tx)
}
