package service

import (
	"context"
	"fmt"

	"kasirprof/backend/internal/domain"
	"kasirprof/backend/internal/repo"
)

type SessionState string

const (
	StateBuilding        SessionState = "building"
	StateAwaitingPayment SessionState = "awaiting_payment"
	StateCommitting      SessionState = "committing"
	StateCompleted       SessionState = "completed"
)

// Session is one checkout in progress: the ephemeral cart, the payment
// amount, and a catalog snapshot the cart-time stock checks run against.
// The snapshot is a cheap optimistic guard for responsiveness only; the
// commit never trusts it and re-validates against freshly loaded state.
type Session struct {
	state    SessionState
	products map[int64]domain.Product
	lines    []domain.CartLine
	payment  int64
}

// NewSession loads the current catalog and starts a session in Building.
func (s *Service) NewSession(ctx context.Context) (*Session, error) {
	products, err := s.catalog.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	cached := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		cached[p.ID] = p
	}

	return &Session{
		state:    StateBuilding,
		products: cached,
	}, nil
}

func (sess *Session) State() SessionState {
	return sess.state
}

// Add puts one unit of the product into the cart. The add is refused with
// ErrOutOfStock once the cached stock is fully reserved by the cart.
func (sess *Session) Add(productID int64) error {
	if sess.state != StateBuilding {
		return fmt.Errorf("cart is not editable in state %s", sess.state)
	}

	product, ok := sess.products[productID]
	if !ok {
		return fmt.Errorf("product %d: %w", productID, repo.ErrNotFound)
	}

	for i := range sess.lines {
		if sess.lines[i].Product.ID == productID {
			if sess.lines[i].Quantity >= product.Stock {
				return fmt.Errorf("%s: %w", product.Name, ErrOutOfStock)
			}
			sess.lines[i].Quantity++
			return nil
		}
	}

	if product.Stock < 1 {
		return fmt.Errorf("%s: %w", product.Name, ErrOutOfStock)
	}
	sess.lines = append(sess.lines, domain.CartLine{Product: product, Quantity: 1})
	return nil
}

// Remove takes one unit of the product out of the cart, dropping the line
// when its quantity reaches zero. Removing an absent product is a no-op.
func (sess *Session) Remove(productID int64) {
	if sess.state != StateBuilding {
		return
	}
	for i := range sess.lines {
		if sess.lines[i].Product.ID != productID {
			continue
		}
		if sess.lines[i].Quantity > 1 {
			sess.lines[i].Quantity--
			return
		}
		sess.lines = append(sess.lines[:i], sess.lines[i+1:]...)
		return
	}
}

// Lines returns a copy of the cart in insertion order.
func (sess *Session) Lines() []domain.CartLine {
	lines := make([]domain.CartLine, len(sess.lines))
	copy(lines, sess.lines)
	return lines
}

func (sess *Session) Total() int64 {
	total := int64(0)
	for _, line := range sess.lines {
		total += line.Product.Price * int64(line.Quantity)
	}
	return total
}

// BeginPayment moves the session to AwaitingPayment. An empty cart is
// rejected and the session stays in Building.
func (sess *Session) BeginPayment() error {
	if sess.state != StateBuilding {
		return fmt.Errorf("payment cannot start in state %s", sess.state)
	}
	if len(sess.lines) == 0 {
		return ErrEmptyCart
	}
	sess.state = StateAwaitingPayment
	return nil
}

// CancelPayment returns to Building so the operator can adjust the cart.
// Abandoning a session before commit has no persisted side effect.
func (sess *Session) CancelPayment() {
	if sess.state == StateAwaitingPayment {
		sess.state = StateBuilding
	}
}

func (sess *Session) SetPayment(amount int64) {
	sess.payment = amount
}

// Change is max(payment - total, 0); it never goes negative while the
// payment is still short.
func (sess *Session) Change() int64 {
	change := sess.payment - sess.Total()
	if change < 0 {
		return 0
	}
	return change
}
