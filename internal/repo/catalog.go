package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"kasirprof/backend/internal/domain"
	"kasirprof/backend/internal/kv"
	"kasirprof/backend/internal/xid"
)

const productsKey = "pos:products"

// Catalog owns the authoritative product collection, persisted as one JSON
// array under a single key. Every mutation is a full-collection replace, so
// mutating callers must read-modify-write the whole slice.
type Catalog struct {
	store kv.Store
}

func NewCatalog(store kv.Store) *Catalog {
	return &Catalog{store: store}
}

// LoadAll returns every product sorted by name, or an empty slice when the
// catalog entry does not exist yet.
func (c *Catalog) LoadAll(ctx context.Context) ([]domain.Product, error) {
	raw, ok, err := c.store.Get(ctx, productsKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}
	if !ok {
		return []domain.Product{}, nil
	}

	var products []domain.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}

	slices.SortFunc(products, func(a, b domain.Product) int {
		return strings.Compare(a.Name, b.Name)
	})

	return products, nil
}

// SaveAll replaces the persisted collection with products.
func (c *Catalog) SaveAll(ctx context.Context, products []domain.Product) error {
	payload, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	if err := c.store.Set(ctx, productsKey, string(payload)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	return nil
}

// Add validates the request, assigns a unique id and persists the grown
// collection. Nothing is written when validation fails.
func (c *Catalog) Add(ctx context.Context, req domain.ProductCreateRequest) (*domain.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if req.Price < 1 {
		return nil, &ValidationError{Field: "price", Reason: "must be greater than zero"}
	}
	if req.CostPrice < 0 {
		return nil, &ValidationError{Field: "costPrice", Reason: "must not be negative"}
	}
	if req.Stock < 0 {
		return nil, &ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	if req.CostPrice > req.Price {
		return nil, &ValidationError{Field: "costPrice", Reason: "must not exceed price"}
	}

	products, err := c.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	product := domain.Product{
		ID:        xid.Next(),
		Name:      req.Name,
		CostPrice: req.CostPrice,
		Price:     req.Price,
		Stock:     req.Stock,
	}
	products = append(products, product)

	if err := c.SaveAll(ctx, products); err != nil {
		return nil, err
	}
	return &product, nil
}

// Remove filters the id out and persists the remainder. Removing an absent id
// is a no-op, not an error. Past transactions keep their own item snapshots,
// so deleting a product never rewrites history.
func (c *Catalog) Remove(ctx context.Context, id int64) error {
	products, err := c.LoadAll(ctx)
	if err != nil {
		return err
	}

	kept := slices.DeleteFunc(products, func(p domain.Product) bool {
		return p.ID == id
	})

	return c.SaveAll(ctx, kept)
}
