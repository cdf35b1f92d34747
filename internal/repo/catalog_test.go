package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"kasirprof/backend/internal/domain"
	"kasirprof/backend/internal/kv"
	"kasirprof/backend/internal/kv/memory"
)

// flakyStore wraps a kv.Store and fails reads or writes on demand.
type flakyStore struct {
	inner   kv.Store
	failGet bool
	failSet bool
}

func (f *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGet {
		return "", false, fmt.Errorf("disk on fire")
	}
	return f.inner.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key string, value string) error {
	if f.failSet {
		return fmt.Errorf("disk on fire")
	}
	return f.inner.Set(ctx, key, value)
}

func TestLoadAllReturnsEmptyWhenUnset(t *testing.T) {
	catalog := NewCatalog(memory.New())

	products, err := catalog.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty catalog, got %d products", len(products))
	}
}

func TestAddValidation(t *testing.T) {
	cases := []struct {
		name    string
		req     domain.ProductCreateRequest
		wantErr string
	}{
		{"empty name", domain.ProductCreateRequest{Name: "  ", Price: 100, CostPrice: 50, Stock: 1}, "name"},
		{"zero price", domain.ProductCreateRequest{Name: "Teh", Price: 0, CostPrice: 0, Stock: 1}, "price"},
		{"negative cost", domain.ProductCreateRequest{Name: "Teh", Price: 100, CostPrice: -1, Stock: 1}, "costPrice"},
		{"negative stock", domain.ProductCreateRequest{Name: "Teh", Price: 100, CostPrice: 50, Stock: -1}, "stock"},
		{"cost above price", domain.ProductCreateRequest{Name: "Teh", Price: 100, CostPrice: 101, Stock: 1}, "costPrice"},
		{"cost equals price ok", domain.ProductCreateRequest{Name: "Teh", Price: 100, CostPrice: 100, Stock: 0}, ""},
		{"valid", domain.ProductCreateRequest{Name: "Teh", Price: 5000, CostPrice: 3000, Stock: 10}, ""},
	}

	for _, tc := range cases {
		catalog := NewCatalog(memory.New())
		_, err := catalog.Add(context.Background(), tc.req)

		if tc.wantErr == "" {
			if err != nil {
				t.Fatalf("%s: expected success, got %v", tc.name, err)
			}
			continue
		}

		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
		if validation.Field != tc.wantErr {
			t.Fatalf("%s: expected field %q, got %q", tc.name, tc.wantErr, validation.Field)
		}

		// A rejected add must leave nothing behind.
		products, loadErr := catalog.LoadAll(context.Background())
		if loadErr != nil {
			t.Fatalf("%s: load failed: %v", tc.name, loadErr)
		}
		if len(products) != 0 {
			t.Fatalf("%s: expected nothing persisted after validation failure", tc.name)
		}
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	catalog := NewCatalog(memory.New())
	ctx := context.Background()

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		p, err := catalog.Add(ctx, domain.ProductCreateRequest{
			Name: fmt.Sprintf("Produk %d", i), Price: 1000, CostPrice: 500, Stock: 3,
		})
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if seen[p.ID] {
			t.Fatalf("duplicate id %d", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestLoadAllSortsByName(t *testing.T) {
	catalog := NewCatalog(memory.New())
	ctx := context.Background()

	for _, name := range []string{"Teh Celup", "Air Mineral", "Kopi Sachet"} {
		if _, err := catalog.Add(ctx, domain.ProductCreateRequest{Name: name, Price: 1000, CostPrice: 500, Stock: 3}); err != nil {
			t.Fatalf("add %s failed: %v", name, err)
		}
	}

	products, err := catalog.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := []string{"Air Mineral", "Kopi Sachet", "Teh Celup"}
	for i, name := range want {
		if products[i].Name != name {
			t.Fatalf("expected %s at index %d, got %s", name, i, products[i].Name)
		}
	}
}

func TestRemoveAbsentIDIsNoOp(t *testing.T) {
	catalog := NewCatalog(memory.New())
	ctx := context.Background()

	created, err := catalog.Add(ctx, domain.ProductCreateRequest{Name: "Teh", Price: 5000, CostPrice: 3000, Stock: 10})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := catalog.Remove(ctx, created.ID+999); err != nil {
		t.Fatalf("remove of absent id should not fail: %v", err)
	}

	products, err := catalog.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected catalog untouched, got %d products", len(products))
	}
}

func TestRemoveDeletesProduct(t *testing.T) {
	catalog := NewCatalog(memory.New())
	ctx := context.Background()

	created, err := catalog.Add(ctx, domain.ProductCreateRequest{Name: "Teh", Price: 5000, CostPrice: 3000, Stock: 10})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := catalog.Remove(ctx, created.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	products, err := catalog.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty catalog after remove")
	}
}

func TestStorageErrorsAreWrapped(t *testing.T) {
	flaky := &flakyStore{inner: memory.New(), failGet: true}
	catalog := NewCatalog(flaky)

	if _, err := catalog.LoadAll(context.Background()); !errors.Is(err, ErrStorageRead) {
		t.Fatalf("expected ErrStorageRead, got %v", err)
	}

	flaky.failGet = false
	flaky.failSet = true
	_, err := catalog.Add(context.Background(), domain.ProductCreateRequest{Name: "Teh", Price: 5000, CostPrice: 3000, Stock: 10})
	if !errors.Is(err, ErrStorageWrite) {
		t.Fatalf("expected ErrStorageWrite, got %v", err)
	}
}
