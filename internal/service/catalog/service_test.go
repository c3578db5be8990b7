package catalog

import (
	"context"
	"errors"
	"testing"

	"tailorcart/internal/domain"
)

type countingRepo struct {
	vendorCalls int
	itemCalls   int
	fabricCalls int
}

func (r *countingRepo) Vendor(_ context.Context, id string) (*domain.Vendor, error) {
	r.vendorCalls++
	if id != "v1" {
		return nil, domain.ErrNotFound
	}
	return &domain.Vendor{ID: "v1", Name: "Sari"}, nil
}

func (r *countingRepo) ListVendors(context.Context) ([]domain.Vendor, error) {
	return []domain.Vendor{{ID: "v1", Name: "Sari"}}, nil
}

func (r *countingRepo) CatalogItem(_ context.Context, id string) (*domain.CatalogItem, error) {
	r.itemCalls++
	if id != "i1" {
		return nil, domain.ErrNotFound
	}
	return &domain.CatalogItem{ID: "i1", VendorID: "v1", Category: "jahit", Name: "Kebaya", Price: 95000}, nil
}

func (r *countingRepo) ListItems(_ context.Context, vendorID string) ([]domain.CatalogItem, error) {
	return []domain.CatalogItem{
		{ID: "i1", VendorID: vendorID, Category: "jahit", Name: "Kebaya", Price: 95000},
		{ID: "i9", VendorID: vendorID, Category: "vermak", Name: "Potong", Price: 20000},
	}, nil
}

func (r *countingRepo) FabricOptions(_ context.Context, itemID string) ([]domain.FabricOption, error) {
	r.fabricCalls++
	return []domain.FabricOption{{ID: "f1", CatalogItemID: itemID, Type: "Brokat", AdditionalPrice: 20000}}, nil
}

func (r *countingRepo) DeliveryOption(_ context.Context, mode domain.DeliveryMode) (*domain.DeliveryOption, error) {
	if mode != domain.DeliveryPickup {
		return nil, domain.ErrNotFound
	}
	return &domain.DeliveryOption{Mode: mode, Label: "Ambil"}, nil
}

func (r *countingRepo) ListDeliveryOptions(context.Context) ([]domain.DeliveryOption, error) {
	return nil, nil
}

func (r *countingRepo) UpsertVendor(context.Context, domain.Vendor) error { return nil }
func (r *countingRepo) UpsertItem(context.Context, domain.CatalogItem) error { return nil }
func (r *countingRepo) UpsertFabric(context.Context, domain.FabricOption) error { return nil }
func (r *countingRepo) UpsertDeliveryOption(context.Context, domain.DeliveryOption) error { return nil }

func TestService_CachesLookups(t *testing.T) {
	repo := &countingRepo{}
	svc := New(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.CatalogItem(ctx, "i1"); err != nil {
			t.Fatalf("item: %v", err)
		}
		if _, err := svc.Vendor(ctx, "v1"); err != nil {
			t.Fatalf("vendor: %v", err)
		}
		if _, err := svc.FabricOptions(ctx, "i1"); err != nil {
			t.Fatalf("fabrics: %v", err)
		}
	}
	if repo.itemCalls != 1 || repo.vendorCalls != 1 || repo.fabricCalls != 1 {
		t.Fatalf("expected one repo call each, got items=%d vendors=%d fabrics=%d", repo.itemCalls, repo.vendorCalls, repo.fabricCalls)
	}
}

func TestService_NotFoundIsNotCached(t *testing.T) {
	repo := &countingRepo{}
	svc := New(repo)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.CatalogItem(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	}
	if repo.itemCalls != 2 {
		t.Fatalf("expected misses to reach the repo, got %d", repo.itemCalls)
	}
	if _, err := svc.FabricOptions(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for fabrics of unknown item, got %v", err)
	}
	if repo.fabricCalls != 0 {
		t.Fatalf("fabrics should not be queried for unknown item")
	}
}

func TestService_ItemsByCategory(t *testing.T) {
	svc := New(&countingRepo{})
	ctx := context.Background()

	items, err := svc.ItemsByCategory(ctx, "v1", " Vermak ")
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 || items[0].ID != "i9" {
		t.Fatalf("unexpected items %+v", items)
	}
	if _, err := svc.ItemsByCategory(ctx, "nope", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown vendor, got %v", err)
	}
	// ListItems warms the item cache.
	if _, err := svc.CatalogItem(ctx, "i9"); err != nil {
		t.Fatalf("cached item: %v", err)
	}
}

func TestService_DeliveryOptionNormalisesMode(t *testing.T) {
	svc := New(&countingRepo{})
	opt, err := svc.DeliveryOption(context.Background(), " PICKUP ")
	if err != nil || opt.Mode != domain.DeliveryPickup {
		t.Fatalf("unexpected %+v %v", opt, err)
	}
}
