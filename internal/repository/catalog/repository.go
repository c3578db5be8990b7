package catalog

import (
	"context"

	"tailorcart/internal/domain"
)

// Repository is the read side used at runtime plus the write side used by seed and import.
type Repository interface {
	Vendor(ctx context.Context, id string) (*domain.Vendor, error)
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
	CatalogItem(ctx context.Context, id string) (*domain.CatalogItem, error)
	ListItems(ctx context.Context, vendorID string) ([]domain.CatalogItem, error)
	FabricOptions(ctx context.Context, catalogItemID string) ([]domain.FabricOption, error)
	DeliveryOption(ctx context.Context, mode domain.DeliveryMode) (*domain.DeliveryOption, error)
	ListDeliveryOptions(ctx context.Context) ([]domain.DeliveryOption, error)

	UpsertVendor(ctx context.Context, v domain.Vendor) error
	UpsertItem(ctx context.Context, item domain.CatalogItem) error
	UpsertFabric(ctx context.Context, f domain.FabricOption) error
	UpsertDeliveryOption(ctx context.Context, d domain.DeliveryOption) error
}
