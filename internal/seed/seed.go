package seed

import (
	"context"
	"fmt"

	"tailorcart/internal/domain"
	"tailorcart/internal/importer"
)

type vendorSeed struct {
	Vendor domain.Vendor
	Items  []itemSeed
}

type itemSeed struct {
	Item    domain.CatalogItem
	Fabrics []domain.FabricOption
}

var demoCatalog = []vendorSeed{
	{
		Vendor: domain.Vendor{ID: "demo-sari", Name: "Penjahit Sari", LocationDescription: "Jl. Dago 12, Bandung"},
		Items: []itemSeed{
			{
				Item: domain.CatalogItem{ID: "demo-kebaya", Category: "jahit", Name: "Kebaya Modern", Price: 95000},
				Fabrics: []domain.FabricOption{
					{ID: "demo-brokat", Type: "Brokat", Description: "Brokat Prancis", AdditionalPrice: 20000},
					{ID: "demo-katun", Type: "Katun", Description: "Katun Jepang", AdditionalPrice: 10000},
				},
			},
			{
				Item: domain.CatalogItem{ID: "demo-kemeja", Category: "jahit", Name: "Kemeja Batik", Price: 60000},
				Fabrics: []domain.FabricOption{
					{ID: "demo-batik", Type: "Batik Tulis", AdditionalPrice: 45000},
				},
			},
		},
	},
	{
		Vendor: domain.Vendor{ID: "demo-jaya", Name: "Vermak Jaya", LocationDescription: "Pasar Baru Lt. 2"},
		Items: []itemSeed{
			{Item: domain.CatalogItem{ID: "demo-potong-celana", Category: "vermak", Name: "Potong Celana", Price: 25000}},
			{Item: domain.CatalogItem{ID: "demo-ganti-resleting", Category: "vermak", Name: "Ganti Resleting", Price: 15000}},
		},
	},
}

var demoDelivery = []domain.DeliveryOption{
	{Mode: domain.DeliveryPickup, Label: "Ambil di toko", Cost: 0},
	{Mode: domain.DeliveryCourier, Label: "Antar kurir", Cost: 15000},
}

// Apply inserts the demo catalog for manual testing. Upserts make it idempotent.
func Apply(ctx context.Context, repo importer.CatalogWriter) error {
	for _, vs := range demoCatalog {
		if err := repo.UpsertVendor(ctx, vs.Vendor); err != nil {
			return fmt.Errorf("upsert vendor %s: %w", vs.Vendor.ID, err)
		}
		for _, is := range vs.Items {
			item := is.Item
			item.VendorID = vs.Vendor.ID
			if err := repo.UpsertItem(ctx, item); err != nil {
				return fmt.Errorf("upsert item %s: %w", item.ID, err)
			}
			for _, f := range is.Fabrics {
				f.CatalogItemID = item.ID
				if err := repo.UpsertFabric(ctx, f); err != nil {
					return fmt.Errorf("upsert fabric %s: %w", f.ID, err)
				}
			}
		}
	}
	for _, d := range demoDelivery {
		if err := repo.UpsertDeliveryOption(ctx, d); err != nil {
			return fmt.Errorf("upsert delivery %s: %w", d.Mode, err)
		}
	}
	return nil
}
