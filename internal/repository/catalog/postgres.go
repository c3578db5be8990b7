package catalog

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tailorcart/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Vendor(ctx context.Context, id string) (*domain.Vendor, error) {
	const q = `
SELECT id, name, COALESCE(location_description, '')
FROM vendors
WHERE id = $1
`
	var v domain.Vendor
	if err := r.pool.QueryRow(ctx, q, id).Scan(&v.ID, &v.Name, &v.LocationDescription); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("catalog repo: vendor id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("catalog repo: vendor id=%s error=%v", id, err)
		return nil, err
	}
	return &v, nil
}

func (r *postgresRepo) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	const q = `
SELECT id, name, COALESCE(location_description, '')
FROM vendors
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Vendor{}
	for rows.Next() {
		var v domain.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.LocationDescription); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

func (r *postgresRepo) CatalogItem(ctx context.Context, id string) (*domain.CatalogItem, error) {
	const q = `
SELECT id, vendor_id, category, name, COALESCE(image_ref, ''), price
FROM catalog_items
WHERE id = $1
`
	var it domain.CatalogItem
	err := r.pool.QueryRow(ctx, q, id).Scan(&it.ID, &it.VendorID, &it.Category, &it.Name, &it.ImageRef, &it.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("catalog repo: item id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("catalog repo: item id=%s error=%v", id, err)
		return nil, err
	}
	return &it, nil
}

func (r *postgresRepo) ListItems(ctx context.Context, vendorID string) ([]domain.CatalogItem, error) {
	const q = `
SELECT id, vendor_id, category, name, COALESCE(image_ref, ''), price
FROM catalog_items
WHERE vendor_id = $1
ORDER BY category ASC, name ASC
`
	rows, err := r.pool.Query(ctx, q, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.CatalogItem{}
	for rows.Next() {
		var it domain.CatalogItem
		if err := rows.Scan(&it.ID, &it.VendorID, &it.Category, &it.Name, &it.ImageRef, &it.Price); err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("catalog repo: list items vendor_id=%s count=%d", vendorID, len(result))
	return result, nil
}

func (r *postgresRepo) FabricOptions(ctx context.Context, catalogItemID string) ([]domain.FabricOption, error) {
	const q = `
SELECT f.id, cf.catalog_item_id, f.type, COALESCE(f.description, ''), f.additional_price
FROM catalog_item_fabrics cf
JOIN fabric_options f ON f.id = cf.fabric_option_id
WHERE cf.catalog_item_id = $1
ORDER BY f.additional_price ASC, f.type ASC
`
	rows, err := r.pool.Query(ctx, q, catalogItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.FabricOption{}
	for rows.Next() {
		var f domain.FabricOption
		if err := rows.Scan(&f.ID, &f.CatalogItemID, &f.Type, &f.Description, &f.AdditionalPrice); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

func (r *postgresRepo) DeliveryOption(ctx context.Context, mode domain.DeliveryMode) (*domain.DeliveryOption, error) {
	const q = `
SELECT mode, label, cost
FROM delivery_options
WHERE mode = $1
`
	var d domain.DeliveryOption
	var m string
	if err := r.pool.QueryRow(ctx, q, string(mode)).Scan(&m, &d.Label, &d.Cost); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	d.Mode = domain.DeliveryMode(m)
	return &d, nil
}

func (r *postgresRepo) ListDeliveryOptions(ctx context.Context) ([]domain.DeliveryOption, error) {
	rows, err := r.pool.Query(ctx, `SELECT mode, label, cost FROM delivery_options ORDER BY cost ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.DeliveryOption{}
	for rows.Next() {
		var d domain.DeliveryOption
		var m string
		if err := rows.Scan(&m, &d.Label, &d.Cost); err != nil {
			return nil, err
		}
		d.Mode = domain.DeliveryMode(m)
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *postgresRepo) UpsertVendor(ctx context.Context, v domain.Vendor) error {
	const q = `
INSERT INTO vendors (id, name, location_description)
VALUES ($1, $2, NULLIF($3, ''))
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    location_description = EXCLUDED.location_description
`
	if _, err := r.pool.Exec(ctx, q, v.ID, v.Name, v.LocationDescription); err != nil {
		r.logger.Printf("catalog repo: upsert vendor id=%s error=%v", v.ID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) UpsertItem(ctx context.Context, it domain.CatalogItem) error {
	const q = `
INSERT INTO catalog_items (id, vendor_id, category, name, image_ref, price)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
ON CONFLICT (id) DO UPDATE
SET vendor_id = EXCLUDED.vendor_id,
    category = EXCLUDED.category,
    name = EXCLUDED.name,
    image_ref = EXCLUDED.image_ref,
    price = EXCLUDED.price
`
	if _, err := r.pool.Exec(ctx, q, it.ID, it.VendorID, it.Category, it.Name, it.ImageRef, it.Price); err != nil {
		r.logger.Printf("catalog repo: upsert item id=%s error=%v", it.ID, err)
		return err
	}
	return nil
}

// UpsertFabric stores the option and, when CatalogItemID is set, links it to that item.
func (r *postgresRepo) UpsertFabric(ctx context.Context, f domain.FabricOption) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
INSERT INTO fabric_options (id, type, description, additional_price)
VALUES ($1, $2, NULLIF($3, ''), $4)
ON CONFLICT (id) DO UPDATE
SET type = EXCLUDED.type,
    description = EXCLUDED.description,
    additional_price = EXCLUDED.additional_price
`, f.ID, f.Type, f.Description, f.AdditionalPrice); err != nil {
		r.logger.Printf("catalog repo: upsert fabric id=%s error=%v", f.ID, err)
		return err
	}
	if f.CatalogItemID != "" {
		if _, err := tx.Exec(ctx, `
INSERT INTO catalog_item_fabrics (catalog_item_id, fabric_option_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`, f.CatalogItemID, f.ID); err != nil {
			r.logger.Printf("catalog repo: link fabric id=%s item_id=%s error=%v", f.ID, f.CatalogItemID, err)
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) UpsertDeliveryOption(ctx context.Context, d domain.DeliveryOption) error {
	const q = `
INSERT INTO delivery_options (mode, label, cost)
VALUES ($1, $2, $3)
ON CONFLICT (mode) DO UPDATE
SET label = EXCLUDED.label,
    cost = EXCLUDED.cost
`
	_, err := r.pool.Exec(ctx, q, string(d.Mode), d.Label, d.Cost)
	return err
}
