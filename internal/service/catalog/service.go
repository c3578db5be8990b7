// Package catalog serves the read-only vendor catalog. Entries are cached
// after the first lookup since the catalog does not change while the app runs.
package catalog

import (
	"context"
	"strings"
	"sync"

	"tailorcart/internal/domain"
	catalogrepo "tailorcart/internal/repository/catalog"
)

type Service struct {
	repo catalogrepo.Repository

	mu      sync.RWMutex
	vendors map[string]domain.Vendor
	items   map[string]domain.CatalogItem
	fabrics map[string][]domain.FabricOption
}

func New(repo catalogrepo.Repository) *Service {
	return &Service{
		repo:    repo,
		vendors: make(map[string]domain.Vendor),
		items:   make(map[string]domain.CatalogItem),
		fabrics: make(map[string][]domain.FabricOption),
	}
}

func (s *Service) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	vendors, err := s.repo.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for _, v := range vendors {
		s.vendors[v.ID] = v
	}
	s.mu.Unlock()
	return vendors, nil
}

func (s *Service) Vendor(ctx context.Context, id string) (*domain.Vendor, error) {
	id = strings.TrimSpace(id)
	s.mu.RLock()
	v, ok := s.vendors[id]
	s.mu.RUnlock()
	if ok {
		return &v, nil
	}
	found, err := s.repo.Vendor(ctx, id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.vendors[id] = *found
	s.mu.Unlock()
	return found, nil
}

// ListItems returns a vendor's items; an unknown vendor is ErrNotFound.
func (s *Service) ListItems(ctx context.Context, vendorID string) ([]domain.CatalogItem, error) {
	if _, err := s.Vendor(ctx, vendorID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx, strings.TrimSpace(vendorID))
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for _, it := range items {
		s.items[it.ID] = it
	}
	s.mu.Unlock()
	return items, nil
}

// ItemsByCategory filters a vendor's items to one service category.
func (s *Service) ItemsByCategory(ctx context.Context, vendorID, category string) ([]domain.CatalogItem, error) {
	items, err := s.ListItems(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return items, nil
	}
	out := make([]domain.CatalogItem, 0, len(items))
	for _, it := range items {
		if strings.EqualFold(it.Category, category) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *Service) CatalogItem(ctx context.Context, id string) (*domain.CatalogItem, error) {
	id = strings.TrimSpace(id)
	s.mu.RLock()
	it, ok := s.items[id]
	s.mu.RUnlock()
	if ok {
		return &it, nil
	}
	found, err := s.repo.CatalogItem(ctx, id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.items[id] = *found
	s.mu.Unlock()
	return found, nil
}

// FabricOptions lists the fabrics offered for an item; an unknown item is ErrNotFound.
func (s *Service) FabricOptions(ctx context.Context, catalogItemID string) ([]domain.FabricOption, error) {
	catalogItemID = strings.TrimSpace(catalogItemID)
	s.mu.RLock()
	opts, ok := s.fabrics[catalogItemID]
	s.mu.RUnlock()
	if ok {
		return append([]domain.FabricOption(nil), opts...), nil
	}
	if _, err := s.CatalogItem(ctx, catalogItemID); err != nil {
		return nil, err
	}
	opts, err := s.repo.FabricOptions(ctx, catalogItemID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.fabrics[catalogItemID] = opts
	s.mu.Unlock()
	return append([]domain.FabricOption(nil), opts...), nil
}

func (s *Service) DeliveryOption(ctx context.Context, mode domain.DeliveryMode) (*domain.DeliveryOption, error) {
	return s.repo.DeliveryOption(ctx, domain.DeliveryMode(strings.ToLower(strings.TrimSpace(string(mode)))))
}

func (s *Service) ListDeliveryOptions(ctx context.Context) ([]domain.DeliveryOption, error) {
	return s.repo.ListDeliveryOptions(ctx)
}
