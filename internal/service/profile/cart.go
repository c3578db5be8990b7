package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tailorcart/internal/domain"
)

// CartView is the cart with its derived totals, read under one lock.
type CartView struct {
	Vendors       []domain.VendorCart
	SelectedTotal int64
	AllSelected   bool
}

func (s *Store) CartView() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartView{
		Vendors:       s.cart.Vendors(),
		SelectedTotal: s.cart.TotalSelectedPrice(),
		AllSelected:   s.cart.AllSelected(),
	}
}

func (s *Store) Cart() []domain.VendorCart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Vendors()
}

func (s *Store) SelectedItems() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.SelectedItems()
}

func (s *Store) TotalSelectedPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalSelectedPrice()
}

func (s *Store) AllSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.AllSelected()
}

// AddCatalogItem puts a catalog item into the cart without customization.
func (s *Store) AddCatalogItem(ctx context.Context, vendorID, catalogItemID, category string, quantity int) (domain.CartLineItem, error) {
	vendorID = strings.TrimSpace(vendorID)
	catalogItemID = strings.TrimSpace(catalogItemID)
	if vendorID == "" || catalogItemID == "" {
		return domain.CartLineItem{}, errors.New("vendorId and catalogItemId required")
	}
	vendor, err := s.catalog.Vendor(ctx, vendorID)
	if err != nil {
		return domain.CartLineItem{}, fmt.Errorf("vendor %s: %w", vendorID, err)
	}
	item, err := s.catalog.CatalogItem(ctx, catalogItemID)
	if err != nil {
		return domain.CartLineItem{}, fmt.Errorf("catalog item %s: %w", catalogItemID, err)
	}
	if item.VendorID != "" && item.VendorID != vendor.ID {
		return domain.CartLineItem{}, fmt.Errorf("catalog item %s: %w", catalogItemID, domain.ErrNotFound)
	}
	if strings.TrimSpace(category) == "" {
		category = item.Category
	}
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	li := domain.CartLineItem{
		ID:            s.newID(),
		VendorID:      vendor.ID,
		VendorName:    vendor.Name,
		Category:      category,
		CatalogItemID: item.ID,
		Name:          item.Name,
		ImageRef:      item.ImageRef,
		Price:         item.Price,
		Quantity:      quantity,
	}
	stored := s.cart.AddItem(li)
	s.commit("add item")
	return stored, nil
}

func (s *Store) RemoveItem(lineItemID, vendorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(lineItemID, vendorID)
	s.commit("remove item")
}

func (s *Store) SetQuantity(lineItemID, vendorID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(lineItemID, vendorID, quantity)
	s.commit("set quantity")
}

func (s *Store) ToggleSelection(lineItemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.ToggleSelection(lineItemID)
	s.commit("toggle selection")
}

func (s *Store) ToggleSelectAll(vendorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.ToggleSelectAll(vendorID)
	s.commit("toggle vendor")
}

func (s *Store) ToggleSelectAllGlobal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.ToggleSelectAllGlobal()
	s.commit("toggle all")
}
