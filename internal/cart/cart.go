// Package cart keeps the active user's line items grouped by vendor.
package cart

import (
	"tailorcart/internal/domain"
	"tailorcart/internal/pricing"
)

// Cart is not safe for concurrent use; the profile store serialises access.
type Cart struct {
	vendors []domain.VendorCart
}

// New takes ownership of a copy of vendors and normalises derived fields.
func New(vendors []domain.VendorCart) *Cart {
	c := &Cart{}
	for _, vc := range vendors {
		if len(vc.Items) == 0 {
			continue
		}
		vc = vc.Clone()
		for i := range vc.Items {
			vc.Items[i].Quantity = domain.ClampQuantity(vc.Items[i].Quantity)
			vc.Items[i].TotalPrice = pricing.CartLineTotal(vc.Items[i])
		}
		vc.SelectAll = allSelected(vc.Items)
		c.vendors = append(c.vendors, vc)
	}
	return c
}

// AddItem merges item into an existing line with the same catalog item,
// custom-order flag and fabric choice, or appends it. It returns the line as stored.
// A merge saturates at MaxQuantity and keeps the existing line's description
// and attachments.
func (c *Cart) AddItem(item domain.CartLineItem) domain.CartLineItem {
	item = item.Clone()
	item.Quantity = domain.ClampQuantity(item.Quantity)
	item.TotalPrice = pricing.CartLineTotal(item)

	idx := c.vendorIndex(item.VendorID)
	if idx < 0 {
		c.vendors = append(c.vendors, domain.VendorCart{
			VendorID:   item.VendorID,
			VendorName: item.VendorName,
			Items:      []domain.CartLineItem{item},
			SelectAll:  item.Selected,
		})
		return item.Clone()
	}

	vc := &c.vendors[idx]
	for i := range vc.Items {
		if sameConfiguration(vc.Items[i], item) {
			vc.Items[i].Quantity = domain.ClampQuantity(vc.Items[i].Quantity + item.Quantity)
			vc.Items[i].TotalPrice = pricing.CartLineTotal(vc.Items[i])
			vc.SelectAll = allSelected(vc.Items)
			return vc.Items[i].Clone()
		}
	}
	vc.Items = append(vc.Items, item)
	vc.SelectAll = allSelected(vc.Items)
	return item.Clone()
}

// RemoveItem drops the line and the vendor group once it is empty.
func (c *Cart) RemoveItem(lineItemID, vendorID string) {
	vi := c.vendorIndex(vendorID)
	if vi < 0 {
		return
	}
	vc := &c.vendors[vi]
	ii := itemIndex(vc.Items, lineItemID)
	if ii < 0 {
		return
	}
	vc.Items = append(vc.Items[:ii], vc.Items[ii+1:]...)
	if len(vc.Items) == 0 {
		c.vendors = append(c.vendors[:vi], c.vendors[vi+1:]...)
		return
	}
	vc.SelectAll = allSelected(vc.Items)
}

// RemoveItems drops every line whose id is listed, in any vendor.
func (c *Cart) RemoveItems(lineItemIDs []string) {
	if len(lineItemIDs) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(lineItemIDs))
	for _, id := range lineItemIDs {
		drop[id] = struct{}{}
	}
	vendors := c.vendors[:0]
	for _, vc := range c.vendors {
		items := vc.Items[:0]
		for _, item := range vc.Items {
			if _, ok := drop[item.ID]; !ok {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		vc.Items = items
		vc.SelectAll = allSelected(items)
		vendors = append(vendors, vc)
	}
	c.vendors = vendors
}

// SetQuantity updates a line; quantity ≤ 0 removes it and values above
// MaxQuantity are capped.
func (c *Cart) SetQuantity(lineItemID, vendorID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(lineItemID, vendorID)
		return
	}
	vi := c.vendorIndex(vendorID)
	if vi < 0 {
		return
	}
	items := c.vendors[vi].Items
	ii := itemIndex(items, lineItemID)
	if ii < 0 {
		return
	}
	items[ii].Quantity = domain.ClampQuantity(quantity)
	items[ii].TotalPrice = pricing.CartLineTotal(items[ii])
}

func (c *Cart) ToggleSelection(lineItemID string) {
	for vi := range c.vendors {
		vc := &c.vendors[vi]
		if ii := itemIndex(vc.Items, lineItemID); ii >= 0 {
			vc.Items[ii].Selected = !vc.Items[ii].Selected
			vc.SelectAll = allSelected(vc.Items)
			return
		}
	}
}

// ToggleSelectAll sets every line of the vendor to the negation of its current select-all state.
func (c *Cart) ToggleSelectAll(vendorID string) {
	vi := c.vendorIndex(vendorID)
	if vi < 0 {
		return
	}
	vc := &c.vendors[vi]
	next := !vc.SelectAll
	for i := range vc.Items {
		vc.Items[i].Selected = next
	}
	vc.SelectAll = allSelected(vc.Items)
}

// ToggleSelectAllGlobal selects everything unless everything is already selected.
func (c *Cart) ToggleSelectAllGlobal() {
	next := !c.AllSelected()
	for vi := range c.vendors {
		vc := &c.vendors[vi]
		for i := range vc.Items {
			vc.Items[i].Selected = next
		}
		vc.SelectAll = allSelected(vc.Items)
	}
}

// AllSelected is false for an empty cart.
func (c *Cart) AllSelected() bool {
	if len(c.vendors) == 0 {
		return false
	}
	for _, vc := range c.vendors {
		if !allSelected(vc.Items) {
			return false
		}
	}
	return true
}

func (c *Cart) SelectedItems() []domain.CartLineItem {
	var out []domain.CartLineItem
	for _, vc := range c.vendors {
		for _, item := range vc.Items {
			if item.Selected {
				out = append(out, item.Clone())
			}
		}
	}
	return out
}

func (c *Cart) TotalSelectedPrice() int64 {
	var total int64
	for _, vc := range c.vendors {
		for _, item := range vc.Items {
			if item.Selected {
				total += pricing.CartLineTotal(item)
			}
		}
	}
	return total
}

func (c *Cart) Item(lineItemID string) (domain.CartLineItem, bool) {
	for _, vc := range c.vendors {
		if ii := itemIndex(vc.Items, lineItemID); ii >= 0 {
			return vc.Items[ii].Clone(), true
		}
	}
	return domain.CartLineItem{}, false
}

// Count is the number of line items across all vendors.
func (c *Cart) Count() int {
	n := 0
	for _, vc := range c.vendors {
		n += len(vc.Items)
	}
	return n
}

// Vendors returns a deep copy safe to hand to callers and persistence.
func (c *Cart) Vendors() []domain.VendorCart {
	out := make([]domain.VendorCart, len(c.vendors))
	for i, vc := range c.vendors {
		out[i] = vc.Clone()
	}
	return out
}

func (c *Cart) vendorIndex(vendorID string) int {
	for i, vc := range c.vendors {
		if vc.VendorID == vendorID {
			return i
		}
	}
	return -1
}

func itemIndex(items []domain.CartLineItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func sameConfiguration(a, b domain.CartLineItem) bool {
	return a.CatalogItemID == b.CatalogItemID &&
		a.IsCustomOrder == b.IsCustomOrder &&
		a.FabricProvider == b.FabricProvider &&
		a.FabricOptionID() == b.FabricOptionID()
}

func allSelected(items []domain.CartLineItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if !item.Selected {
			return false
		}
	}
	return true
}
