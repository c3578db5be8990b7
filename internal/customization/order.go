// Package customization holds the single draft order a customer configures
// before it becomes a cart line or a transaction.
package customization

import (
	"tailorcart/internal/domain"
	"tailorcart/internal/pricing"
)

// Order is a draft. It is not safe for concurrent use.
type Order struct {
	vendor      domain.Vendor
	category    string
	repair      bool
	item        *domain.CatalogItem
	description string
	attachments []string
	quantity    int
	provider    domain.FabricProvider
	fabric      *domain.FabricOption
}

// New starts a draft for a vendor and service category. Repair orders never carry fabric.
func New(vendor domain.Vendor, category string, repair bool) *Order {
	return &Order{
		vendor:   vendor,
		category: category,
		repair:   repair,
		quantity: 1,
	}
}

// SelectCatalogItem replaces the chosen item and drops a fabric option tied to another item.
func (o *Order) SelectCatalogItem(item domain.CatalogItem) {
	o.item = &item
	if o.fabric != nil && o.fabric.CatalogItemID != "" && o.fabric.CatalogItemID != item.ID {
		o.fabric = nil
	}
}

// SetQuantity clamps q to [1, MaxQuantity].
func (o *Order) SetQuantity(q int) {
	o.quantity = domain.ClampQuantity(q)
}

func (o *Order) SetDescription(s string) {
	o.description = s
}

// AddAttachment appends a reference from the attachment store. The eleventh is rejected.
func (o *Order) AddAttachment(ref string) error {
	if len(o.attachments) >= domain.MaxAttachments {
		return domain.ErrAttachmentLimit
	}
	o.attachments = append(o.attachments, ref)
	return nil
}

// RemoveAttachment reports whether ref was present.
func (o *Order) RemoveAttachment(ref string) bool {
	for i, a := range o.attachments {
		if a == ref {
			o.attachments = append(o.attachments[:i], o.attachments[i+1:]...)
			return true
		}
	}
	return false
}

func (o *Order) AttachmentCount() int {
	return len(o.attachments)
}

// SetFabricProvider clears the option when the customer brings their own fabric.
func (o *Order) SetFabricProvider(p domain.FabricProvider) {
	if o.repair {
		return
	}
	o.provider = p
	if p != domain.FabricVendor {
		o.fabric = nil
	}
}

// SetFabricOption also switches the provider to the vendor.
func (o *Order) SetFabricOption(opt domain.FabricOption) {
	if o.repair {
		return
	}
	o.provider = domain.FabricVendor
	o.fabric = &opt
}

func (o *Order) IsValid() bool {
	return o.item != nil
}

func (o *Order) VendorID() string {
	return o.vendor.ID
}

// ToCartLineItem converts the draft, snapshotting the catalog price.
func (o *Order) ToCartLineItem(id string) (domain.CartLineItem, error) {
	if !o.IsValid() {
		return domain.CartLineItem{}, domain.ErrInvalidOrder
	}
	snap := o.Snapshot()
	return FromSnapshot(id, snap)
}

// FromSnapshot builds a cart line from a draft view.
func FromSnapshot(id string, snap domain.CustomizationOrder) (domain.CartLineItem, error) {
	if snap.Item == nil {
		return domain.CartLineItem{}, domain.ErrInvalidOrder
	}
	li := domain.CartLineItem{
		ID:            id,
		VendorID:      snap.VendorID,
		VendorName:    snap.VendorName,
		Category:      snap.Category,
		CatalogItemID: snap.Item.ID,
		Name:          snap.Item.Name,
		ImageRef:      snap.Item.ImageRef,
		Price:         snap.Item.Price,
		Quantity:      snap.Quantity,
		IsCustomOrder: true,
		Description:   snap.Description,
		Attachments:   append([]string(nil), snap.Attachments...),
	}
	li.Quantity = domain.ClampQuantity(li.Quantity)
	if !snap.Repair {
		li.FabricProvider = snap.FabricProvider
		if snap.FabricProvider == domain.FabricVendor && snap.Fabric != nil {
			f := *snap.Fabric
			li.Fabric = &f
		}
	}
	li.TotalPrice = pricing.LineTotal(li.Quantity, li.Price,
		pricing.ItemFabricPrice(snap.Repair, li.FabricProvider, li.Fabric))
	return li, nil
}

// Snapshot returns a copy of the draft's current state.
func (o *Order) Snapshot() domain.CustomizationOrder {
	out := domain.CustomizationOrder{
		VendorID:       o.vendor.ID,
		VendorName:     o.vendor.Name,
		Category:       o.category,
		Description:    o.description,
		Attachments:    append([]string{}, o.attachments...),
		Quantity:       o.quantity,
		FabricProvider: o.provider,
		Repair:         o.repair,
	}
	if o.item != nil {
		item := *o.item
		out.Item = &item
	}
	if o.fabric != nil {
		f := *o.fabric
		out.Fabric = &f
	}
	return out
}

// Clone returns an independent copy so a batch of updates can be applied all-or-nothing.
func (o *Order) Clone() *Order {
	c := *o
	c.attachments = append([]string(nil), o.attachments...)
	if o.item != nil {
		item := *o.item
		c.item = &item
	}
	if o.fabric != nil {
		f := *o.fabric
		c.fabric = &f
	}
	return &c
}

// Attachments returns a copy of the current references.
func (o *Order) Attachments() []string {
	return append([]string(nil), o.attachments...)
}
