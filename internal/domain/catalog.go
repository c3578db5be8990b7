package domain

// Vendor is a tailoring service provider.
type Vendor struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	LocationDescription string `json:"locationDescription,omitempty"`
}

// CatalogItem is a read-only priced garment or service offered by a vendor.
type CatalogItem struct {
	ID       string `json:"id"`
	VendorID string `json:"vendorId"`
	Category string `json:"category"`
	Name     string `json:"name"`
	ImageRef string `json:"imageRef,omitempty"`
	Price    int64  `json:"price"`
}

// FabricOption is a vendor-supplied fabric that can be attached to a catalog item.
type FabricOption struct {
	ID              string `json:"id"`
	CatalogItemID   string `json:"catalogItemId"`
	Type            string `json:"type"`
	Description     string `json:"description,omitempty"`
	AdditionalPrice int64  `json:"additionalPrice"`
}

type DeliveryMode string

const (
	DeliveryCourier DeliveryMode = "delivery"
	DeliveryPickup  DeliveryMode = "pickup"
)

// DeliveryOption is a fulfillment mode with its surcharge.
type DeliveryOption struct {
	Mode  DeliveryMode `json:"mode"`
	Label string       `json:"label"`
	Cost  int64        `json:"cost"`
}
