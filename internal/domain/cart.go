package domain

// MaxAttachments caps reference images on a custom order.
const MaxAttachments = 10

// MaxQuantity caps a single line's quantity.
const MaxQuantity = 999

// ClampQuantity bounds q to [1, MaxQuantity].
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

type FabricProvider string

const (
	FabricNone     FabricProvider = ""
	FabricCustomer FabricProvider = "customer"
	FabricVendor   FabricProvider = "vendor"
)

// Valid reports whether p is a known provider; the empty provider is valid.
func (p FabricProvider) Valid() bool {
	switch p {
	case FabricNone, FabricCustomer, FabricVendor:
		return true
	}
	return false
}

// CartLineItem is one configured purchasable unit waiting for checkout.
type CartLineItem struct {
	ID             string         `json:"id"`
	VendorID       string         `json:"vendorId"`
	VendorName     string         `json:"vendorName"`
	Category       string         `json:"category"`
	CatalogItemID  string         `json:"catalogItemId"`
	Name           string         `json:"name"`
	ImageRef       string         `json:"imageRef,omitempty"`
	Price          int64          `json:"price"`
	Quantity       int            `json:"quantity"`
	Selected       bool           `json:"selected"`
	IsCustomOrder  bool           `json:"isCustomOrder"`
	Description    string         `json:"description,omitempty"`
	Attachments    []string       `json:"attachments,omitempty"`
	FabricProvider FabricProvider `json:"fabricProvider,omitempty"`
	Fabric         *FabricOption  `json:"fabric,omitempty"`
	TotalPrice     int64          `json:"totalPrice"`
}

// FabricOptionID returns the chosen fabric option id or "".
func (li CartLineItem) FabricOptionID() string {
	if li.Fabric == nil {
		return ""
	}
	return li.Fabric.ID
}

// Clone returns a deep copy of the line item.
func (li CartLineItem) Clone() CartLineItem {
	out := li
	if li.Attachments != nil {
		out.Attachments = append([]string(nil), li.Attachments...)
	}
	if li.Fabric != nil {
		f := *li.Fabric
		out.Fabric = &f
	}
	return out
}

// VendorCart groups line items belonging to one vendor.
type VendorCart struct {
	VendorID   string         `json:"vendorId"`
	VendorName string         `json:"vendorName"`
	Items      []CartLineItem `json:"items"`
	SelectAll  bool           `json:"selectAll"`
}

// Clone returns a deep copy of the vendor cart.
func (vc VendorCart) Clone() VendorCart {
	out := vc
	out.Items = make([]CartLineItem, len(vc.Items))
	for i, item := range vc.Items {
		out.Items[i] = item.Clone()
	}
	return out
}

// CustomizationOrder is the read view of a draft order.
type CustomizationOrder struct {
	VendorID       string         `json:"vendorId"`
	VendorName     string         `json:"vendorName"`
	Category       string         `json:"category"`
	Item           *CatalogItem   `json:"item,omitempty"`
	Description    string         `json:"description,omitempty"`
	Attachments    []string       `json:"attachments"`
	Quantity       int            `json:"quantity"`
	FabricProvider FabricProvider `json:"fabricProvider,omitempty"`
	Fabric         *FabricOption  `json:"fabric,omitempty"`
	Repair         bool           `json:"repair"`
}
