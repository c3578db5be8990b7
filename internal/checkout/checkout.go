// Package checkout turns selected cart lines or a draft order into
// transactions. It builds plans and never mutates state itself.
package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tailorcart/internal/domain"
	"tailorcart/internal/pricing"
)

// Form carries the fulfillment choices made on the checkout screen.
type Form struct {
	PickupDate    time.Time
	PickupTime    string
	PaymentMethod string
	Delivery      *domain.DeliveryOption
}

// IsFormValid requires an address, pickup date and time, payment method and delivery option.
func IsFormValid(address *string, f Form) bool {
	return hasAddress(address) &&
		!f.PickupDate.IsZero() &&
		strings.TrimSpace(f.PickupTime) != "" &&
		strings.TrimSpace(f.PaymentMethod) != "" &&
		f.Delivery != nil
}

// Plan is everything a cart checkout commits in one step.
type Plan struct {
	Transactions        []domain.Transaction
	ConsumedLineItemIDs []string
}

type Finalizer struct {
	newID func() string
	now   func() time.Time
}

type Option func(*Finalizer)

func WithIDGenerator(fn func() string) Option {
	return func(f *Finalizer) { f.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(f *Finalizer) { f.now = fn }
}

func New(opts ...Option) *Finalizer {
	f := &Finalizer{
		newID: OrderNumber,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// OrderNumber is the vendor-visible transaction id.
func OrderNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TRX-" + strings.ToUpper(raw[:12])
}

// FromCart builds one pending transaction per vendor, in the order vendors first appear in selected.
func (f *Finalizer) FromCart(selected []domain.CartLineItem, address *string, form Form) (Plan, error) {
	if !hasAddress(address) {
		return Plan{}, domain.ErrMissingAddress
	}
	if len(selected) == 0 {
		return Plan{}, domain.ErrEmptySelection
	}
	if !IsFormValid(address, form) {
		return Plan{}, domain.ErrIncompleteForm
	}

	var order []string
	groups := make(map[string][]domain.CartLineItem)
	for _, li := range selected {
		if _, ok := groups[li.VendorID]; !ok {
			order = append(order, li.VendorID)
		}
		groups[li.VendorID] = append(groups[li.VendorID], li)
	}

	now := f.now()
	plan := Plan{
		Transactions:        make([]domain.Transaction, 0, len(order)),
		ConsumedLineItemIDs: make([]string, 0, len(selected)),
	}
	for _, vendorID := range order {
		lines := groups[vendorID]
		items := make([]domain.TransactionItem, 0, len(lines))
		for _, li := range lines {
			items = append(items, freezeLine(li))
			plan.ConsumedLineItemIDs = append(plan.ConsumedLineItemIDs, li.ID)
		}
		plan.Transactions = append(plan.Transactions, f.newTransaction(vendorID, lines[0].VendorName, items, *address, form, now))
	}
	return plan, nil
}

// FromCustomization builds a single pending transaction from a draft.
func (f *Finalizer) FromCustomization(order domain.CustomizationOrder, address *string, form Form) (domain.Transaction, error) {
	if !hasAddress(address) {
		return domain.Transaction{}, domain.ErrMissingAddress
	}
	if order.Item == nil {
		return domain.Transaction{}, domain.ErrInvalidOrder
	}
	if !IsFormValid(address, form) {
		return domain.Transaction{}, domain.ErrIncompleteForm
	}
	quantity := order.Quantity
	if quantity < 1 {
		quantity = 1
	}
	item := domain.TransactionItem{
		Name:          order.Item.Name,
		Category:      order.Category,
		Quantity:      quantity,
		Price:         order.Item.Price,
		IsCustomOrder: true,
		Description:   order.Description,
		Attachments:   append([]string(nil), order.Attachments...),
	}
	if !order.Repair {
		item.FabricProvider = order.FabricProvider
		if order.FabricProvider == domain.FabricVendor && order.Fabric != nil {
			fab := *order.Fabric
			item.Fabric = &fab
		}
	}
	item.FabricPrice = pricing.ItemFabricPrice(order.Repair, item.FabricProvider, item.Fabric)
	item.TotalPrice = pricing.LineTotal(item.Quantity, item.Price, item.FabricPrice)

	return f.newTransaction(order.VendorID, order.VendorName, []domain.TransactionItem{item}, *address, form, f.now()), nil
}

func (f *Finalizer) newTransaction(vendorID, vendorName string, items []domain.TransactionItem, address string, form Form, now time.Time) domain.Transaction {
	delivery := *form.Delivery
	return domain.Transaction{
		ID:            f.newID(),
		VendorID:      vendorID,
		VendorName:    vendorName,
		Items:         items,
		TotalPrice:    pricing.OrderTotal(items, delivery.Cost),
		PickupDate:    form.PickupDate,
		PickupTime:    strings.TrimSpace(form.PickupTime),
		PaymentMethod: strings.TrimSpace(form.PaymentMethod),
		Delivery:      delivery,
		DeliveryCost:  delivery.Cost,
		Address:       address,
		OrderedAt:     now,
		Status:        domain.StatusPending,
	}
}

func freezeLine(li domain.CartLineItem) domain.TransactionItem {
	fabricPrice := pricing.FabricSurcharge(li.FabricProvider, li.Fabric)
	item := domain.TransactionItem{
		Name:           li.Name,
		Category:       li.Category,
		Quantity:       li.Quantity,
		Price:          li.Price,
		TotalPrice:     pricing.LineTotal(li.Quantity, li.Price, fabricPrice),
		IsCustomOrder:  li.IsCustomOrder,
		Description:    li.Description,
		Attachments:    append([]string(nil), li.Attachments...),
		FabricProvider: li.FabricProvider,
		FabricPrice:    fabricPrice,
	}
	if li.Fabric != nil {
		fab := *li.Fabric
		item.Fabric = &fab
	}
	return item
}

func hasAddress(address *string) bool {
	return address != nil && strings.TrimSpace(*address) != ""
}

// Describe renders a short summary used in logs.
func Describe(plan Plan) string {
	ids := make([]string, 0, len(plan.Transactions))
	for _, t := range plan.Transactions {
		ids = append(ids, t.ID)
	}
	return fmt.Sprintf("transactions=%s consumed=%d", strings.Join(ids, ","), len(plan.ConsumedLineItemIDs))
}
