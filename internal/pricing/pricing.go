// Package pricing computes line and order totals. All amounts are integers in
// the currency's smallest unit.
package pricing

import "tailorcart/internal/domain"

// LineTotal returns quantity × (basePrice + fabricPrice).
func LineTotal(quantity int, basePrice, fabricPrice int64) int64 {
	return int64(quantity) * (basePrice + fabricPrice)
}

// FabricSurcharge is the option's additional price when the vendor supplies the fabric.
func FabricSurcharge(provider domain.FabricProvider, option *domain.FabricOption) int64 {
	if provider != domain.FabricVendor || option == nil {
		return 0
	}
	return option.AdditionalPrice
}

// ItemFabricPrice is FabricSurcharge, except repair orders never carry a fabric cost.
func ItemFabricPrice(repair bool, provider domain.FabricProvider, option *domain.FabricOption) int64 {
	if repair {
		return 0
	}
	return FabricSurcharge(provider, option)
}

// CartLineTotal prices a cart line from its own fields.
func CartLineTotal(item domain.CartLineItem) int64 {
	return LineTotal(item.Quantity, item.Price, FabricSurcharge(item.FabricProvider, item.Fabric))
}

// OrderTotal sums item totals and adds the delivery cost.
func OrderTotal(items []domain.TransactionItem, deliveryCost int64) int64 {
	var total int64
	for _, item := range items {
		total += LineTotal(item.Quantity, item.Price, item.FabricPrice)
	}
	return total + deliveryCost
}
