package domain

import (
	"strings"
	"time"
)

type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusConfirmed  TransactionStatus = "confirmed"
	StatusPickup     TransactionStatus = "pickup"
	StatusInProgress TransactionStatus = "in_progress"
	StatusOnDelivery TransactionStatus = "on_delivery"
	StatusCompleted  TransactionStatus = "completed"
)

// Lifecycle lists every status in fulfillment order.
var Lifecycle = []TransactionStatus{
	StatusPending,
	StatusConfirmed,
	StatusPickup,
	StatusInProgress,
	StatusOnDelivery,
	StatusCompleted,
}

// Rank is the position of s in Lifecycle, or -1 for an unknown status.
func (s TransactionStatus) Rank() int {
	for i, st := range Lifecycle {
		if st == s {
			return i
		}
	}
	return -1
}

func (s TransactionStatus) Valid() bool {
	return s.Rank() >= 0
}

// ParseTransactionStatus accepts the canonical value case-insensitively.
func ParseTransactionStatus(v string) (TransactionStatus, error) {
	s := TransactionStatus(strings.ToLower(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// TransactionItem is a frozen copy of a purchased line.
type TransactionItem struct {
	Name           string         `json:"name"`
	Category       string         `json:"category"`
	Quantity       int            `json:"quantity"`
	Price          int64          `json:"price"`
	TotalPrice     int64          `json:"totalPrice"`
	IsCustomOrder  bool           `json:"isCustomOrder"`
	Description    string         `json:"description,omitempty"`
	Attachments    []string       `json:"attachments,omitempty"`
	FabricProvider FabricProvider `json:"fabricProvider,omitempty"`
	Fabric         *FabricOption  `json:"fabric,omitempty"`
	FabricPrice    int64          `json:"fabricPrice"`
}

// Transaction is an order placed with one vendor.
type Transaction struct {
	ID            string            `json:"id"`
	VendorID      string            `json:"vendorId"`
	VendorName    string            `json:"vendorName"`
	Items         []TransactionItem `json:"items"`
	TotalPrice    int64             `json:"totalPrice"`
	PickupDate    time.Time         `json:"pickupDate"`
	PickupTime    string            `json:"pickupTime"`
	PaymentMethod string            `json:"paymentMethod"`
	Delivery      DeliveryOption    `json:"delivery"`
	DeliveryCost  int64             `json:"deliveryCost"`
	Address       string            `json:"address"`
	OrderedAt     time.Time         `json:"orderedAt"`
	Status        TransactionStatus `json:"status"`
	Review        *Review           `json:"review,omitempty"`
}

func (t Transaction) Completed() bool {
	return t.Status == StatusCompleted
}

// Clone returns a deep copy of the transaction.
func (t Transaction) Clone() Transaction {
	out := t
	out.Items = make([]TransactionItem, len(t.Items))
	for i, item := range t.Items {
		c := item
		if item.Attachments != nil {
			c.Attachments = append([]string(nil), item.Attachments...)
		}
		if item.Fabric != nil {
			f := *item.Fabric
			c.Fabric = &f
		}
		out.Items[i] = c
	}
	if t.Review != nil {
		r := *t.Review
		r.Attachments = append([]string(nil), t.Review.Attachments...)
		out.Review = &r
	}
	return out
}

// Review is the customer's rating of a transaction.
type Review struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transactionId"`
	VendorID      string    `json:"vendorId"`
	AuthorID      string    `json:"authorId"`
	AuthorName    string    `json:"authorName"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	Attachments   []string  `json:"attachments,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
