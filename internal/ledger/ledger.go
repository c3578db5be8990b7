// Package ledger stores committed transactions and drives their fulfillment status.
package ledger

import (
	"sort"

	"tailorcart/internal/domain"
)

// Ledger is not safe for concurrent use; the profile store serialises access.
type Ledger struct {
	txs []domain.Transaction
}

func New(txs []domain.Transaction) *Ledger {
	l := &Ledger{txs: make([]domain.Transaction, 0, len(txs))}
	for _, t := range txs {
		l.txs = append(l.txs, t.Clone())
	}
	return l
}

func (l *Ledger) Append(txs ...domain.Transaction) {
	for _, t := range txs {
		l.txs = append(l.txs, t.Clone())
	}
}

func (l *Ledger) Get(id string) (domain.Transaction, bool) {
	if i := l.index(id); i >= 0 {
		return l.txs[i].Clone(), true
	}
	return domain.Transaction{}, false
}

// Advance moves a transaction forward. Skipping states is allowed, moving
// backwards is not, and setting the current status again is a no-op.
func (l *Ledger) Advance(id string, status domain.TransactionStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}
	i := l.index(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	if status.Rank() < l.txs[i].Status.Rank() {
		return domain.ErrInvalidTransition
	}
	l.txs[i].Status = status
	return nil
}

// AttachReview stores the first review for a transaction; later ones are rejected.
func (l *Ledger) AttachReview(r domain.Review) error {
	if r.Rating < 1 || r.Rating > 5 {
		return domain.ErrInvalidReview
	}
	i := l.index(r.TransactionID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if l.txs[i].Review != nil {
		return domain.ErrDuplicateReview
	}
	if r.VendorID == "" {
		r.VendorID = l.txs[i].VendorID
	}
	r.Attachments = append([]string(nil), r.Attachments...)
	l.txs[i].Review = &r
	return nil
}

// Ongoing lists transactions not yet completed, newest first.
func (l *Ledger) Ongoing() []domain.Transaction {
	return l.filter(func(t domain.Transaction) bool { return !t.Completed() })
}

// Completed lists completed transactions, newest first.
func (l *Ledger) Completed() []domain.Transaction {
	return l.filter(domain.Transaction.Completed)
}

// All returns every transaction in insertion order.
func (l *Ledger) All() []domain.Transaction {
	out := make([]domain.Transaction, len(l.txs))
	for i, t := range l.txs {
		out[i] = t.Clone()
	}
	return out
}

func (l *Ledger) filter(keep func(domain.Transaction) bool) []domain.Transaction {
	out := []domain.Transaction{}
	for _, t := range l.txs {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderedAt.After(out[j].OrderedAt)
	})
	return out
}

func (l *Ledger) index(id string) int {
	for i, t := range l.txs {
		if t.ID == id {
			return i
		}
	}
	return -1
}
