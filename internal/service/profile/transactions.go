package profile

import (
	"strings"

	"tailorcart/internal/checkout"
	"tailorcart/internal/domain"
)

// CheckoutCart turns the current selection into one transaction per vendor
// and removes the consumed lines. Nothing changes when validation fails.
func (s *Store) CheckoutCart(form checkout.Form) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, err := s.finalizer.FromCart(s.cart.SelectedItems(), s.address, form)
	if err != nil {
		return nil, err
	}
	s.ledger.Append(plan.Transactions...)
	s.cart.RemoveItems(plan.ConsumedLineItemIDs)
	s.commit("checkout cart")
	s.logger.Printf("profile store: checkout user_id=%s %s", s.identity.UserID, checkout.Describe(plan))
	return plan.Transactions, nil
}

// CheckoutCustomization places the draft directly as a single transaction. The cart is untouched.
func (s *Store) CheckoutCustomization(form checkout.Form) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return domain.Transaction{}, domain.ErrNoDraft
	}
	tx, err := s.finalizer.FromCustomization(s.draft.Snapshot(), s.address, form)
	if err != nil {
		return domain.Transaction{}, err
	}
	s.ledger.Append(tx)
	s.draft = nil
	s.commit("checkout customization")
	s.logger.Printf("profile store: checkout user_id=%s transaction=%s", s.identity.UserID, tx.ID)
	return tx, nil
}

func (s *Store) OngoingTransactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Ongoing()
}

func (s *Store) CompletedTransactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Completed()
}

func (s *Store) Transaction(id string) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.ledger.Get(id)
	if !ok {
		return domain.Transaction{}, domain.ErrNotFound
	}
	return tx, nil
}

func (s *Store) Advance(id string, status domain.TransactionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.Advance(id, status); err != nil {
		return err
	}
	s.commit("advance")
	return nil
}

type ReviewInput struct {
	TransactionID string
	Rating        int
	Comment       string
	Attachments   []string
}

// SubmitReview attaches the signed-in user's review. A transaction keeps its first review.
func (s *Store) SubmitReview(in ReviewInput) (domain.Review, error) {
	if len(in.Attachments) > domain.MaxAttachments {
		return domain.Review{}, domain.ErrAttachmentLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.ledger.Get(in.TransactionID)
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	review := domain.Review{
		ID:            s.newID(),
		TransactionID: tx.ID,
		VendorID:      tx.VendorID,
		AuthorID:      s.identity.UserID,
		AuthorName:    s.identity.Name,
		Rating:        in.Rating,
		Comment:       strings.TrimSpace(in.Comment),
		Attachments:   append([]string(nil), in.Attachments...),
		CreatedAt:     s.now(),
	}
	if err := s.ledger.AttachReview(review); err != nil {
		return domain.Review{}, err
	}
	s.commit("review")
	return review, nil
}
