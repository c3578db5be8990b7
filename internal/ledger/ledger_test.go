package ledger

import (
	"errors"
	"testing"
	"time"

	"tailorcart/internal/domain"
)

func tx(id string, orderedAt time.Time) domain.Transaction {
	return domain.Transaction{ID: id, VendorID: "v1", OrderedAt: orderedAt, Status: domain.StatusPending}
}

func TestAdvance_CompletedMovesBetweenLists(t *testing.T) {
	l := New(nil)
	l.Append(tx("t1", time.Now()))

	if len(l.Ongoing()) != 1 || len(l.Completed()) != 0 {
		t.Fatalf("fresh transaction should be ongoing")
	}
	if err := l.Advance("t1", domain.StatusCompleted); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if len(l.Ongoing()) != 0 || len(l.Completed()) != 1 {
		t.Fatalf("completed transaction should move lists")
	}
}

func TestAdvance_RejectsBackwardAndUnknown(t *testing.T) {
	l := New([]domain.Transaction{tx("t1", time.Now())})

	for _, st := range []domain.TransactionStatus{domain.StatusConfirmed, domain.StatusPickup, domain.StatusPickup} {
		if err := l.Advance("t1", st); err != nil {
			t.Fatalf("advance to %s: %v", st, err)
		}
	}
	if err := l.Advance("t1", domain.StatusPending); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if got, _ := l.Get("t1"); got.Status != domain.StatusPickup {
		t.Fatalf("status should be unchanged, got %s", got.Status)
	}
	if err := l.Advance("t1", "shipped"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if err := l.Advance("nope", domain.StatusCompleted); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAttachReview_FirstWins(t *testing.T) {
	l := New([]domain.Transaction{tx("t1", time.Now())})
	first := domain.Review{ID: "r1", TransactionID: "t1", Rating: 5, Comment: "great"}
	if err := l.AttachReview(first); err != nil {
		t.Fatalf("first review: %v", err)
	}
	second := domain.Review{ID: "r2", TransactionID: "t1", Rating: 1, Comment: "changed my mind"}
	if err := l.AttachReview(second); !errors.Is(err, domain.ErrDuplicateReview) {
		t.Fatalf("expected ErrDuplicateReview, got %v", err)
	}
	got, _ := l.Get("t1")
	if got.Review == nil || got.Review.ID != "r1" || got.Review.VendorID != "v1" {
		t.Fatalf("first review should remain, got %+v", got.Review)
	}
}

func TestAttachReview_Validation(t *testing.T) {
	l := New([]domain.Transaction{tx("t1", time.Now())})
	if err := l.AttachReview(domain.Review{TransactionID: "t1", Rating: 0}); !errors.Is(err, domain.ErrInvalidReview) {
		t.Fatalf("expected ErrInvalidReview, got %v", err)
	}
	if err := l.AttachReview(domain.Review{TransactionID: "t1", Rating: 6}); !errors.Is(err, domain.ErrInvalidReview) {
		t.Fatalf("expected ErrInvalidReview, got %v", err)
	}
	if err := l.AttachReview(domain.Review{TransactionID: "missing", Rating: 3}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListsSortedNewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New([]domain.Transaction{
		tx("old", base),
		tx("new", base.Add(48*time.Hour)),
		tx("mid", base.Add(24*time.Hour)),
	})
	got := l.Ongoing()
	if got[0].ID != "new" || got[1].ID != "mid" || got[2].ID != "old" {
		t.Fatalf("unexpected order %v %v %v", got[0].ID, got[1].ID, got[2].ID)
	}
	if all := l.All(); all[0].ID != "old" {
		t.Fatalf("All should keep insertion order")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	l := New([]domain.Transaction{{ID: "t1", Items: []domain.TransactionItem{{Name: "a"}}, Status: domain.StatusPending}})
	got, _ := l.Get("t1")
	got.Items[0].Name = "mutated"
	again, _ := l.Get("t1")
	if again.Items[0].Name != "a" {
		t.Fatalf("items must be frozen against caller mutation")
	}
}
