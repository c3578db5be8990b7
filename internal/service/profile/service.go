// Package profile owns the signed-in user's root document: address, cart and
// transactions. Store is the single writer for all of it.
package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tailorcart/internal/cart"
	"tailorcart/internal/checkout"
	"tailorcart/internal/customization"
	"tailorcart/internal/domain"
	"tailorcart/internal/ledger"
	"tailorcart/internal/session"
)

// Repository persists profile documents.
type Repository interface {
	Load(ctx context.Context, userID string) (*domain.Profile, error)
	Save(ctx context.Context, p domain.Profile) error
}

// Catalog is the read-only catalog the store resolves ids against.
type Catalog interface {
	CatalogItem(ctx context.Context, id string) (*domain.CatalogItem, error)
	FabricOptions(ctx context.Context, catalogItemID string) ([]domain.FabricOption, error)
	Vendor(ctx context.Context, id string) (*domain.Vendor, error)
}

type attachmentDeleter interface {
	Delete(ctx context.Context, name string) error
}

type Deps struct {
	Repo        Repository
	Catalog     Catalog
	Attachments attachmentDeleter
	Finalizer   *checkout.Finalizer
	Logger      *log.Logger
	SaveTimeout time.Duration
	NewID       func() string
	Now         func() time.Time
}

type Store struct {
	mu sync.Mutex

	repo        Repository
	catalog     Catalog
	attachments attachmentDeleter
	finalizer   *checkout.Finalizer
	logger      *log.Logger
	saveTimeout time.Duration
	newID       func() string
	now         func() time.Time

	identity  domain.Identity
	address   *string
	cart      *cart.Cart
	ledger    *ledger.Ledger
	draft     *customization.Order
	updatedAt time.Time
	dirty     bool

	subMu       sync.Mutex
	subscribers map[int]chan struct{}
	nextSub     int
}

// New loads the identity's profile, or starts an empty one when none is stored.
func New(ctx context.Context, identity domain.Identity, deps Deps) (*Store, error) {
	if deps.Repo == nil {
		return nil, errors.New("profile repository required")
	}
	if deps.Catalog == nil {
		return nil, errors.New("catalog required")
	}
	s := &Store{
		repo:        deps.Repo,
		catalog:     deps.Catalog,
		attachments: deps.Attachments,
		finalizer:   deps.Finalizer,
		logger:      deps.Logger,
		saveTimeout: deps.SaveTimeout,
		newID:       deps.NewID,
		now:         deps.Now,
		identity:    identity,
		subscribers: make(map[int]chan struct{}),
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	if s.finalizer == nil {
		s.finalizer = checkout.New()
	}
	if s.saveTimeout <= 0 {
		s.saveTimeout = 5 * time.Second
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}

	stored, err := s.repo.Load(ctx, identity.UserID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.cart = cart.New(nil)
		s.ledger = ledger.New(nil)
		s.logger.Printf("profile store: new profile user_id=%s", identity.UserID)
	case err != nil:
		return nil, fmt.Errorf("load profile: %w", err)
	default:
		s.address = stored.Address
		s.cart = cart.New(stored.Cart)
		s.ledger = ledger.New(stored.Transactions)
		s.updatedAt = stored.UpdatedAt
		s.logger.Printf("profile store: loaded user_id=%s cart_items=%d transactions=%d", identity.UserID, s.cart.Count(), len(stored.Transactions))
	}
	return s, nil
}

// Subscribe returns a channel that receives a value after every committed
// change. Signals coalesce; a slow reader sees at least one pending signal.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subscribers[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subscribers, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// commit persists the whole document and signals subscribers. Callers hold s.mu.
// A failed save is logged and retried with the next commit or Flush.
func (s *Store) commit(op string) {
	s.updatedAt = s.now()
	doc := s.document()
	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()
	if err := s.repo.Save(ctx, doc); err != nil {
		s.dirty = true
		s.logger.Printf("profile store: save after %s user_id=%s error=%v", op, s.identity.UserID, err)
	} else {
		s.dirty = false
	}
	s.notify()
}

func (s *Store) document() domain.Profile {
	p := domain.Profile{
		Identity:     s.identity,
		Cart:         s.cart.Vendors(),
		Transactions: s.ledger.All(),
		UpdatedAt:    s.updatedAt,
	}
	if s.address != nil {
		a := *s.address
		p.Address = &a
	}
	return p
}

// Flush writes the document if the last save failed.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := s.repo.Save(ctx, s.document()); err != nil {
		return fmt.Errorf("flush profile: %w", err)
	}
	s.dirty = false
	return nil
}

// Dirty reports whether the in-memory document is ahead of storage.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *Store) Snapshot() domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document()
}

func (s *Store) Identity() domain.Identity {
	return s.identity
}

// Address is nil until one is resolved; display fallbacks belong to the UI.
func (s *Store) Address() *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.address == nil {
		return nil
	}
	a := *s.address
	return &a
}

func (s *Store) SetAddress(address *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if address != nil && strings.TrimSpace(*address) == "" {
		address = nil
	}
	if address != nil {
		a := strings.TrimSpace(*address)
		address = &a
	}
	s.address = address
	s.commit("set address")
}

// SyncAddress copies a resolved address from the supplier. It does nothing
// while a lookup is still running or when nothing is resolved.
func (s *Store) SyncAddress(sup session.AddressSupplier) bool {
	if sup == nil || sup.Loading() {
		return false
	}
	addr := sup.CurrentAddress()
	if addr == nil {
		return false
	}
	s.mu.Lock()
	if s.address != nil && *s.address == *addr {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()
	s.SetAddress(addr)
	return true
}

// IsFormValid evaluates the checkout form against the current address.
func (s *Store) IsFormValid(form checkout.Form) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return checkout.IsFormValid(s.address, form)
}
