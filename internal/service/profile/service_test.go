package profile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tailorcart/internal/checkout"
	"tailorcart/internal/customization"
	"tailorcart/internal/domain"
	"tailorcart/internal/session"
)

// memoryRepo is an in-memory profile repository for tests.
type memoryRepo struct {
	docs    map[string]domain.Profile
	saves   int
	saveErr error
	loadErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{docs: make(map[string]domain.Profile)}
}

func (r *memoryRepo) Load(_ context.Context, userID string) (*domain.Profile, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	p, ok := r.docs[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := p.Clone()
	return &clone, nil
}

func (r *memoryRepo) Save(_ context.Context, p domain.Profile) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.docs[p.Identity.UserID] = p.Clone()
	return nil
}

type stubCatalog struct {
	vendors map[string]domain.Vendor
	items   map[string]domain.CatalogItem
	fabrics map[string][]domain.FabricOption
}

func (c *stubCatalog) Vendor(_ context.Context, id string) (*domain.Vendor, error) {
	v, ok := c.vendors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (c *stubCatalog) CatalogItem(_ context.Context, id string) (*domain.CatalogItem, error) {
	it, ok := c.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (c *stubCatalog) FabricOptions(_ context.Context, itemID string) ([]domain.FabricOption, error) {
	return append([]domain.FabricOption(nil), c.fabrics[itemID]...), nil
}

type stubAttachments struct {
	deleted []string
}

func (a *stubAttachments) Delete(_ context.Context, name string) error {
	a.deleted = append(a.deleted, name)
	return nil
}

func testCatalog() *stubCatalog {
	return &stubCatalog{
		vendors: map[string]domain.Vendor{
			"v1": {ID: "v1", Name: "Tailor One"},
			"v2": {ID: "v2", Name: "Tailor Two"},
		},
		items: map[string]domain.CatalogItem{
			"i1": {ID: "i1", VendorID: "v1", Category: "jahit", Name: "Kebaya", Price: 95000},
			"i2": {ID: "i2", VendorID: "v1", Category: "jahit", Name: "Kemeja", Price: 60000},
			"i3": {ID: "i3", VendorID: "v2", Category: "permak", Name: "Hemming", Price: 25000},
		},
		fabrics: map[string][]domain.FabricOption{
			"i1": {{ID: "f1", CatalogItemID: "i1", Type: "Silk", AdditionalPrice: 20000}},
		},
	}
}

func newTestStore(t *testing.T, repo *memoryRepo) (*Store, *stubAttachments) {
	t.Helper()
	n := 0
	att := &stubAttachments{}
	store, err := New(context.Background(), domain.Identity{UserID: "u1", Name: "Sari"}, Deps{
		Repo:        repo,
		Catalog:     testCatalog(),
		Attachments: att,
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Now: func() time.Time { return time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store, att
}

func strPtr(v string) *string {
	return &v
}

func courierForm() checkout.Form {
	return checkout.Form{
		PickupDate:    time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		PickupTime:    "13:00-15:00",
		PaymentMethod: "transfer",
		Delivery:      &domain.DeliveryOption{Mode: domain.DeliveryCourier, Label: "Courier", Cost: 15000},
	}
}

func TestNew_LoadsStoredProfile(t *testing.T) {
	repo := newMemoryRepo()
	repo.docs["u1"] = domain.Profile{
		Identity: domain.Identity{UserID: "u1"},
		Address:  strPtr("Jl. Kenanga 2"),
		Cart: []domain.VendorCart{{VendorID: "v1", Items: []domain.CartLineItem{
			{ID: "l1", VendorID: "v1", CatalogItemID: "i1", Price: 100, Quantity: 2, Selected: true},
		}}},
	}
	store, _ := newTestStore(t, repo)
	if got := store.Address(); got == nil || *got != "Jl. Kenanga 2" {
		t.Fatalf("unexpected address %v", got)
	}
	if store.TotalSelectedPrice() != 200 {
		t.Fatalf("unexpected selected total %d", store.TotalSelectedPrice())
	}
}

func TestNew_LoadErrorIsReturned(t *testing.T) {
	repo := newMemoryRepo()
	repo.loadErr = errors.New("db down")
	_, err := New(context.Background(), domain.Identity{UserID: "u1"}, Deps{Repo: repo, Catalog: testCatalog()})
	if err == nil {
		t.Fatalf("expected load error")
	}
}

func TestAtomicCheckout_TwoVendors(t *testing.T) {
	repo := newMemoryRepo()
	store, _ := newTestStore(t, repo)
	ctx := context.Background()

	a, _ := store.AddCatalogItem(ctx, "v1", "i1", "", 1)
	b, _ := store.AddCatalogItem(ctx, "v1", "i2", "", 2)
	c, _ := store.AddCatalogItem(ctx, "v2", "i3", "", 1)
	if _, err := store.AddCatalogItem(ctx, "v2", "i1", "", 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("item from another vendor should be rejected, got %v", err)
	}
	store.ToggleSelectAllGlobal()

	if _, err := store.CheckoutCart(courierForm()); !errors.Is(err, domain.ErrMissingAddress) {
		t.Fatalf("expected ErrMissingAddress, got %v", err)
	}
	if len(store.OngoingTransactions()) != 0 || len(store.SelectedItems()) != 3 {
		t.Fatalf("failed checkout must not change state")
	}

	store.SetAddress(strPtr("Jl. Melati 9"))
	txs, err := store.CheckoutCart(courierForm())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	for _, id := range []string{a.ID, b.ID, c.ID} {
		for _, vc := range store.Cart() {
			for _, item := range vc.Items {
				if item.ID == id {
					t.Fatalf("consumed line %s still in cart", id)
				}
			}
		}
	}
	if len(store.Cart()) != 0 {
		t.Fatalf("cart should be empty, got %+v", store.Cart())
	}

	stored := repo.docs["u1"]
	if len(stored.Transactions) != 2 || len(stored.Cart) != 0 {
		t.Fatalf("persisted document out of sync: %+v", stored)
	}
}

func TestCheckoutCart_LeavesUnselected(t *testing.T) {
	store, _ := newTestStore(t, newMemoryRepo())
	ctx := context.Background()
	store.SetAddress(strPtr("addr"))
	keep, _ := store.AddCatalogItem(ctx, "v1", "i1", "", 1)
	take, _ := store.AddCatalogItem(ctx, "v1", "i2", "", 1)
	store.ToggleSelection(take.ID)

	if _, err := store.CheckoutCart(courierForm()); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	cart := store.Cart()
	if len(cart) != 1 || len(cart[0].Items) != 1 || cart[0].Items[0].ID != keep.ID {
		t.Fatalf("unexpected remaining cart %+v", cart)
	}
}

func TestCheckoutCart_EmptySelection(t *testing.T) {
	store, _ := newTestStore(t, newMemoryRepo())
	store.SetAddress(strPtr("addr"))
	if _, err := store.AddCatalogItem(context.Background(), "v1", "i1", "", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.CheckoutCart(courierForm()); !errors.Is(err, domain.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestCustomizationScenario(t *testing.T) {
	store, _ := newTestStore(t, newMemoryRepo())
	ctx := context.Background()
	store.SetAddress(strPtr("addr"))

	if _, err := store.StartCustomization(ctx, "v1", "jahit", false); err != nil {
		t.Fatalf("start: %v", err)
	}
	draft, err := store.UpdateCustomization(ctx, []customization.Action{
		{Action: "selectCatalogItem", CatalogItemID: "i1"},
		{Action: "setQuantity", Quantity: 2},
		{Action: "setFabricProvider", FabricProvider: "vendor"},
		{Action: "setFabricOption", FabricOptionID: "f1"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if draft.Item == nil || draft.Quantity != 2 || draft.Fabric == nil {
		t.Fatalf("unexpected draft %+v", draft)
	}

	tx, err := store.CheckoutCustomization(courierForm())
	if err != nil {
		t.Fatalf("checkout customization: %v", err)
	}
	if tx.TotalPrice != 245000 || tx.Status != domain.StatusPending {
		t.Fatalf("unexpected transaction %+v", tx)
	}
	if _, ok := store.Draft(); ok {
		t.Fatalf("draft should be cleared after checkout")
	}
	if len(store.Cart()) != 0 {
		t.Fatalf("customization checkout must not touch the cart")
	}
}

func TestAddCustomizationToCart(t *testing.T) {
	store, _ := newTestStore(t, newMemoryRepo())
	ctx := context.Background()
	if _, err := store.AddCustomizationToCart(); !errors.Is(err, domain.ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
	if _, err := store.StartCustomization(ctx, "v1", "jahit", false); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := store.AddCustomizationToCart(); !errors.Is(err, domain.ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
	if _, ok := store.Draft(); !ok {
		t.Fatalf("invalid draft should survive a failed conversion")
	}
	if _, err := store.UpdateCustomization(ctx, []customization.Action{{Action: "selectCatalogItem", CatalogItemID: "i2"}}); err != nil {
		t.Fatalf("update: %v", err)
	}
	li, err := store.AddCustomizationToCart()
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if !li.IsCustomOrder || li.TotalPrice != 60000 {
		t.Fatalf("unexpected line %+v", li)
	}
	if len(store.Cart()) != 1 {
		t.Fatalf("expected line in cart")
	}
}

func TestUpdateCustomization_AllOrNothing(t *testing.T) {
	store, att := newTestStore(t, newMemoryRepo())
	ctx := context.Background()
	if _, err := store.StartCustomization(ctx, "v1", "jahit", false); err != nil {
		t.Fatalf("start: %v", err)
	}
	var actions []customization.Action
	for i := 0; i < domain.MaxAttachments; i++ {
		actions = append(actions, customization.Action{Action: "addAttachment", Attachment: fmt.Sprintf("img-%d", i)})
	}
	if _, err := store.UpdateCustomization(ctx, actions); err != nil {
		t.Fatalf("fill attachments: %v", err)
	}
	_, err := store.UpdateCustomization(ctx, []customization.Action{
		{Action: "setDescription", Description: "should not stick"},
		{Action: "addAttachment", Attachment: "img-overflow"},
	})
	if !errors.Is(err, domain.ErrAttachmentLimit) {
		t.Fatalf("expected ErrAttachmentLimit, got %v", err)
	}
	draft, _ := store.Draft()
	if draft.Description != "" || len(draft.Attachments) != domain.MaxAttachments {
		t.Fatalf("failed batch leaked into draft: %+v", draft)
	}

	if _, err := store.UpdateCustomization(ctx, []customization.Action{{Action: "removeAttachment", Attachment: "img-0"}}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(att.deleted) != 1 || att.deleted[0] != "img-0" {
		t.Fatalf("removed attachment should be deleted from the store, got %v", att.deleted)
	}

	store.DiscardCustomization()
	if len(att.deleted) != domain.MaxAttachments {
		t.Fatalf("discard should delete remaining attachments, got %d", len(att.deleted))
	}
}

func TestUpdateCustomization_Errors(t *testing.T) {
	store, _ := newTestStore(t, newMemoryRepo())
	ctx := context.Background()
	if _, err := store.UpdateCustomization(ctx, []customization.Action{{Action: "setQuantity", Quantity: 1}}); !errors.Is(err, domain.ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
	if _, err := store.StartCustomization(ctx, "v1", "jahit", false); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := store.UpdateCustomization(ctx, []customization.Action{{Action: "setFabricOption", FabricOptionID: "f1"}}); !errors.Is(err, domain.ErrInvalidOrder) {
		t.Fatalf("fabric before item should fail, got %v", err)
	}
	if _, err := store.UpdateCustomization(ctx, []customization.Action{
		{Action: "selectCatalogItem", CatalogItemID: "i1"},
		{Action: "setFabricOption", FabricOptionID: "nope"},
	}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown fabric, got %v", err)
	}
	if _, err := store.UpdateCustomization(ctx, []customization.Action{{Action: "selectCatalogItem", CatalogItemID: "i3"}}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("item from another vendor should fail, got %v", err)
	}
	if _, err := store.UpdateCustomization(ctx, nil); err == nil {
		t.Fatalf("expected actions required error")
	}
}

func TestLifecycleAndReview(t *testing.T) {
	store, _ := newTestStore(t, newMemoryRepo())
	ctx := context.Background()
	store.SetAddress(strPtr("addr"))
	line, _ := store.AddCatalogItem(ctx, "v1", "i1", "", 1)
	store.ToggleSelection(line.ID)
	txs, err := store.CheckoutCart(courierForm())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	id := txs[0].ID

	if err := store.Advance(id, domain.StatusCompleted); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if len(store.OngoingTransactions()) != 0 || len(store.CompletedTransactions()) != 1 {
		t.Fatalf("transaction should be completed")
	}
	if err := store.Advance(id, domain.StatusPending); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	first, err := store.SubmitReview(ReviewInput{TransactionID: id, Rating: 5, Comment: " rapi "})
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if first.AuthorID != "u1" || first.AuthorName != "Sari" || first.VendorID != "v1" || first.Comment != "rapi" {
		t.Fatalf("unexpected review %+v", first)
	}
	if _, err := store.SubmitReview(ReviewInput{TransactionID: id, Rating: 2}); !errors.Is(err, domain.ErrDuplicateReview) {
		t.Fatalf("expected ErrDuplicateReview, got %v", err)
	}
	got, _ := store.Transaction(id)
	if got.Review == nil || got.Review.ID != first.ID || got.Review.Rating != 5 {
		t.Fatalf("first review must win, got %+v", got.Review)
	}
}

func TestSaveFailureKeepsMemoryAndRetries(t *testing.T) {
	repo := newMemoryRepo()
	store, _ := newTestStore(t, repo)
	repo.saveErr = errors.New("disk full")

	if _, err := store.AddCatalogItem(context.Background(), "v1", "i1", "", 1); err != nil {
		t.Fatalf("save failure must not surface: %v", err)
	}
	if !store.Dirty() || len(store.Cart()) != 1 {
		t.Fatalf("in-memory state should stay and be marked dirty")
	}

	repo.saveErr = nil
	if err := store.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if store.Dirty() || len(repo.docs["u1"].Cart) != 1 {
		t.Fatalf("flush should persist the pending document")
	}
}

func TestSubscribeSignalsChanges(t *testing.T) {
	store, _ := newTestStore(t, newMemoryRepo())
	ch, cancel := store.Subscribe()
	defer cancel()

	store.SetAddress(strPtr("addr"))
	store.SetAddress(strPtr("addr 2"))
	select {
	case <-ch:
	default:
		t.Fatalf("expected change signal")
	}
	select {
	case <-ch:
		t.Fatalf("signals should coalesce")
	default:
	}

	cancel()
	store.SetAddress(strPtr("addr 3"))
	select {
	case <-ch:
		t.Fatalf("cancelled subscriber should not be signalled")
	default:
	}
}

func TestSyncAddress(t *testing.T) {
	store, _ := newTestStore(t, newMemoryRepo())
	sup := session.NewAddress("")
	sup.BeginLookup()
	if store.SyncAddress(sup) {
		t.Fatalf("should not sync while loading")
	}
	sup.Resolve("Jl. Anggrek 3")
	if !store.SyncAddress(sup) {
		t.Fatalf("expected sync")
	}
	if store.SyncAddress(sup) {
		t.Fatalf("unchanged address should not sync again")
	}
	if got := store.Address(); got == nil || *got != "Jl. Anggrek 3" {
		t.Fatalf("unexpected address %v", got)
	}
	store.SetAddress(strPtr("   "))
	if store.Address() != nil {
		t.Fatalf("blank address should clear")
	}
}

func TestStartCustomization_ReplacingDraftDeletesAttachments(t *testing.T) {
	store, att := newTestStore(t, newMemoryRepo())
	ctx := context.Background()
	if _, err := store.StartCustomization(ctx, "v1", "jahit", false); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := store.UpdateCustomization(ctx, []customization.Action{
		{Action: "addAttachment", Attachment: "old-1"},
		{Action: "addAttachment", Attachment: "old-2"},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	draft, err := store.StartCustomization(ctx, "v2", "permak", true)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if len(draft.Attachments) != 0 || draft.VendorID != "v2" {
		t.Fatalf("expected fresh draft, got %+v", draft)
	}
	if len(att.deleted) != 2 || att.deleted[0] != "old-1" || att.deleted[1] != "old-2" {
		t.Fatalf("replaced draft attachments should be deleted, got %v", att.deleted)
	}
}

func TestAddCustomizationToCart_MergeDeletesDroppedAttachments(t *testing.T) {
	store, att := newTestStore(t, newMemoryRepo())
	ctx := context.Background()
	addDraft := func(ref, desc string) domain.CartLineItem {
		t.Helper()
		if _, err := store.StartCustomization(ctx, "v1", "jahit", false); err != nil {
			t.Fatalf("start: %v", err)
		}
		if _, err := store.UpdateCustomization(ctx, []customization.Action{
			{Action: "selectCatalogItem", CatalogItemID: "i2"},
			{Action: "setDescription", Description: desc},
			{Action: "addAttachment", Attachment: ref},
		}); err != nil {
			t.Fatalf("update: %v", err)
		}
		li, err := store.AddCustomizationToCart()
		if err != nil {
			t.Fatalf("add to cart: %v", err)
		}
		return li
	}

	first := addDraft("img-a", "first")
	second := addDraft("img-b", "second")
	if second.ID != first.ID || second.Quantity != 2 {
		t.Fatalf("expected merge into first line, got %+v", second)
	}
	if second.Description != "first" || len(second.Attachments) != 1 || second.Attachments[0] != "img-a" {
		t.Fatalf("first configuration should win, got %+v", second)
	}
	if len(att.deleted) != 1 || att.deleted[0] != "img-b" {
		t.Fatalf("dropped attachment should be deleted, got %v", att.deleted)
	}
}

func TestCartView_ConsistentTotals(t *testing.T) {
	store, _ := newTestStore(t, newMemoryRepo())
	ctx := context.Background()
	if _, err := store.AddCatalogItem(ctx, "v1", "i1", "", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.AddCatalogItem(ctx, "v2", "i3", "", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	store.ToggleSelectAll("v1")

	view := store.CartView()
	var want int64
	for _, vc := range view.Vendors {
		for _, li := range vc.Items {
			if li.Selected {
				want += li.TotalPrice
			}
		}
	}
	if view.SelectedTotal != want || want != 190000 || view.AllSelected {
		t.Fatalf("unexpected view %+v", view)
	}
}
