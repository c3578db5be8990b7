package profile

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"tailorcart/internal/customization"
	"tailorcart/internal/domain"
)

// Draft returns the customization in progress, if any.
func (s *Store) Draft() (domain.CustomizationOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return domain.CustomizationOrder{}, false
	}
	return s.draft.Snapshot(), true
}

// StartCustomization replaces any previous draft and deletes its attachments.
// It does not persist; drafts are transient.
func (s *Store) StartCustomization(ctx context.Context, vendorID, category string, repair bool) (domain.CustomizationOrder, error) {
	vendor, err := s.catalog.Vendor(ctx, strings.TrimSpace(vendorID))
	if err != nil {
		return domain.CustomizationOrder{}, fmt.Errorf("vendor %s: %w", vendorID, err)
	}
	s.mu.Lock()
	var stale []string
	if s.draft != nil {
		stale = s.draft.Attachments()
	}
	s.draft = customization.New(*vendor, strings.TrimSpace(category), repair)
	snap := s.draft.Snapshot()
	s.mu.Unlock()

	s.deleteAttachments(stale)
	s.notify()
	return snap, nil
}

// resolved is an action with its catalog lookups already done.
type resolved struct {
	action customization.Action
	item   *domain.CatalogItem
	fabric *domain.FabricOption
}

// UpdateCustomization applies actions in order. Either all apply or none do.
func (s *Store) UpdateCustomization(ctx context.Context, actions []customization.Action) (domain.CustomizationOrder, error) {
	if len(actions) == 0 {
		return domain.CustomizationOrder{}, errors.New("actions required")
	}
	for _, a := range actions {
		if err := a.Validate(); err != nil {
			return domain.CustomizationOrder{}, err
		}
	}

	s.mu.Lock()
	if s.draft == nil {
		s.mu.Unlock()
		return domain.CustomizationOrder{}, domain.ErrNoDraft
	}
	base := s.draft
	current := base.Snapshot()
	s.mu.Unlock()

	// Catalog lookups happen outside the lock.
	itemID := ""
	if current.Item != nil {
		itemID = current.Item.ID
	}
	steps := make([]resolved, 0, len(actions))
	for _, a := range actions {
		step := resolved{action: a}
		switch a.Kind() {
		case customization.ActionSelectCatalogItem:
			item, err := s.catalog.CatalogItem(ctx, strings.TrimSpace(a.CatalogItemID))
			if err != nil {
				return domain.CustomizationOrder{}, fmt.Errorf("catalog item %s: %w", a.CatalogItemID, err)
			}
			if item.VendorID != "" && item.VendorID != current.VendorID {
				return domain.CustomizationOrder{}, fmt.Errorf("catalog item %s: %w", a.CatalogItemID, domain.ErrNotFound)
			}
			step.item = item
			itemID = item.ID
		case customization.ActionSetFabricOption:
			if itemID == "" {
				return domain.CustomizationOrder{}, domain.ErrInvalidOrder
			}
			opts, err := s.catalog.FabricOptions(ctx, itemID)
			if err != nil {
				return domain.CustomizationOrder{}, fmt.Errorf("fabric options %s: %w", itemID, err)
			}
			for i := range opts {
				if opts[i].ID == strings.TrimSpace(a.FabricOptionID) {
					step.fabric = &opts[i]
					break
				}
			}
			if step.fabric == nil {
				return domain.CustomizationOrder{}, fmt.Errorf("fabric option %s: %w", a.FabricOptionID, domain.ErrNotFound)
			}
		}
		steps = append(steps, step)
	}

	s.mu.Lock()
	if s.draft != base {
		s.mu.Unlock()
		return domain.CustomizationOrder{}, domain.ErrNoDraft
	}
	next := base.Clone()
	var removed []string
	for _, step := range steps {
		a := step.action
		switch a.Kind() {
		case customization.ActionSelectCatalogItem:
			next.SelectCatalogItem(*step.item)
		case customization.ActionSetQuantity:
			next.SetQuantity(a.Quantity)
		case customization.ActionSetDescription:
			next.SetDescription(a.Description)
		case customization.ActionAddAttachment:
			if err := next.AddAttachment(strings.TrimSpace(a.Attachment)); err != nil {
				s.mu.Unlock()
				return domain.CustomizationOrder{}, err
			}
		case customization.ActionRemoveAttachment:
			if next.RemoveAttachment(strings.TrimSpace(a.Attachment)) {
				removed = append(removed, strings.TrimSpace(a.Attachment))
			}
		case customization.ActionSetFabricProvider:
			next.SetFabricProvider(domain.FabricProvider(strings.ToLower(strings.TrimSpace(a.FabricProvider))))
		case customization.ActionSetFabricOption:
			next.SetFabricOption(*step.fabric)
		}
	}
	s.draft = next
	snap := next.Snapshot()
	s.mu.Unlock()

	s.deleteAttachments(removed)
	s.notify()
	return snap, nil
}

// DiscardCustomization drops the draft and its uploaded attachments.
func (s *Store) DiscardCustomization() {
	s.mu.Lock()
	if s.draft == nil {
		s.mu.Unlock()
		return
	}
	refs := s.draft.Attachments()
	s.draft = nil
	s.mu.Unlock()

	s.deleteAttachments(refs)
	s.notify()
}

// AddCustomizationToCart converts the draft into a cart line and clears it.
// When the line merges into an existing one, the draft's own attachments are deleted.
func (s *Store) AddCustomizationToCart() (domain.CartLineItem, error) {
	s.mu.Lock()
	if s.draft == nil {
		s.mu.Unlock()
		return domain.CartLineItem{}, domain.ErrNoDraft
	}
	li, err := s.draft.ToCartLineItem(s.newID())
	if err != nil {
		s.mu.Unlock()
		return domain.CartLineItem{}, err
	}
	stored := s.cart.AddItem(li)
	s.draft = nil
	s.commit("add customization")
	s.mu.Unlock()

	if stored.ID != li.ID {
		s.deleteAttachments(droppedRefs(li.Attachments, stored.Attachments))
	}
	return stored, nil
}

// droppedRefs lists refs in from that kept does not contain.
func droppedRefs(from, kept []string) []string {
	var out []string
	for _, ref := range from {
		if !slices.Contains(kept, ref) {
			out = append(out, ref)
		}
	}
	return out
}

func (s *Store) deleteAttachments(refs []string) {
	if s.attachments == nil || len(refs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, ref := range refs {
		if err := s.attachments.Delete(ctx, ref); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("profile store: delete attachment name=%s error=%v", ref, err)
		}
	}
}
