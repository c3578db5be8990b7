package customization

import (
	"errors"
	"fmt"
	"strings"

	"tailorcart/internal/domain"
)

const (
	ActionSelectCatalogItem = "selectcatalogitem"
	ActionSetQuantity       = "setquantity"
	ActionSetDescription    = "setdescription"
	ActionAddAttachment     = "addattachment"
	ActionRemoveAttachment  = "removeattachment"
	ActionSetFabricProvider = "setfabricprovider"
	ActionSetFabricOption   = "setfabricoption"
)

// Action is one draft update, applied in order by the profile store.
type Action struct {
	Action         string `json:"action"`
	CatalogItemID  string `json:"catalogItemId,omitempty"`
	Quantity       int    `json:"quantity,omitempty"`
	Description    string `json:"description,omitempty"`
	Attachment     string `json:"attachment,omitempty"`
	FabricProvider string `json:"fabricProvider,omitempty"`
	FabricOptionID string `json:"fabricOptionId,omitempty"`
}

// Kind is the normalised action name.
func (a Action) Kind() string {
	return strings.ToLower(strings.TrimSpace(a.Action))
}

// Validate checks required fields before anything is applied.
func (a Action) Validate() error {
	switch a.Kind() {
	case ActionSelectCatalogItem:
		if strings.TrimSpace(a.CatalogItemID) == "" {
			return errors.New("catalogItemId required")
		}
	case ActionSetQuantity:
		if a.Quantity > domain.MaxQuantity {
			return fmt.Errorf("quantity must be at most %d", domain.MaxQuantity)
		}
	case ActionSetDescription:
	case ActionAddAttachment, ActionRemoveAttachment:
		if strings.TrimSpace(a.Attachment) == "" {
			return errors.New("attachment required")
		}
	case ActionSetFabricProvider:
		switch strings.ToLower(strings.TrimSpace(a.FabricProvider)) {
		case "customer", "vendor":
		default:
			return errors.New("fabricProvider must be customer or vendor")
		}
	case ActionSetFabricOption:
		if strings.TrimSpace(a.FabricOptionID) == "" {
			return errors.New("fabricOptionId required")
		}
	default:
		return errors.New("unsupported action")
	}
	return nil
}
