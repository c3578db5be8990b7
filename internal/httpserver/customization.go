package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tailorcart/internal/customization"
)

type startCustomizationRequest struct {
	VendorID string `json:"vendorId" binding:"required"`
	Category string `json:"category"`
	Repair   bool   `json:"repair"`
}

type updateCustomizationRequest struct {
	Actions []customization.Action `json:"actions"`
}

func (h *handlers) startCustomization(c *gin.Context) {
	var req startCustomizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "vendorId is required")
		return
	}
	draft, err := h.store.StartCustomization(c.Request.Context(), req.VendorID, req.Category, req.Repair)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

func (h *handlers) getCustomization(c *gin.Context) {
	draft, ok := h.store.Draft()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no customization in progress"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": draft, "valid": draft.Item != nil})
}

// updateCustomization applies the batch all-or-nothing. An add past the
// attachment limit rejects the whole batch with 422 and leaves the draft
// unchanged, so clients check the count before offering another upload.
func (h *handlers) updateCustomization(c *gin.Context) {
	var req updateCustomizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	if len(req.Actions) == 0 {
		badRequest(c, "actions required")
		return
	}
	for _, a := range req.Actions {
		if err := a.Validate(); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	draft, err := h.store.UpdateCustomization(c.Request.Context(), req.Actions)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": draft, "valid": draft.Item != nil})
}

func (h *handlers) discardCustomization(c *gin.Context) {
	h.store.DiscardCustomization()
	c.Status(http.StatusNoContent)
}

func (h *handlers) customizationToCart(c *gin.Context) {
	li, err := h.store.AddCustomizationToCart()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, li)
}

func (h *handlers) checkoutCustomization(c *gin.Context) {
	form, ok := h.bindCheckoutForm(c)
	if !ok {
		return
	}
	tx, err := h.store.CheckoutCustomization(form)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}
