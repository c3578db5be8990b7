package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tailorcart/internal/domain"
)

type addressRequest struct {
	Address *string `json:"address"`
}

type addCartItemRequest struct {
	VendorID      string `json:"vendorId" binding:"required"`
	CatalogItemID string `json:"catalogItemId" binding:"required"`
	Category      string `json:"category"`
	Quantity      int    `json:"quantity" binding:"max=999"`
}

type quantityRequest struct {
	Quantity int `json:"quantity" binding:"max=999"`
}

type cartResponse struct {
	Vendors       []domain.VendorCart `json:"vendors"`
	SelectedTotal int64               `json:"selectedTotal"`
	AllSelected   bool                `json:"allSelected"`
}

func (h *handlers) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}

func (h *handlers) setAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	h.store.SetAddress(req.Address)
	c.JSON(http.StatusOK, gin.H{"address": h.store.Address()})
}

func (h *handlers) cart() cartResponse {
	view := h.store.CartView()
	return cartResponse{
		Vendors:       view.Vendors,
		SelectedTotal: view.SelectedTotal,
		AllSelected:   view.AllSelected,
	}
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cart())
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "vendorId and catalogItemId are required, quantity at most 999")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	li, err := h.store.AddCatalogItem(c.Request.Context(), req.VendorID, req.CatalogItemID, req.Category, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, li)
}

func (h *handlers) setCartQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity must be at most 999")
		return
	}
	h.store.SetQuantity(c.Param("itemId"), c.Param("vendorId"), req.Quantity)
	c.JSON(http.StatusOK, h.cart())
}

func (h *handlers) removeCartItem(c *gin.Context) {
	h.store.RemoveItem(c.Param("itemId"), c.Param("vendorId"))
	c.JSON(http.StatusOK, h.cart())
}

func (h *handlers) toggleItem(c *gin.Context) {
	h.store.ToggleSelection(c.Param("itemId"))
	c.JSON(http.StatusOK, h.cart())
}

func (h *handlers) toggleVendor(c *gin.Context) {
	h.store.ToggleSelectAll(c.Param("vendorId"))
	c.JSON(http.StatusOK, h.cart())
}

func (h *handlers) toggleAll(c *gin.Context) {
	h.store.ToggleSelectAllGlobal()
	c.JSON(http.StatusOK, h.cart())
}
