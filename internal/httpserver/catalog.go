package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listVendors(c *gin.Context) {
	vendors, err := h.catalog.ListVendors(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": vendors})
}

func (h *handlers) listItems(c *gin.Context) {
	vendorID := c.Param("vendorId")
	vendor, err := h.catalog.Vendor(c.Request.Context(), vendorID)
	if err != nil {
		writeError(c, err)
		return
	}
	items, err := h.catalog.ItemsByCategory(c.Request.Context(), vendorID, c.Query("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendor": vendor, "items": items})
}

func (h *handlers) listFabrics(c *gin.Context) {
	opts, err := h.catalog.FabricOptions(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fabrics": opts})
}

func (h *handlers) listDeliveryOptions(c *gin.Context) {
	opts, err := h.catalog.ListDeliveryOptions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deliveryOptions": opts})
}
