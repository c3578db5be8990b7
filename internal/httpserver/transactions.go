package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tailorcart/internal/checkout"
	"tailorcart/internal/domain"
	"tailorcart/internal/service/profile"
)

const pickupDateLayout = "2006-01-02"

type checkoutRequest struct {
	PickupDate    string `json:"pickupDate"`
	PickupTime    string `json:"pickupTime"`
	PaymentMethod string `json:"paymentMethod"`
	DeliveryMode  string `json:"deliveryMode"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type reviewRequest struct {
	Rating      int      `json:"rating"`
	Comment     string   `json:"comment"`
	Attachments []string `json:"attachments"`
}

// bindCheckoutForm parses the request and resolves the delivery option.
// Missing fields stay empty so the store reports the incomplete form.
func (h *handlers) bindCheckoutForm(c *gin.Context) (checkout.Form, bool) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return checkout.Form{}, false
	}
	form := checkout.Form{
		PickupTime:    strings.TrimSpace(req.PickupTime),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
	}
	if v := strings.TrimSpace(req.PickupDate); v != "" {
		d, err := time.Parse(pickupDateLayout, v)
		if err != nil {
			badRequest(c, "pickupDate must be YYYY-MM-DD")
			return checkout.Form{}, false
		}
		form.PickupDate = d
	}
	if mode := strings.ToLower(strings.TrimSpace(req.DeliveryMode)); mode != "" {
		opt, err := h.catalog.DeliveryOption(c.Request.Context(), domain.DeliveryMode(mode))
		if errors.Is(err, domain.ErrNotFound) {
			badRequest(c, "unknown deliveryMode")
			return checkout.Form{}, false
		}
		if err != nil {
			writeError(c, err)
			return checkout.Form{}, false
		}
		form.Delivery = opt
	}
	return form, true
}

func (h *handlers) checkoutCart(c *gin.Context) {
	form, ok := h.bindCheckoutForm(c)
	if !ok {
		return
	}
	txs, err := h.store.CheckoutCart(form)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transactions": txs})
}

func (h *handlers) listTransactions(c *gin.Context) {
	switch strings.ToLower(c.DefaultQuery("state", "ongoing")) {
	case "ongoing":
		c.JSON(http.StatusOK, gin.H{"transactions": h.store.OngoingTransactions()})
	case "completed":
		c.JSON(http.StatusOK, gin.H{"transactions": h.store.CompletedTransactions()})
	default:
		badRequest(c, "state must be ongoing or completed")
	}
}

func (h *handlers) getTransaction(c *gin.Context) {
	tx, err := h.store.Transaction(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *handlers) advanceTransaction(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}
	status, err := domain.ParseTransactionStatus(req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	id := c.Param("id")
	if err := h.store.Advance(id, status); err != nil {
		writeError(c, err)
		return
	}
	tx, err := h.store.Transaction(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *handlers) submitReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	review, err := h.store.SubmitReview(profile.ReviewInput{
		TransactionID: c.Param("id"),
		Rating:        req.Rating,
		Comment:       req.Comment,
		Attachments:   req.Attachments,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
