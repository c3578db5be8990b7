package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tailorcart/internal/domain"
	"tailorcart/internal/service/profile"
)

// catalogReader is the browse side of the catalog repository.
type catalogReader interface {
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
	Vendor(ctx context.Context, id string) (*domain.Vendor, error)
	ItemsByCategory(ctx context.Context, vendorID, category string) ([]domain.CatalogItem, error)
	FabricOptions(ctx context.Context, catalogItemID string) ([]domain.FabricOption, error)
	DeliveryOption(ctx context.Context, mode domain.DeliveryMode) (*domain.DeliveryOption, error)
	ListDeliveryOptions(ctx context.Context) ([]domain.DeliveryOption, error)
}

type attachmentStore interface {
	Save(ctx context.Context, payloads [][]byte) ([]string, error)
	Load(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

type Deps struct {
	Profile     *profile.Store
	Catalog     catalogReader
	Attachments attachmentStore
	Ready       Checks
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if deps.Profile == nil {
		return nil, errors.New("profile store required")
	}
	if deps.Catalog == nil {
		return nil, errors.New("catalog required")
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Ready))

	h := &handlers{store: deps.Profile, catalog: deps.Catalog, attachments: deps.Attachments, logger: logger}

	router.GET("/vendors", h.listVendors)
	router.GET("/vendors/:vendorId/items", h.listItems)
	router.GET("/catalog/items/:itemId/fabrics", h.listFabrics)
	router.GET("/delivery-options", h.listDeliveryOptions)

	router.GET("/profile", h.getProfile)
	router.PUT("/profile/address", h.setAddress)

	router.GET("/cart", h.getCart)
	router.POST("/cart/items", h.addCartItem)
	router.PATCH("/cart/vendors/:vendorId/items/:itemId", h.setCartQuantity)
	router.DELETE("/cart/vendors/:vendorId/items/:itemId", h.removeCartItem)
	router.POST("/cart/items/:itemId/toggle", h.toggleItem)
	router.POST("/cart/vendors/:vendorId/toggle", h.toggleVendor)
	router.POST("/cart/toggle", h.toggleAll)

	router.POST("/customization", h.startCustomization)
	router.GET("/customization", h.getCustomization)
	router.PATCH("/customization", h.updateCustomization)
	router.DELETE("/customization", h.discardCustomization)
	router.POST("/customization/cart", h.customizationToCart)
	router.POST("/customization/checkout", h.checkoutCustomization)

	router.POST("/checkout", h.checkoutCart)
	router.GET("/transactions", h.listTransactions)
	router.GET("/transactions/:id", h.getTransaction)
	router.POST("/transactions/:id/status", h.advanceTransaction)
	router.POST("/transactions/:id/review", h.submitReview)

	if deps.Attachments != nil {
		router.POST("/attachments", h.uploadAttachments)
		router.GET("/attachments/:name", h.getAttachment)
		router.DELETE("/attachments/:name", h.deleteAttachment)
	}

	router.GET("/events", h.events)

	return router, nil
}

type handlers struct {
	store       *profile.Store
	catalog     catalogReader
	attachments attachmentStore
	logger      *log.Logger
}
