// Package http exposes the product catalog over gin handlers.
package http

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/greenbasket/storefront-api/internal/domains/catalog/application"
	"github.com/greenbasket/storefront-api/internal/domains/catalog/domain"
	"github.com/greenbasket/storefront-api/internal/domains/catalog/ports"
	"github.com/greenbasket/storefront-api/internal/shared/respond"
)

// Handler adapts the catalog service to HTTP.
type Handler struct {
	service ports.Service
	logger  *slog.Logger
}

func NewHandler(service ports.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

type productPayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description []string `json:"description"`
	Category    string   `json:"category"`
	Price       int64    `json:"price"`
	OfferPrice  int64    `json:"offerPrice"`
	Images      []string `json:"image"`
	Weight      string   `json:"weight"`
	InStock     bool     `json:"inStock"`
}

func toPayload(p *domain.Product) productPayload {
	return productPayload{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		OfferPrice:  p.OfferPrice,
		Images:      p.Images,
		Weight:      p.Weight,
		InStock:     p.InStock,
	}
}

// Add handles POST /api/product/add.
func (h *Handler) Add(c *gin.Context) {
	var req productPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	_, err := h.service.AddProduct(c.Request.Context(), ports.AddProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		OfferPrice:  req.OfferPrice,
		Images:      req.Images,
		Weight:      req.Weight,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.Created(c, "Product Added", nil)
}

// List handles GET /api/product/list.
func (h *Handler) List(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	payload := make([]productPayload, 0, len(products))
	for _, product := range products {
		payload = append(payload, toPayload(product))
	}
	respond.OK(c, "", gin.H{"products": payload})
}

// ByID handles GET /api/product/id?id=....
func (h *Handler) ByID(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		respond.BadRequest(c, "Product ID is required")
		return
	}
	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, "", gin.H{"product": toPayload(product)})
}

type changeStockRequest struct {
	ID      string `json:"id"`
	InStock bool   `json:"inStock"`
}

// ChangeStock handles POST /api/product/stock.
func (h *Handler) ChangeStock(c *gin.Context) {
	var req changeStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	if req.ID == "" {
		respond.BadRequest(c, "Product ID is required")
		return
	}
	if err := h.service.ChangeStock(c.Request.Context(), req.ID, req.InStock); err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, "Stock Updated", nil)
}

// Update handles POST /api/product/update.
func (h *Handler) Update(c *gin.Context) {
	var req productPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	if req.ID == "" {
		respond.BadRequest(c, "Product ID is required")
		return
	}
	_, err := h.service.UpdateProduct(c.Request.Context(), ports.UpdateProductInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		OfferPrice:  req.OfferPrice,
		Weight:      req.Weight,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, "Product Updated", nil)
}

type deleteRequest struct {
	ID string `json:"id"`
}

// Delete handles POST /api/product/delete.
func (h *Handler) Delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	if req.ID == "" {
		respond.BadRequest(c, "Product ID is required")
		return
	}
	if err := h.service.DeleteProduct(c.Request.Context(), req.ID); err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, "Product Deleted", nil)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		respond.BadRequest(c, err.Error())
	case errors.Is(err, ports.ErrNotFound):
		respond.NotFound(c, "product not found")
	default:
		h.logger.Error("product request failed", slog.String("error", err.Error()))
		respond.Internal(c)
	}
}
