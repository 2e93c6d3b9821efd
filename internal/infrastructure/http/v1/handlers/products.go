package handlers

import (
	"github.com/gin-gonic/gin"

	"dukkan/internal/domain/inventory"
	"dukkan/internal/infrastructure/http/v1/dto"
)

// ProductsHandler handles product catalog endpoints.
type ProductsHandler struct {
	*BaseHandler
	inventory *inventory.Service
}

// NewProductsHandler creates a products handler.
func NewProductsHandler(inv *inventory.Service) *ProductsHandler {
	return &ProductsHandler{BaseHandler: NewBaseHandler(), inventory: inv}
}

// List returns products, filterable by category and low-stock flag.
// GET /products
func (h *ProductsHandler) List(c *gin.Context) {
	filter := inventory.ProductFilter{
		LowStock: c.Query("lowStock") == "true",
		Limit:    h.ParseIntQuery(c, "limit", 0),
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}

	products, err := h.inventory.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, products)
}

// Create adds a product. An empty code gets an auto-generated one.
// POST /products
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product := req.ToEntity()
	if err := h.inventory.CreateProduct(c.Request.Context(), product); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, product)
}

// Get returns one product.
// GET /products/:id
func (h *ProductsHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	product, err := h.inventory.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, product)
}

// Update modifies a product's catalog fields. Stock is not editable here.
// PUT /products/:id
func (h *ProductsHandler) Update(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.inventory.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.Apply(product)

	if err := h.inventory.UpdateProduct(c.Request.Context(), product); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, product)
}

// Delete removes a product. Movement history stays.
// DELETE /products/:id
func (h *ProductsHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.inventory.DeleteProduct(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "product deleted")
}
