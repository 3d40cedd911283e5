package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storeadmin/internal/domain/model"
	"github.com/polkiloo/storeadmin/internal/server/http/dto"
)

// CatalogHandler manages category, product and offer message endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// CreateCategory handles POST /api/admin/categories.
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name is required")
		return
	}

	category, err := h.facade.CreateCategory(c.Request.Context(), req.Name, req.Description, req.ImageURL)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryResponse(*category))
}

// Categories handles GET /api/admin/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	response := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}
	c.JSON(http.StatusOK, response)
}

// DeleteCategory handles DELETE /api/admin/categories/:id.
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.facade.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateProduct handles POST /api/admin/products.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "category and name are required")
		return
	}

	product, warnings, err := h.facade.CreateProduct(c.Request.Context(), toProductInput(req))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ProductWriteResponse{
		Product:  toProductResponse(*product),
		Warnings: toWarnings(warnings),
	})
}

// Products handles GET /api/admin/products?category=.
func (h *CatalogHandler) Products(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		badRequest(c, "category is required")
		return
	}

	products, err := h.facade.Products(c.Request.Context(), category)
	if err != nil {
		abortWithError(c, err)
		return
	}
	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Product handles GET /api/admin/products/:category/:id.
func (h *CatalogHandler) Product(c *gin.Context) {
	product, err := h.facade.Product(c.Request.Context(), c.Param("category"), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// DeleteProduct handles DELETE /api/admin/products/:category/:id.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.facade.DeleteProduct(c.Request.Context(), c.Param("category"), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Relocate handles PUT /api/admin/products/:category/:id/location.
func (h *CatalogHandler) Relocate(c *gin.Context) {
	var req dto.Slot
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "rack, shelf and bin must be positive")
		return
	}

	slot := model.Slot{Rack: req.Rack, Shelf: req.Shelf, Bin: req.Bin}
	product, warnings, err := h.facade.RelocateProduct(c.Request.Context(), c.Param("category"), c.Param("id"), slot)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductWriteResponse{
		Product:  toProductResponse(*product),
		Warnings: toWarnings(warnings),
	})
}

// SetOfferBand handles PUT /api/admin/products/:category/:id/offer-band.
func (h *CatalogHandler) SetOfferBand(c *gin.Context) {
	var req dto.OfferBandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "show is required")
		return
	}

	product, err := h.facade.SetOfferBand(c.Request.Context(), c.Param("category"), c.Param("id"), *req.Show)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// OfferMessages handles GET /api/admin/offer-messages.
func (h *CatalogHandler) OfferMessages(c *gin.Context) {
	messages, err := h.facade.OfferMessages(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	response := make([]dto.OfferMessageResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, toOfferMessageResponse(m))
	}
	c.JSON(http.StatusOK, response)
}

// CreateOfferMessage handles POST /api/admin/offer-messages.
func (h *CatalogHandler) CreateOfferMessage(c *gin.Context) {
	var req dto.OfferMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "text is required")
		return
	}

	message, err := h.facade.CreateOfferMessage(c.Request.Context(), req.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOfferMessageResponse(*message))
}

// UpdateOfferMessage handles PUT /api/admin/offer-messages/:id.
func (h *CatalogHandler) UpdateOfferMessage(c *gin.Context) {
	var req dto.OfferMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Order == nil {
		badRequest(c, "text and order are required")
		return
	}

	message, err := h.facade.UpdateOfferMessage(c.Request.Context(), c.Param("id"), req.Text, *req.Order)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOfferMessageResponse(*message))
}

// DeleteOfferMessage handles DELETE /api/admin/offer-messages/:id.
func (h *CatalogHandler) DeleteOfferMessage(c *gin.Context) {
	if err := h.facade.DeleteOfferMessage(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toOfferMessageResponse(m model.OfferMessage) dto.OfferMessageResponse {
	return dto.OfferMessageResponse{
		ID:        m.ID,
		Text:      m.Text,
		Order:     m.Position,
		CreatedAt: timePtr(m.CreatedAt),
	}
}

func toCategoryResponse(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
	}
}

func toProductInput(req dto.ProductRequest) model.ProductInput {
	in := model.ProductInput{
		Category:      req.Category,
		Name:          req.Name,
		NameTamil:     req.NameTamil,
		Description:   req.Description,
		Keywords:      req.Keywords,
		ImageURLs:     req.ImageURLs,
		AutoLocation:  req.AutoLocation,
		ShowOfferBand: req.ShowOfferBand,
	}
	for _, o := range req.Options {
		in.Options = append(in.Options, model.ProductOption(o))
	}
	if req.Location != nil {
		in.Slot = &model.Slot{Rack: req.Location.Rack, Shelf: req.Location.Shelf, Bin: req.Location.Bin}
	}
	return in
}

func toProductResponse(p model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:            p.ID,
		Category:      p.Category,
		ProductNumber: p.ProductNumber,
		Path:          p.Path(),
		Name:          p.Name,
		NameTamil:     p.NameTamil,
		Description:   p.Description,
		Keywords:      p.Keywords,
		ImageURLs:     p.ImageURLs,
		ShowOfferBand: p.ShowOfferBand,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	for _, o := range p.Options {
		resp.Options = append(resp.Options, dto.ProductOption(o))
	}
	if p.Location != nil {
		loc := dto.ProductLocation(*p.Location)
		resp.Location = &loc
	}
	return resp
}
