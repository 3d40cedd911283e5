package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storeadmin/internal/domain/model"
	"github.com/polkiloo/storeadmin/internal/server/http/dto"
)

// LocationHandler manages storage slot endpoints.
type LocationHandler struct {
	facade LocationFacade
}

// NewLocationHandler constructs LocationHandler.
func NewLocationHandler(facade LocationFacade) *LocationHandler {
	return &LocationHandler{facade: facade}
}

// Suggest handles GET /api/admin/locations/suggest.
func (h *LocationHandler) Suggest(c *gin.Context) {
	var bounds model.LocationBounds
	for key, dst := range map[string]*int{"racks": &bounds.Racks, "shelves": &bounds.Shelves, "bins": &bounds.Bins} {
		n, ok := queryInt(c, key)
		if !ok {
			badRequest(c, key+" must be a non-negative integer")
			return
		}
		*dst = n
	}

	suggestion, err := h.facade.SuggestLocation(c.Request.Context(), bounds)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuggestionResponse{
		Code:      suggestion.Slot.Code(),
		Rack:      suggestion.Slot.Rack,
		Shelf:     suggestion.Slot.Shelf,
		Bin:       suggestion.Slot.Bin,
		Exhausted: suggestion.Exhausted,
	})
}

// Get handles GET /api/admin/locations/:code.
func (h *LocationHandler) Get(c *gin.Context) {
	code := c.Param("code")
	if _, err := model.ParseCode(code); err != nil {
		badRequest(c, err.Error())
		return
	}

	location, err := h.facade.Location(c.Request.Context(), code)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LocationResponse{Code: location.Code, Fields: location.Fields})
}

// Reserve handles POST /api/admin/locations/:code/reserve.
func (h *LocationHandler) Reserve(c *gin.Context) {
	var req dto.ReserveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "malformed body")
			return
		}
	}

	extra := model.Document{}
	if req.Category != "" {
		extra["category"] = req.Category
	}
	if req.ProductName != "" {
		extra["productName"] = req.ProductName
	}
	extra["reservedBy"] = CurrentAdmin(c)

	code := c.Param("code")
	if err := h.facade.ReserveLocation(c.Request.Context(), code, extra); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": code})
}
