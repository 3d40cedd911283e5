package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRequest creates a category.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// CategoryResponse describes a category.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductOption is one pack size with its prices.
type ProductOption struct {
	Unit         string          `json:"unit"`
	UnitSize     string          `json:"unitSize,omitempty"`
	Quantity     int             `json:"quantity"`
	MRP          decimal.Decimal `json:"mrp"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	SpecialPrice decimal.Decimal `json:"specialPrice"`
}

// ProductRequest creates a product, optionally reserving a storage slot.
type ProductRequest struct {
	Category      string          `json:"category" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	NameTamil     string          `json:"nameTamil"`
	Description   string          `json:"description"`
	Keywords      []string        `json:"keywords"`
	Options       []ProductOption `json:"options"`
	ImageURLs     []string        `json:"imageUrls"`
	Location      *Slot           `json:"location"`
	AutoLocation  bool            `json:"autoLocation"`
	ShowOfferBand bool            `json:"showOfferBand"`
}

// OfferBandRequest shows or hides the offer band of a product.
type OfferBandRequest struct {
	Show *bool `json:"show" binding:"required"`
}

// OfferMessageRequest creates or edits an offer message. Order is required
// when editing.
type OfferMessageRequest struct {
	Text  string `json:"text" binding:"required"`
	Order *int   `json:"order"`
}

// OfferMessageResponse describes an offer message.
type OfferMessageResponse struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Order     int        `json:"order"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// ProductLocation is the slot stored on a product.
type ProductLocation struct {
	Code  string `json:"code"`
	Rack  int    `json:"rack"`
	Shelf int    `json:"shelf"`
	Bin   int    `json:"bin"`
}

// ProductResponse describes a product.
type ProductResponse struct {
	ID            string           `json:"id"`
	Category      string           `json:"category"`
	ProductNumber int              `json:"productNumber"`
	Path          string           `json:"path"`
	Name          string           `json:"name"`
	NameTamil     string           `json:"nameTamil,omitempty"`
	Description   string           `json:"description,omitempty"`
	Keywords      []string         `json:"keywords,omitempty"`
	Options       []ProductOption  `json:"options,omitempty"`
	ImageURLs     []string         `json:"imageUrls,omitempty"`
	Location      *ProductLocation `json:"location,omitempty"`
	ShowOfferBand bool             `json:"showOfferBand"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// ProductWriteResponse returns a written product with side-effect warnings.
type ProductWriteResponse struct {
	Product  ProductResponse `json:"product"`
	Warnings []Warning       `json:"warnings"`
}
