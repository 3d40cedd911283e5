package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products.
type Category struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	CreatedAt   time.Time
}

// ProductOption is one purchasable pack size of a product.
type ProductOption struct {
	Unit         string `validate:"required,max=32"`
	UnitSize     string `validate:"max=32"`
	Quantity     int    `validate:"gte=0"`
	MRP          decimal.Decimal
	SellingPrice decimal.Decimal
	SpecialPrice decimal.Decimal
}

// ProductLocation mirrors the reserved slot of a product.
type ProductLocation struct {
	Code  string
	Rack  int
	Shelf int
	Bin   int
}

// NewProductLocation builds the product-side copy of a slot.
func NewProductLocation(slot Slot) *ProductLocation {
	return &ProductLocation{Code: slot.Code(), Rack: slot.Rack, Shelf: slot.Shelf, Bin: slot.Bin}
}

// Slot returns the coordinates.
func (l ProductLocation) Slot() Slot {
	return Slot{Rack: l.Rack, Shelf: l.Shelf, Bin: l.Bin}
}

// Product is a catalog item stored under its category.
type Product struct {
	ID            string
	Category      string
	ProductNumber int
	Name          string
	NameTamil     string
	Description   string
	Keywords      []string
	Options       []ProductOption
	ImageURLs     []string
	Location      *ProductLocation
	ShowOfferBand bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Path is the document path of the product.
func (p Product) Path() string {
	return fmt.Sprintf("products/%s/items/%s", p.Category, p.ID)
}

// ProductInput carries the fields of a new product.
type ProductInput struct {
	Category      string          `validate:"required"`
	Name          string          `validate:"required,max=200"`
	NameTamil     string          `validate:"max=200"`
	Description   string          `validate:"max=4000"`
	Keywords      []string        `validate:"max=50,dive,max=64"`
	Options       []ProductOption `validate:"dive"`
	ImageURLs     []string        `validate:"max=10,dive,url"`
	Slot          *Slot
	AutoLocation  bool
	ShowOfferBand bool
}

// OfferMessage is one line of the storefront offer ticker, shown in
// ascending Position.
type OfferMessage struct {
	ID        string
	Text      string
	Position  int
	CreatedAt time.Time
}
