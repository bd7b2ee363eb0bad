package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the aggregate root of the catalog. Price, stock, and image rows
// belong to it and are written in the same transaction.
type Product struct {
	ID                uint      `gorm:"column:product_id;primaryKey" json:"product_id"`
	Name              string    `gorm:"size:255;not null;index" json:"name"`
	Description       string    `gorm:"type:text" json:"description"`
	SKUBase           *string   `gorm:"column:sku_base;size:100" json:"sku_base"`
	CategoryID        *uint     `gorm:"column:category_id;index" json:"category_id"`
	MeasurementUnitID *uint     `gorm:"column:measurement_unit_id" json:"measurement_unit_id"`
	Version           uint      `gorm:"not null;default:0" json:"version"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Prices   []ProductPrice `gorm:"foreignKey:ProductID" json:"prices,omitempty"`
	Sizes    []ProductSize  `gorm:"foreignKey:ProductID" json:"sizes,omitempty"`
	Images   []Image        `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

func (Product) TableName() string { return "products" }

// Slug returns the storefront identifier: SKU base when present, otherwise
// the numeric identity.
func (p Product) Slug() string {
	if p.SKUBase != nil && *p.SKUBase != "" {
		return *p.SKUBase
	}
	return strconv.FormatUint(uint64(p.ID), 10)
}

// Category is a flat vocabulary, no hierarchy.
type Category struct {
	ID   uint   `gorm:"column:category_id;primaryKey" json:"category_id"`
	Name string `gorm:"size:255;not null" json:"name"`
}

func (Category) TableName() string { return "categories" }

// Size is drawn from the canonical vocabulary. NameKey is the lowercased name
// and carries the uniqueness constraint, so bootstrap inserts can rely on
// ON CONFLICT DO NOTHING regardless of casing.
type Size struct {
	ID      uint   `gorm:"column:size_id;primaryKey" json:"size_id"`
	Name    string `gorm:"size:50;not null" json:"name"`
	NameKey string `gorm:"column:name_key;size:50;not null;uniqueIndex" json:"-"`
}

func (Size) TableName() string { return "sizes" }

func (s *Size) BeforeSave(*gorm.DB) error {
	s.NameKey = strings.ToLower(strings.TrimSpace(s.Name))
	return nil
}

// ProductSize is one stock line: at most one row per (product, size).
type ProductSize struct {
	ProductID uint `gorm:"column:product_id;primaryKey;autoIncrement:false" json:"product_id"`
	SizeID    uint `gorm:"column:size_id;primaryKey;autoIncrement:false" json:"size_id"`
	Stock     int  `gorm:"not null;default:0" json:"stock"`

	Size *Size `gorm:"foreignKey:SizeID" json:"size,omitempty"`
}

func (ProductSize) TableName() string { return "product_sizes" }

// ProductPrice stores the effective price for one payment type. Only the
// discounted value is persisted, never the discount itself.
type ProductPrice struct {
	ProductID     uint            `gorm:"column:product_id;primaryKey;autoIncrement:false" json:"product_id"`
	PaymentTypeID uint            `gorm:"column:payment_type_id;primaryKey;autoIncrement:false" json:"payment_type_id"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (ProductPrice) TableName() string { return "product_prices" }

// Image links a product to a hosted image URL. At most three per product,
// enforced by the writer.
type Image struct {
	ID        uint   `gorm:"column:image_id;primaryKey" json:"image_id"`
	ProductID uint   `gorm:"column:product_id;not null;index" json:"product_id"`
	URL       string `gorm:"size:1024;not null" json:"url"`
	AltText   string `gorm:"column:alt_text;size:255" json:"alt_text"`
}

func (Image) TableName() string { return "images" }

// PaymentType is a read-only reference vocabulary from the catalog's view.
type PaymentType struct {
	ID   uint   `gorm:"column:payment_type_id;primaryKey" json:"payment_type_id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (PaymentType) TableName() string { return "payment_types" }

// MeasurementUnit is a read-only reference vocabulary.
type MeasurementUnit struct {
	ID   uint   `gorm:"column:measurement_unit_id;primaryKey" json:"measurement_unit_id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (MeasurementUnit) TableName() string { return "measurement_units" }
