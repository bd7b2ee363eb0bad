package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/portostore/portostore/app/models"
	"github.com/portostore/portostore/pkg/cache"
	"github.com/portostore/portostore/pkg/event"
	"github.com/portostore/portostore/pkg/logger"
)

// MaxImages is the per-product image cap, enforced server-side.
const MaxImages = 3

// cacheKeyPrefix namespaces every read-view cache entry so a write can
// invalidate all of them at once.
const cacheKeyPrefix = "catalog:"

// Event names fired after a successful write.
const (
	EventProductCreated  = "catalog.product.created"
	EventProductUpdated  = "catalog.product.updated"
	EventCategoryCreated = "catalog.category.created"
)

// StockLine selects one size with a quantity. Lines with negative stock are
// ignored by the writer.
type StockLine struct {
	SizeID uint `json:"size_id"`
	Stock  int  `json:"stock"`
}

// ProductInput is the full field set of the product create/update form.
// BasePrice and DiscountPct are combined into a single effective price at
// write time; the discount is never persisted.
type ProductInput struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	SKUBase           string          `json:"sku_base"`
	CategoryID        *uint           `json:"category_id"`
	MeasurementUnitID *uint           `json:"measurement_unit_id"`
	BasePrice         decimal.Decimal `json:"base_price"`
	DiscountPct       float64         `json:"discount_pct"`
	Stock             []StockLine     `json:"stock"`
	ImageURLs         []string        `json:"image_urls"`
}

// Writer validates and sequences the multi-table writes behind the product
// and category forms. Every multi-step write runs in a single transaction:
// either all rows persist or none do.
type Writer struct {
	db     *gorm.DB
	cache  *cache.Cache
	events *event.Bus
}

// NewWriter builds a Writer. cache and events may be nil.
func NewWriter(db *gorm.DB, c *cache.Cache, bus *event.Bus) *Writer {
	return &Writer{db: db, cache: c, events: bus}
}

func (w *Writer) validate(in *ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if len(in.ImageURLs) > MaxImages {
		return &ValidationError{Field: "image_urls", Reason: "at most 3 images"}
	}
	return nil
}

// CreateProduct inserts the product row plus its owned image, price, and
// stock rows. Sequence inside one transaction:
//
//  1. product row (generated identity)
//  2. image rows, capped at MaxImages, alt text defaulting to the name
//  3. one effective-price row against the first payment type, when a
//     payment vocabulary exists and the effective price is positive
//  4. one stock row per selected size with stock >= 0
//
// Any step failing rolls the whole write back and surfaces a WriteError.
func (w *Writer) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := w.validate(&in); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:              in.Name,
		Description:       in.Description,
		CategoryID:        in.CategoryID,
		MeasurementUnitID: in.MeasurementUnitID,
	}
	if sku := strings.TrimSpace(in.SKUBase); sku != "" {
		product.SKUBase = &sku
	}

	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return &WriteError{Step: "product", Err: err}
		}

		if err := insertImages(tx, product.ID, product.Name, in.ImageURLs); err != nil {
			return err
		}

		if err := writePrice(tx, product.ID, in.BasePrice, in.DiscountPct); err != nil {
			return err
		}

		if err := insertStock(tx, product.ID, in.Stock); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	w.afterWrite(ctx, EventProductCreated, product.ID)
	return &product, nil
}

// UpdateProduct rewrites the product's scalar fields, price, and stock rows
// in one transaction. version must match the currently stored row or the
// update is rejected with ErrVersionConflict — one writer at a time per
// product identity.
//
// Stock rows are diff-and-patched: removed sizes get targeted deletes,
// changed quantities targeted updates, new sizes inserts. No window exists
// in which the product has zero stock rows.
func (w *Writer) UpdateProduct(ctx context.Context, id uint, version uint, in ProductInput) (*models.Product, error) {
	if err := w.validate(&in); err != nil {
		return nil, err
	}

	var product models.Product
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sku *string
		if s := strings.TrimSpace(in.SKUBase); s != "" {
			sku = &s
		}

		res := tx.Model(&models.Product{}).
			Where("product_id = ? AND version = ?", id, version).
			Updates(map[string]interface{}{
				"name":                in.Name,
				"description":         in.Description,
				"sku_base":            sku,
				"category_id":         in.CategoryID,
				"measurement_unit_id": in.MeasurementUnitID,
				"version":             gorm.Expr("version + 1"),
				"updated_at":          time.Now(),
			})
		if res.Error != nil {
			return &WriteError{Step: "product", Err: res.Error}
		}
		if res.RowsAffected == 0 {
			// Distinguish a missing row from a stale version.
			var count int64
			if err := tx.Model(&models.Product{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
				return &WriteError{Step: "product", Err: err}
			}
			if count == 0 {
				return ErrProductNotFound
			}
			return ErrVersionConflict
		}

		if err := upsertPrice(tx, id, in.BasePrice, in.DiscountPct); err != nil {
			return err
		}

		if err := patchStock(tx, id, in.Stock); err != nil {
			return err
		}

		return tx.Preload("Prices").Preload("Sizes").Preload("Images").
			First(&product, "product_id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}

	w.afterWrite(ctx, EventProductUpdated, id)
	return &product, nil
}

// CreateCategory inserts one category row. Name is required.
func (w *Writer) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}

	category := models.Category{Name: name}
	if err := w.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, &WriteError{Step: "category", Err: err}
	}

	w.afterWrite(ctx, EventCategoryCreated, category.ID)
	return &category, nil
}

// ── Transaction steps ────────────────────────────────────────────────────────

func insertImages(tx *gorm.DB, productID uint, altText string, urls []string) error {
	var rows []models.Image
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		rows = append(rows, models.Image{ProductID: productID, URL: u, AltText: altText})
		if len(rows) == MaxImages {
			break
		}
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return &WriteError{Step: "images", Err: err}
	}
	return nil
}

// firstPaymentType returns the lowest-identity payment type, or nil when the
// vocabulary is empty.
func firstPaymentType(tx *gorm.DB) (*models.PaymentType, error) {
	var pt models.PaymentType
	err := tx.Order("payment_type_id asc").First(&pt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pt, nil
}

func writePrice(tx *gorm.DB, productID uint, base decimal.Decimal, discountPct float64) error {
	effective := EffectivePrice(base, discountPct)
	if !effective.IsPositive() {
		return nil
	}

	pt, err := firstPaymentType(tx)
	if err != nil {
		return &WriteError{Step: "price", Err: err}
	}
	if pt == nil {
		return nil
	}

	row := models.ProductPrice{ProductID: productID, PaymentTypeID: pt.ID, Price: effective}
	if err := tx.Create(&row).Error; err != nil {
		return &WriteError{Step: "price", Err: err}
	}
	return nil
}

func upsertPrice(tx *gorm.DB, productID uint, base decimal.Decimal, discountPct float64) error {
	effective := EffectivePrice(base, discountPct)
	if !effective.IsPositive() {
		return nil
	}

	pt, err := firstPaymentType(tx)
	if err != nil {
		return &WriteError{Step: "price", Err: err}
	}
	if pt == nil {
		return nil
	}

	res := tx.Model(&models.ProductPrice{}).
		Where("product_id = ? AND payment_type_id = ?", productID, pt.ID).
		Update("price", effective)
	if res.Error != nil {
		return &WriteError{Step: "price", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		row := models.ProductPrice{ProductID: productID, PaymentTypeID: pt.ID, Price: effective}
		if err := tx.Create(&row).Error; err != nil {
			return &WriteError{Step: "price", Err: err}
		}
	}
	return nil
}

func insertStock(tx *gorm.DB, productID uint, lines []StockLine) error {
	var rows []models.ProductSize
	seen := map[uint]bool{}
	for _, l := range lines {
		if l.Stock < 0 || l.SizeID == 0 || seen[l.SizeID] {
			continue
		}
		seen[l.SizeID] = true
		rows = append(rows, models.ProductSize{ProductID: productID, SizeID: l.SizeID, Stock: l.Stock})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return &WriteError{Step: "stock", Err: err}
	}
	return nil
}

// patchStock reconciles product_sizes with the selected lines: the persisted
// set afterwards equals exactly the selected set, via targeted
// insert/update/delete instead of delete-all-then-reinsert.
func patchStock(tx *gorm.DB, productID uint, lines []StockLine) error {
	var existing []models.ProductSize
	if err := tx.Where("product_id = ?", productID).Find(&existing).Error; err != nil {
		return &WriteError{Step: "stock", Err: err}
	}

	current := make(map[uint]int, len(existing))
	for _, row := range existing {
		current[row.SizeID] = row.Stock
	}

	selected := make(map[uint]int, len(lines))
	for _, l := range lines {
		if l.Stock < 0 || l.SizeID == 0 {
			continue
		}
		selected[l.SizeID] = l.Stock
	}

	var added []models.ProductSize
	for sizeID, stock := range selected {
		have, ok := current[sizeID]
		switch {
		case !ok:
			added = append(added, models.ProductSize{ProductID: productID, SizeID: sizeID, Stock: stock})
		case have != stock:
			res := tx.Model(&models.ProductSize{}).
				Where("product_id = ? AND size_id = ?", productID, sizeID).
				Update("stock", stock)
			if res.Error != nil {
				return &WriteError{Step: "stock", Err: res.Error}
			}
		}
	}

	var removed []uint
	for sizeID := range current {
		if _, ok := selected[sizeID]; !ok {
			removed = append(removed, sizeID)
		}
	}
	if len(removed) > 0 {
		if err := tx.Where("product_id = ? AND size_id IN ?", productID, removed).
			Delete(&models.ProductSize{}).Error; err != nil {
			return &WriteError{Step: "stock", Err: err}
		}
	}

	if len(added) > 0 {
		if err := tx.Create(&added).Error; err != nil {
			return &WriteError{Step: "stock", Err: err}
		}
	}
	return nil
}

// afterWrite invalidates the read-view cache and notifies listeners.
func (w *Writer) afterWrite(ctx context.Context, eventName string, id uint) {
	if err := w.cache.DelPrefix(ctx, cacheKeyPrefix); err != nil {
		logger.WithCtx(ctx).Warn("catalog: cache invalidation failed", "error", err)
	}
	w.events.Fire(eventName, id)
}
