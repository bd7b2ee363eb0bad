package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/portostore/portostore/app/models"
	"github.com/portostore/portostore/pkg/cache"
	"github.com/portostore/portostore/pkg/metrics"
)

// ProductCard is the resolved storefront shape: slug (SKU base or identity),
// name, first price, first image URL or empty.
type ProductCard struct {
	Slug  string          `json:"slug"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// CategoryTile is a category name decorated with a display image.
type CategoryTile struct {
	Title string `json:"title"`
	Image string `json:"image"`
}

// HomeView is the storefront landing payload.
type HomeView struct {
	Featured   []ProductCard  `json:"featured"`
	Categories []CategoryTile `json:"categories"`
}

// OrderRow is one admin order listing line. PaymentName and PaymentStatus
// are normalized display strings: "-" when absent, comma-joined when the
// join yields several related rows.
type OrderRow struct {
	SaleID        uint            `json:"sale_id"`
	SaleDate      *time.Time      `json:"sale_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	PaymentName   string          `json:"payment_name"`
	PaymentStatus string          `json:"payment_status"`
}

// AdminProductRow is one admin product listing line.
type AdminProductRow struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	SKUBase   string    `json:"sku_base"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// FormVocab carries the reference vocabularies the product form needs.
type FormVocab struct {
	Categories   []models.Category        `json:"categories"`
	Units        []models.MeasurementUnit `json:"measurement_units"`
	PaymentTypes []models.PaymentType     `json:"payment_types"`
	Sizes        []models.Size            `json:"sizes"`
}

// categoryImages maps well-known category names to their storefront tile
// image. Unmapped names fall back to fallbackCategoryImage.
var categoryImages = map[string]string{
	"Vestidos":   "https://cdn.portostore.dev/tiles/vestidos.jpg",
	"Camisetas":  "https://cdn.portostore.dev/tiles/camisetas.jpg",
	"Accesorios": "https://cdn.portostore.dev/tiles/accesorios.jpg",
}

const fallbackCategoryImage = "https://cdn.portostore.dev/tiles/default.jpg"

// Reader assembles the denormalized read views. Results are served from a
// short-lived cache when available; the writer invalidates it on every
// successful write.
type Reader struct {
	db            *gorm.DB
	cache         *cache.Cache
	cacheTTL      time.Duration
	featuredLimit int
	ordersLimit   int
}

// NewReader builds a Reader. cache may be nil.
func NewReader(db *gorm.DB, c *cache.Cache, cacheTTL time.Duration, featuredLimit, ordersLimit int) *Reader {
	if featuredLimit <= 0 {
		featuredLimit = 4
	}
	if ordersLimit <= 0 {
		ordersLimit = 50
	}
	return &Reader{db: db, cache: c, cacheTTL: cacheTTL, featuredLimit: featuredLimit, ordersLimit: ordersLimit}
}

// FeaturedProducts lists up to the configured limit of products that carry
// at least one price row.
func (r *Reader) FeaturedProducts(ctx context.Context) ([]ProductCard, error) {
	key := cacheKeyPrefix + "featured"
	var cards []ProductCard
	if r.cache.Get(ctx, key, &cards) {
		metrics.CacheHits.WithLabelValues("featured").Inc()
		return cards, nil
	}
	metrics.CacheMisses.WithLabelValues("featured").Inc()

	var products []models.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN product_prices ON product_prices.product_id = products.product_id").
		Preload("Prices").
		Preload("Images").
		Distinct("products.*").
		Limit(r.featuredLimit).
		Find(&products).Error
	if err != nil {
		return nil, &ReadError{View: "featured", Err: err}
	}

	cards = toCards(products)
	_ = r.cache.Set(ctx, key, cards, r.cacheTTL)
	return cards, nil
}

// ProductsByCategory lists the products of the category whose name matches
// (case-insensitively). An unknown or empty category yields an empty list,
// never an error.
func (r *Reader) ProductsByCategory(ctx context.Context, name string) ([]ProductCard, error) {
	name = strings.TrimSpace(name)
	key := cacheKeyPrefix + "category:" + strings.ToLower(name)
	var cards []ProductCard
	if r.cache.Get(ctx, key, &cards) {
		metrics.CacheHits.WithLabelValues("category").Inc()
		return cards, nil
	}
	metrics.CacheMisses.WithLabelValues("category").Inc()

	var products []models.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN categories ON categories.category_id = products.category_id").
		Where("LOWER(categories.name) = LOWER(?)", name).
		Preload("Prices").
		Preload("Images").
		Find(&products).Error
	if err != nil {
		return nil, &ReadError{View: "category", Err: err}
	}

	cards = toCards(products)
	_ = r.cache.Set(ctx, key, cards, r.cacheTTL)
	return cards, nil
}

// CategoryTiles lists every category name with its display image.
func (r *Reader) CategoryTiles(ctx context.Context) ([]CategoryTile, error) {
	key := cacheKeyPrefix + "tiles"
	var tiles []CategoryTile
	if r.cache.Get(ctx, key, &tiles) {
		metrics.CacheHits.WithLabelValues("tiles").Inc()
		return tiles, nil
	}
	metrics.CacheMisses.WithLabelValues("tiles").Inc()

	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("category_id asc").Find(&categories).Error; err != nil {
		return nil, &ReadError{View: "tiles", Err: err}
	}

	tiles = make([]CategoryTile, 0, len(categories))
	for _, c := range categories {
		image, ok := categoryImages[c.Name]
		if !ok {
			image = fallbackCategoryImage
		}
		tiles = append(tiles, CategoryTile{Title: c.Name, Image: image})
	}

	_ = r.cache.Set(ctx, key, tiles, r.cacheTTL)
	return tiles, nil
}

// Home fans out the featured and tile lookups concurrently; the two views
// are independent.
func (r *Reader) Home(ctx context.Context) (*HomeView, error) {
	var view HomeView
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cards, err := r.FeaturedProducts(ctx)
		if err != nil {
			return err
		}
		view.Featured = cards
		return nil
	})
	g.Go(func() error {
		tiles, err := r.CategoryTiles(ctx)
		if err != nil {
			return err
		}
		view.Categories = tiles
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &view, nil
}

// Orders lists sales newest-first, capped at the configured limit, with the
// payment type name and payment record statuses resolved for display.
func (r *Reader) Orders(ctx context.Context) ([]OrderRow, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Preload("PaymentType").
		Preload("PaymentRecords").
		Order("sale_date desc").
		Limit(r.ordersLimit).
		Find(&sales).Error
	if err != nil {
		return nil, &ReadError{View: "orders", Err: err}
	}

	rows := make([]OrderRow, 0, len(sales))
	for _, s := range sales {
		row := OrderRow{
			SaleID:        s.ID,
			SaleDate:      s.SaleDate,
			TotalAmount:   s.TotalAmount,
			Status:        "-",
			PaymentName:   "-",
			PaymentStatus: "-",
		}
		if s.Status != nil && *s.Status != "" {
			row.Status = *s.Status
		}
		if s.PaymentType != nil {
			row.PaymentName = s.PaymentType.Name
		}
		if len(s.PaymentRecords) > 0 {
			statuses := make([]string, 0, len(s.PaymentRecords))
			for _, rec := range s.PaymentRecords {
				statuses = append(statuses, rec.RecordStatus)
			}
			row.PaymentStatus = strings.Join(statuses, ", ")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AdminProducts lists all products newest-first with their category name.
func (r *Reader) AdminProducts(ctx context.Context) ([]AdminProductRow, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("created_at desc").
		Find(&products).Error
	if err != nil {
		return nil, &ReadError{View: "admin_products", Err: err}
	}

	rows := make([]AdminProductRow, 0, len(products))
	for _, p := range products {
		row := AdminProductRow{ProductID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
		if p.SKUBase != nil {
			row.SKUBase = *p.SKUBase
		}
		if p.Category != nil {
			row.Category = p.Category.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AdminCategories lists every category in identity order.
func (r *Reader) AdminCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("category_id asc").Find(&categories).Error; err != nil {
		return nil, &ReadError{View: "admin_categories", Err: err}
	}
	return categories, nil
}

// ProductForEdit loads one product with its owned rows for the edit form.
func (r *Reader) ProductForEdit(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Prices").
		Preload("Sizes").
		Preload("Images").
		First(&product, "product_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, &ReadError{View: "product_edit", Err: err}
	}
	return &product, nil
}

// FormVocabularies fans out the four reference lookups the product form
// needs, mirroring the form's parallel fetch.
func (r *Reader) FormVocabularies(ctx context.Context) (*FormVocab, error) {
	var vocab FormVocab
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.db.WithContext(ctx).Order("category_id asc").Find(&vocab.Categories).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Order("measurement_unit_id asc").Find(&vocab.Units).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Order("payment_type_id asc").Find(&vocab.PaymentTypes).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Order("size_id asc").Find(&vocab.Sizes).Error
	})

	if err := g.Wait(); err != nil {
		return nil, &ReadError{View: "form_vocab", Err: err}
	}
	return &vocab, nil
}

func toCards(products []models.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		card := ProductCard{Slug: p.Slug(), Name: p.Name}
		if len(p.Prices) > 0 {
			card.Price = p.Prices[0].Price
		}
		if len(p.Images) > 0 {
			card.Image = p.Images[0].URL
		}
		cards = append(cards, card)
	}
	return cards
}
