package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/portostore/portostore/app/models"
	"github.com/portostore/portostore/pkg/metrics"
)

func newTestReader(db *gorm.DB, featured, orders int) *Reader {
	return NewReader(db, nil, time.Second, featured, orders)
}

func createProduct(t *testing.T, db *gorm.DB, name string, categoryID *uint, price *decimal.Decimal) models.Product {
	t.Helper()
	p := models.Product{Name: name, CategoryID: categoryID}
	require.NoError(t, db.Create(&p).Error)

	if price != nil {
		pt := models.PaymentType{Name: "Efectivo " + name}
		require.NoError(t, db.Create(&pt).Error)
		row := models.ProductPrice{ProductID: p.ID, PaymentTypeID: pt.ID, Price: *price}
		require.NoError(t, db.Create(&row).Error)
	}
	return p
}

func TestFeaturedProductsRequirePriceRow(t *testing.T) {
	db := testDB(t)
	price := decimal.NewFromInt(100)
	createProduct(t, db, "Con precio", nil, &price)
	createProduct(t, db, "Sin precio", nil, nil)

	cards, err := newTestReader(db, 4, 50).FeaturedProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Con precio", cards[0].Name)
	assert.True(t, price.Equal(cards[0].Price))
}

func TestFeaturedProductsHonorLimit(t *testing.T) {
	db := testDB(t)
	price := decimal.NewFromInt(10)
	for _, name := range []string{"a", "b", "c"} {
		createProduct(t, db, name, nil, &price)
	}

	cards, err := newTestReader(db, 2, 50).FeaturedProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestProductsByCategoryMatchesCaseInsensitively(t *testing.T) {
	db := testDB(t)
	cat := seedCategory(t, db, "Vestidos")
	price := decimal.NewFromInt(80)
	createProduct(t, db, "Vestido Liso", &cat.ID, &price)

	cards, err := newTestReader(db, 4, 50).ProductsByCategory(context.Background(), "vestidos")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Vestido Liso", cards[0].Name)
}

func TestProductsByCategoryUnknownYieldsEmptyList(t *testing.T) {
	db := testDB(t)

	cards, err := newTestReader(db, 4, 50).ProductsByCategory(context.Background(), "no-such-category")
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestCategoryTilesFallBackToDefaultImage(t *testing.T) {
	db := testDB(t)
	seedCategory(t, db, "Vestidos")
	seedCategory(t, db, "Sombreros")

	tiles, err := newTestReader(db, 4, 50).CategoryTiles(context.Background())
	require.NoError(t, err)
	require.Len(t, tiles, 2)
	assert.Equal(t, categoryImages["Vestidos"], tiles[0].Image)
	assert.Equal(t, fallbackCategoryImage, tiles[1].Image)
}

func TestProductSlugPrefersSKUBase(t *testing.T) {
	db := testDB(t)
	sku := "VES-001"
	p := models.Product{Name: "Vestido", SKUBase: &sku}
	require.NoError(t, db.Create(&p).Error)
	q := models.Product{Name: "Camiseta"}
	require.NoError(t, db.Create(&q).Error)

	assert.Equal(t, "VES-001", p.Slug())
	assert.NotEmpty(t, q.Slug())
	assert.NotEqual(t, "0", q.Slug())
}

func TestOrdersNormalizeDisplayFields(t *testing.T) {
	db := testDB(t)
	pt := seedPaymentType(t, db, "Tarjeta")

	now := time.Now()
	paid := "paid"
	withPayment := models.Sale{
		TotalAmount:   decimal.NewFromInt(300),
		Status:        &paid,
		SaleDate:      &now,
		PaymentTypeID: &pt.ID,
	}
	require.NoError(t, db.Create(&withPayment).Error)
	require.NoError(t, db.Create(&models.PaymentRecord{SaleID: withPayment.ID, RecordStatus: "approved"}).Error)
	require.NoError(t, db.Create(&models.PaymentRecord{SaleID: withPayment.ID, RecordStatus: "settled"}).Error)

	earlier := now.Add(-time.Hour)
	bare := models.Sale{TotalAmount: decimal.NewFromInt(100), SaleDate: &earlier}
	require.NoError(t, db.Create(&bare).Error)

	rows, err := newTestReader(db, 4, 50).Orders(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Newest first.
	assert.Equal(t, withPayment.ID, rows[0].SaleID)
	assert.Equal(t, "paid", rows[0].Status)
	assert.Equal(t, "Tarjeta", rows[0].PaymentName)
	assert.Equal(t, "approved, settled", rows[0].PaymentStatus)

	assert.Equal(t, bare.ID, rows[1].SaleID)
	assert.Equal(t, "-", rows[1].Status)
	assert.Equal(t, "-", rows[1].PaymentName)
	assert.Equal(t, "-", rows[1].PaymentStatus)
}

func TestOrdersHonorLimit(t *testing.T) {
	db := testDB(t)
	base := time.Now()
	for i := 0; i < 3; i++ {
		d := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&models.Sale{TotalAmount: decimal.NewFromInt(int64(i)), SaleDate: &d}).Error)
	}

	rows, err := newTestReader(db, 4, 2).Orders(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestHomeAssemblesBothViews(t *testing.T) {
	db := testDB(t)
	seedCategory(t, db, "Vestidos")
	price := decimal.NewFromInt(120)
	createProduct(t, db, "Vestido", nil, &price)

	view, err := newTestReader(db, 4, 50).Home(context.Background())
	require.NoError(t, err)
	assert.Len(t, view.Featured, 1)
	assert.Len(t, view.Categories, 1)
}

func TestProductForEditNotFound(t *testing.T) {
	db := testDB(t)

	_, err := newTestReader(db, 4, 50).ProductForEdit(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestFeaturedProductsCountCacheMisses(t *testing.T) {
	db := testDB(t)
	price := decimal.NewFromInt(100)
	createProduct(t, db, "Vestido", nil, &price)

	misses := metrics.CacheMisses.WithLabelValues("featured")
	before := testutil.ToFloat64(misses)

	// A nil cache never hits, so every read is a counted miss.
	_, err := newTestReader(db, 4, 50).FeaturedProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(misses))
}

func TestFormVocabulariesFanOut(t *testing.T) {
	db := testDB(t)
	seedCategory(t, db, "Vestidos")
	seedPaymentType(t, db, "Efectivo")
	seedSize(t, db, "M")
	require.NoError(t, db.Create(&models.MeasurementUnit{Name: "Unidad"}).Error)

	vocab, err := newTestReader(db, 4, 50).FormVocabularies(context.Background())
	require.NoError(t, err)
	assert.Len(t, vocab.Categories, 1)
	assert.Len(t, vocab.PaymentTypes, 1)
	assert.Len(t, vocab.Sizes, 1)
	assert.Len(t, vocab.Units, 1)
}
