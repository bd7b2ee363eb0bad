package migrations

import (
	"gorm.io/gorm"

	"github.com/portostore/portostore/app/models"
	"github.com/portostore/portostore/pkg/migration"
)

func init() {
	migration.Register("20260201000000_create_vocabulary_tables", &CreateVocabularyTables{})
	migration.Register("20260201000001_create_product_tables", &CreateProductTables{})
	migration.Register("20260201000002_create_sales_tables", &CreateSalesTables{})
}

// -------- 0001: reference vocabularies --------

type CreateVocabularyTables struct{}

func (m *CreateVocabularyTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.MeasurementUnit{},
		&models.PaymentType{},
		&models.Size{},
	)
}

func (m *CreateVocabularyTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(
		"sizes", "payment_types", "measurement_units", "categories",
	)
}

// -------- 0002: products and owned rows --------

type CreateProductTables struct{}

func (m *CreateProductTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.Image{},
		&models.ProductPrice{},
		&models.ProductSize{},
	)
}

func (m *CreateProductTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(
		"product_sizes", "product_prices", "images", "products",
	)
}

// -------- 0003: sales --------

type CreateSalesTables struct{}

func (m *CreateSalesTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Sale{},
		&models.PaymentRecord{},
	)
}

func (m *CreateSalesTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("payment_records", "sales")
}
