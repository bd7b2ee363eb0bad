package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/portostore/portostore/app/models"
)

// testDB opens a fresh in-memory SQLite database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.MeasurementUnit{},
		&models.PaymentType{},
		&models.Size{},
		&models.Product{},
		&models.Image{},
		&models.ProductPrice{},
		&models.ProductSize{},
		&models.Sale{},
		&models.PaymentRecord{},
	))

	return db
}

func seedPaymentType(t *testing.T, db *gorm.DB, name string) models.PaymentType {
	t.Helper()
	pt := models.PaymentType{Name: name}
	require.NoError(t, db.Create(&pt).Error)
	return pt
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedSize(t *testing.T, db *gorm.DB, name string) models.Size {
	t.Helper()
	s := models.Size{Name: name}
	require.NoError(t, db.Create(&s).Error)
	return s
}
