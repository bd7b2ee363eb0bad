package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/portostore/portostore/app/catalog"
	"github.com/portostore/portostore/app/models"
)

func init() {
	Register("sizes", SeedSizes)
	Register("payment_types", SeedPaymentTypes)
	Register("measurement_units", SeedMeasurementUnits)
}

// SeedSizes inserts the canonical size vocabulary. Re-running is a no-op;
// the unique constraint on the lowercased name absorbs races between
// replicas seeding at the same time.
func SeedSizes(db *gorm.DB) error {
	_, err := catalog.EnsureSizes(context.Background(), db)
	return err
}

// SeedPaymentTypes inserts the default payment vocabulary when empty. The
// first row doubles as the payment type product prices are written against.
func SeedPaymentTypes(db *gorm.DB) error {
	return seedIfEmpty(db, &models.PaymentType{}, []models.PaymentType{
		{Name: "Efectivo"},
		{Name: "Tarjeta"},
		{Name: "Transferencia"},
	})
}

// SeedMeasurementUnits inserts the default unit vocabulary when empty.
func SeedMeasurementUnits(db *gorm.DB) error {
	return seedIfEmpty(db, &models.MeasurementUnit{}, []models.MeasurementUnit{
		{Name: "Unidad"},
		{Name: "Par"},
	})
}

func seedIfEmpty[T any](db *gorm.DB, model *T, rows []T) error {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&rows).Error
}
