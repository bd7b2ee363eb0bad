package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an order header. The catalog only reads sales; checkout writes them.
type Sale struct {
	ID            uint            `gorm:"column:sale_id;primaryKey" json:"sale_id"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	Status        *string         `gorm:"size:50" json:"status"`
	SaleDate      *time.Time      `gorm:"column:sale_date;index" json:"sale_date"`
	PaymentTypeID *uint           `gorm:"column:payment_type_id" json:"payment_type_id"`

	PaymentType    *PaymentType    `gorm:"foreignKey:PaymentTypeID" json:"payment_type,omitempty"`
	PaymentRecords []PaymentRecord `gorm:"foreignKey:SaleID" json:"payment_records,omitempty"`
}

func (Sale) TableName() string { return "sales" }

// PaymentRecord tracks the processing state of a payment against a sale.
type PaymentRecord struct {
	ID           uint      `gorm:"column:payment_record_id;primaryKey" json:"payment_record_id"`
	SaleID       uint      `gorm:"column:sale_id;not null;index" json:"sale_id"`
	RecordStatus string    `gorm:"column:record_status;size:50;not null" json:"record_status"`
	CreatedAt    time.Time `json:"created_at"`
}

func (PaymentRecord) TableName() string { return "payment_records" }
