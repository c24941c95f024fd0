package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:char(36);not null;index" json:"invoice_id"`
	Description string          `gorm:"type:text" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName overrides the table name
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
