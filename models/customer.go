package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID                 uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	Email              *string   `gorm:"size:255" json:"email"`
	Phone              *string   `gorm:"size:50" json:"phone"`
	Address            *string   `gorm:"type:text" json:"address"`
	Notes              *string   `gorm:"type:text" json:"notes"`
	ExternalCustomerID string    `gorm:"size:255" json:"external_customer_id"`
	Invoices           []Invoice `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"invoices,omitempty"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName overrides the table name
func (Customer) TableName() string {
	return "customers"
}
