package models

import (
	"time"
)

const (
	DescriptionMinLength = 5
	DescriptionMaxLength = 100
)

// Transaction is a single income or expense event owned by one user
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Category    Category        `gorm:"size:20;not null" json:"category"`
	Type        TransactionType `gorm:"size:10;not null" json:"type"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Description string          `gorm:"size:100" json:"description"`
	Date        Date            `gorm:"not null" json:"date"`
	OwnerID     uint            `gorm:"index;not null" json:"owner_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
