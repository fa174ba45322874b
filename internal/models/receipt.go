package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt represents a receipt row in the receipts table.
type Receipt struct {
	ReceiptID    int64           `db:"receipt_id"`
	AccountID    string          `db:"account_id"`
	Merchant     string          `db:"merchant"`
	ReceiptDate  string          `db:"receipt_date"` // Opaque date label from extraction
	Total        decimal.Decimal `db:"total"`
	Category     string          `db:"category"`
	PointsEarned int64           `db:"points_earned"`
	CreatedAt    time.Time       `db:"created_at"`
}

// ReceiptItem represents a line item row in the receipt_items table.
type ReceiptItem struct {
	ItemID    int64           `db:"item_id"`
	ReceiptID int64           `db:"receipt_id"`
	Position  int             `db:"position"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
}
