package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category labels the extraction oracle is asked to produce. The set is
// open-ended: any other label falls into the base reward tier.
const (
	CategoryGrocery      = "Supermarket / Grocery"
	CategoryFoodBeverage = "Food & Beverage"
	CategoryGeneral      = "General"
)

// Placeholder values applied when the extraction oracle left a field blank.
const (
	UnknownMerchant = "Unknown Merchant"
	UnknownDate     = "Unknown Date"
	UnknownItemName = "Item"
)

// ReceiptItem is a single extracted line item on a receipt.
type ReceiptItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ValidatedReceipt is the normalized form of an extraction oracle result.
// Every field is well-formed: Total is finite and non-negative, string fields
// carry placeholder values instead of being empty.
type ValidatedReceipt struct {
	Merchant  string          `json:"merchant"`
	DateLabel string          `json:"date"` // Opaque label from the oracle, not necessarily parseable
	Total     decimal.Decimal `json:"total"`
	Category  string          `json:"category"`
	Items     []ReceiptItem   `json:"items"`
}

// ReceiptRecord is a committed receipt with the points it earned.
// Immutable after creation; owned by the ledger store.
type ReceiptRecord struct {
	ReceiptID    int64           `json:"receiptID"` // Store-assigned, monotonically increasing
	AccountID    string          `json:"accountID"`
	Merchant     string          `json:"merchant"`
	DateLabel    string          `json:"date"`
	Total        decimal.Decimal `json:"total"`
	Category     string          `json:"category"`
	PointsEarned int64           `json:"pointsEarned"`
	CreatedAt    time.Time       `json:"createdAt"`
	Items        []ReceiptItem   `json:"items,omitempty"`
}
