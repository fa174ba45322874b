package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/snapbill/snapbill_backend/internal/apperrors"
	"github.com/snapbill/snapbill_backend/internal/core/domain"
	"github.com/snapbill/snapbill_backend/internal/dto"
)

// ErrNegativeTotal rejects extractions whose total parses to a negative
// amount. Clamping it to zero instead would silently corrupt the balance
// invariant, so this is the one field error that fails the whole receipt.
var ErrNegativeTotal = fmt.Errorf("%w: receipt total must not be negative", apperrors.ErrValidation)

// ValidateExtraction normalizes the untrusted output of the extraction oracle
// into a well-formed receipt. The oracle is best-effort, so missing or
// malformed fields degrade to documented placeholders rather than failing:
// merchant/date/category get placeholder labels, an unparseable total becomes
// zero, and malformed line items are dropped individually. Only a total that
// parses to a negative number rejects the receipt.
func ValidateExtraction(raw dto.RawExtraction) (*domain.ValidatedReceipt, error) {
	total := decimal.Zero
	if amount, ok := parseAmount(raw.Total); ok {
		if amount.IsNegative() {
			return nil, ErrNegativeTotal
		}
		total = amount
	}

	return &domain.ValidatedReceipt{
		Merchant:  stringOrDefault(raw.RawMerchant, domain.UnknownMerchant),
		DateLabel: stringOrDefault(raw.Date, domain.UnknownDate),
		Total:     total,
		Category:  stringOrDefault(raw.Category, domain.CategoryGeneral),
		Items:     validateItems(raw.Items),
	}, nil
}

// validateItems keeps the well-formed entries of an extracted item list.
// Anything that is not an ordered sequence yields no items; entries whose
// price is missing, unparseable or negative are dropped one by one.
func validateItems(raw any) []domain.ReceiptItem {
	entries, ok := raw.([]any)
	if !ok {
		return nil
	}

	items := make([]domain.ReceiptItem, 0, len(entries))
	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		price, ok := parseAmount(obj["price"])
		if !ok || price.IsNegative() {
			continue
		}
		items = append(items, domain.ReceiptItem{
			Name:  stringOrDefault(obj["name"], domain.UnknownItemName),
			Price: price,
		})
	}
	return items
}

// parseAmount converts an untyped extraction field to a finite decimal.
// It accepts the shapes encoding/json can produce for a number plus numeric
// strings, since the oracle occasionally quotes amounts.
func parseAmount(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// stringOrDefault returns the trimmed string value of an untyped field, or
// fallback when the field is absent, empty or not a string.
func stringOrDefault(v any, fallback string) string {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}
