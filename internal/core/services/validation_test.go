package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapbill/snapbill_backend/internal/apperrors"
	"github.com/snapbill/snapbill_backend/internal/core/domain"
	"github.com/snapbill/snapbill_backend/internal/core/services"
	"github.com/snapbill/snapbill_backend/internal/dto"
)

func TestValidateExtraction_WellFormed(t *testing.T) {
	raw := dto.RawExtraction{
		RawMerchant: "Fresh Mart",
		Date:        "2025-11-02",
		Total:       float64(834.50),
		Category:    domain.CategoryGrocery,
		Items: []any{
			map[string]any{"name": "Milk", "price": float64(60)},
			map[string]any{"name": "Bread", "price": float64(45.5)},
		},
	}

	receipt, err := services.ValidateExtraction(raw)
	require.NoError(t, err)

	assert.Equal(t, "Fresh Mart", receipt.Merchant)
	assert.Equal(t, "2025-11-02", receipt.DateLabel)
	assert.True(t, receipt.Total.Equal(decimal.NewFromFloat(834.50)))
	assert.Equal(t, domain.CategoryGrocery, receipt.Category)
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, "Milk", receipt.Items[0].Name)
	assert.True(t, receipt.Items[1].Price.Equal(decimal.NewFromFloat(45.5)))
}

func TestValidateExtraction_DefaultsForMissingFields(t *testing.T) {
	receipt, err := services.ValidateExtraction(dto.RawExtraction{})
	require.NoError(t, err)

	assert.Equal(t, domain.UnknownMerchant, receipt.Merchant)
	assert.Equal(t, domain.UnknownDate, receipt.DateLabel)
	assert.Equal(t, domain.CategoryGeneral, receipt.Category)
	assert.True(t, receipt.Total.IsZero())
	assert.Empty(t, receipt.Items)
}

func TestValidateExtraction_TotalParsing(t *testing.T) {
	tests := []struct {
		name      string
		total     any
		wantTotal decimal.Decimal
		wantErr   error
	}{
		{name: "number", total: float64(120.5), wantTotal: decimal.NewFromFloat(120.5)},
		{name: "quoted number", total: "99.99", wantTotal: decimal.NewFromFloat(99.99)},
		{name: "quoted number with spaces", total: "  42 ", wantTotal: decimal.NewFromInt(42)},
		{name: "absent defaults to zero", total: nil, wantTotal: decimal.Zero},
		{name: "garbage string defaults to zero", total: "about twelve", wantTotal: decimal.Zero},
		{name: "wrong shape defaults to zero", total: map[string]any{"value": 12}, wantTotal: decimal.Zero},
		{name: "negative number is rejected", total: float64(-5), wantErr: services.ErrNegativeTotal},
		{name: "negative quoted number is rejected", total: "-0.01", wantErr: services.ErrNegativeTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receipt, err := services.ValidateExtraction(dto.RawExtraction{Total: tt.total})
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Nil(t, receipt)
				return
			}
			require.NoError(t, err)
			assert.True(t, receipt.Total.Equal(tt.wantTotal), "got %s want %s", receipt.Total, tt.wantTotal)
		})
	}
}

func TestValidateExtraction_MalformedItemsDroppedIndividually(t *testing.T) {
	raw := dto.RawExtraction{
		Total: float64(100),
		Items: []any{
			map[string]any{"name": "Kept", "price": float64(10)},
			map[string]any{"name": "No price"},
			map[string]any{"name": "Bad price", "price": "not a number"},
			map[string]any{"name": "Negative", "price": float64(-3)},
			"not an object",
			map[string]any{"price": float64(5)}, // nameless entries keep a placeholder name
		},
	}

	receipt, err := services.ValidateExtraction(raw)
	require.NoError(t, err)

	require.Len(t, receipt.Items, 2)
	assert.Equal(t, "Kept", receipt.Items[0].Name)
	assert.Equal(t, domain.UnknownItemName, receipt.Items[1].Name)
	assert.True(t, receipt.Items[1].Price.Equal(decimal.NewFromInt(5)))
}

func TestValidateExtraction_ItemsWrongShape(t *testing.T) {
	for _, items := range []any{"items", float64(3), map[string]any{"name": "x"}} {
		receipt, err := services.ValidateExtraction(dto.RawExtraction{Items: items})
		require.NoError(t, err)
		assert.Empty(t, receipt.Items)
	}
}

func TestValidateExtraction_NonStringFieldsFallBack(t *testing.T) {
	raw := dto.RawExtraction{
		RawMerchant: float64(42),
		Date:        []any{"2025"},
		Category:    map[string]any{},
	}

	receipt, err := services.ValidateExtraction(raw)
	require.NoError(t, err)

	assert.Equal(t, domain.UnknownMerchant, receipt.Merchant)
	assert.Equal(t, domain.UnknownDate, receipt.DateLabel)
	assert.Equal(t, domain.CategoryGeneral, receipt.Category)
}
