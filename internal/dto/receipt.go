package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/snapbill/snapbill_backend/internal/core/domain"
)

// RawExtraction is the untrusted output of the extraction oracle. Every field
// is `any` on purpose: the oracle is best-effort and may omit fields or return
// them with the wrong shape, and decoding must never fail because of that.
// The validator is the only consumer.
type RawExtraction struct {
	RawMerchant any `json:"rawMerchant"`
	Date        any `json:"date"`
	Total       any `json:"total"`
	Category    any `json:"category"`
	Items       any `json:"items"`
}

// ReceiptItemResponse is a single line item in API responses.
type ReceiptItemResponse struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ReceiptResponse is the API representation of a committed receipt record.
type ReceiptResponse struct {
	ReceiptID    int64                 `json:"receiptID"`
	AccountID    string                `json:"accountID"`
	Merchant     string                `json:"merchant"`
	Date         string                `json:"date"`
	Total        decimal.Decimal       `json:"total"`
	Category     string                `json:"category"`
	PointsEarned int64                 `json:"pointsEarned"`
	CreatedAt    time.Time             `json:"createdAt"`
	Items        []ReceiptItemResponse `json:"items,omitempty"`
}

// IntakeResult combines the stored receipt with its reward outcome.
type IntakeResult struct {
	Receipt      ReceiptResponse `json:"receipt"`
	PointsEarned int64           `json:"pointsEarned"`
	Explanation  string          `json:"rewardLogic"`
}

// HistoryResult is the outcome of a history query. TotalCount is the
// unfiltered number of receipts for the account, so callers can tell an empty
// ledger apart from a filter that matched nothing.
type HistoryResult struct {
	History    []ReceiptResponse `json:"history"`
	TotalCount int64             `json:"totalCount"`
}

// ToReceiptResponse converts a domain.ReceiptRecord to a ReceiptResponse DTO
func ToReceiptResponse(r *domain.ReceiptRecord) ReceiptResponse {
	resp := ReceiptResponse{
		ReceiptID:    r.ReceiptID,
		AccountID:    r.AccountID,
		Merchant:     r.Merchant,
		Date:         r.DateLabel,
		Total:        r.Total,
		Category:     r.Category,
		PointsEarned: r.PointsEarned,
		CreatedAt:    r.CreatedAt,
	}
	if len(r.Items) > 0 {
		resp.Items = make([]ReceiptItemResponse, len(r.Items))
		for i, item := range r.Items {
			resp.Items[i] = ReceiptItemResponse{Name: item.Name, Price: item.Price}
		}
	}
	return resp
}

// ToReceiptResponseSlice converts a slice of domain.ReceiptRecord to DTOs
func ToReceiptResponseSlice(rs []domain.ReceiptRecord) []ReceiptResponse {
	resps := make([]ReceiptResponse, len(rs))
	for i := range rs {
		resps[i] = ToReceiptResponse(&rs[i])
	}
	return resps
}
