package dto

import (
	"time"

	"github.com/snapbill/snapbill_backend/internal/core/domain"
)

// BalanceResponse is the API representation of an account's running point total.
type BalanceResponse struct {
	AccountID     string    `json:"accountID"`
	TotalPoints   int64     `json:"totalPoints"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToBalanceResponse converts a domain.Balance to a BalanceResponse DTO
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	return BalanceResponse{
		AccountID:     b.AccountID,
		TotalPoints:   b.TotalPoints,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}
