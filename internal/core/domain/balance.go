package domain

import "time"

// Balance is the running point total for an account. It is created lazily
// with zero points on first use and only ever mutated by the ledger store's
// credit operation, so it always equals the sum of PointsEarned over the
// account's committed receipts.
type Balance struct {
	AccountID     string    `json:"accountID"`
	TotalPoints   int64     `json:"totalPoints"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
