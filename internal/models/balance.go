package models

import "time"

// Balance represents a balance row in the balances table.
type Balance struct {
	AccountID     string    `db:"account_id"`
	TotalPoints   int64     `db:"total_points"`
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
