package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/snapbill/snapbill_backend/internal/apperrors"
	"github.com/snapbill/snapbill_backend/internal/core/domain"
	portsrepo "github.com/snapbill/snapbill_backend/internal/core/ports/repositories"
	"github.com/snapbill/snapbill_backend/internal/models"
	"github.com/snapbill/snapbill_backend/internal/utils/mapping"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// NewLedgerRepository creates a new repository for balance and receipt data.
func NewLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// CreditReceipt inserts the receipt with its line items and increments the
// account balance by points inside a single DB transaction. The balance row
// is locked FOR UPDATE, so concurrent credits for the same account serialize
// and no increment is ever lost.
func (r *PgxLedgerRepository) CreditReceipt(ctx context.Context, accountID string, receipt domain.ValidatedReceipt, points int64) (*domain.ReceiptRecord, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Will be ignored if the transaction is committed successfully
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()

	// 1. Lazily create the balance row for first-time accounts
	ensureQuery := `
		INSERT INTO balances (account_id, total_points, created_at, last_updated_at)
		VALUES ($1, 0, $2, $2)
		ON CONFLICT (account_id) DO NOTHING;
	`
	if _, err := tx.Exec(ctx, ensureQuery, accountID, now); err != nil {
		return nil, fmt.Errorf("failed to ensure balance row for account %s: %w", accountID, err)
	}

	// 2. Lock the balance row and read the current total
	var currentPoints int64
	lockQuery := `SELECT total_points FROM balances WHERE account_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, accountID).Scan(&currentPoints); err != nil {
		return nil, fmt.Errorf("failed to lock balance for account %s: %w", accountID, err)
	}

	// 3. Insert the receipt record
	var receiptID int64
	receiptQuery := `
		INSERT INTO receipts (account_id, merchant, receipt_date, total, category, points_earned, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING receipt_id;
	`
	err = tx.QueryRow(ctx, receiptQuery,
		accountID,
		receipt.Merchant,
		receipt.DateLabel,
		receipt.Total,
		receipt.Category,
		points,
		now,
	).Scan(&receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert receipt for account %s: %w", accountID, err)
	}

	// 4. Insert line items as a batch
	if len(receipt.Items) > 0 {
		batch := &pgx.Batch{}
		itemQuery := `
			INSERT INTO receipt_items (receipt_id, position, name, price)
			VALUES ($1, $2, $3, $4);
		`
		for i, item := range receipt.Items {
			batch.Queue(itemQuery, receiptID, i, item.Name, item.Price)
		}
		br := tx.SendBatch(ctx, batch)
		// Close the batch results to surface errors from each command
		if err := br.Close(); err != nil {
			return nil, fmt.Errorf("failed to insert line items for receipt %d: %w", receiptID, err)
		}
	}

	// 5. Apply the balance increment
	updateQuery := `
		UPDATE balances
		SET total_points = $2,
		    last_updated_at = $3
		WHERE account_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, accountID, currentPoints+points, now); err != nil {
		return nil, fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &domain.ReceiptRecord{
		ReceiptID:    receiptID,
		AccountID:    accountID,
		Merchant:     receipt.Merchant,
		DateLabel:    receipt.DateLabel,
		Total:        receipt.Total,
		Category:     receipt.Category,
		PointsEarned: points,
		CreatedAt:    now,
		Items:        receipt.Items,
	}, nil
}

// FindBalance retrieves the running balance for an account. A missing row is
// reported as a zero balance, matching the lazy-create semantics of
// CreditReceipt.
func (r *PgxLedgerRepository) FindBalance(ctx context.Context, accountID string) (*domain.Balance, error) {
	query := `
		SELECT account_id, total_points, created_at, last_updated_at
		FROM balances
		WHERE account_id = $1;
	`
	var m models.Balance
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&m.AccountID,
		&m.TotalPoints,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.Balance{AccountID: accountID}, nil
		}
		return nil, fmt.Errorf("failed to find balance for account %s: %w", accountID, err)
	}

	balance := mapping.ToDomainBalance(m)
	return &balance, nil
}

// ListReceipts retrieves every receipt for an account, newest first. Line
// items are not loaded here; FindReceiptByID returns them for a single record.
func (r *PgxLedgerRepository) ListReceipts(ctx context.Context, accountID string) ([]domain.ReceiptRecord, error) {
	query := `
		SELECT receipt_id, account_id, merchant, receipt_date, total, category, points_earned, created_at
		FROM receipts
		WHERE account_id = $1
		ORDER BY created_at DESC, receipt_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts for account %s: %w", accountID, err)
	}
	defer rows.Close()

	receipts := []models.Receipt{}
	for rows.Next() {
		var m models.Receipt
		if err := rows.Scan(
			&m.ReceiptID,
			&m.AccountID,
			&m.Merchant,
			&m.ReceiptDate,
			&m.Total,
			&m.Category,
			&m.PointsEarned,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan receipt row for account %s: %w", accountID, err)
		}
		receipts = append(receipts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating receipt rows for account %s: %w", accountID, err)
	}

	return mapping.ToDomainReceiptSlice(receipts), nil
}

// CountReceipts returns the total number of receipts for an account.
func (r *PgxLedgerRepository) CountReceipts(ctx context.Context, accountID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM receipts WHERE account_id = $1;`
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count receipts for account %s: %w", accountID, err)
	}
	return count, nil
}

// FindReceiptByID retrieves a single receipt with its line items.
func (r *PgxLedgerRepository) FindReceiptByID(ctx context.Context, accountID string, receiptID int64) (*domain.ReceiptRecord, error) {
	query := `
		SELECT receipt_id, account_id, merchant, receipt_date, total, category, points_earned, created_at
		FROM receipts
		WHERE account_id = $1 AND receipt_id = $2;
	`
	var m models.Receipt
	err := r.Pool.QueryRow(ctx, query, accountID, receiptID).Scan(
		&m.ReceiptID,
		&m.AccountID,
		&m.Merchant,
		&m.ReceiptDate,
		&m.Total,
		&m.Category,
		&m.PointsEarned,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receipt %d for account %s: %w", receiptID, accountID, err)
	}

	items, err := r.findItemsByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	record := mapping.ToDomainReceipt(m)
	record.Items = items
	return &record, nil
}

func (r *PgxLedgerRepository) findItemsByReceiptID(ctx context.Context, receiptID int64) ([]domain.ReceiptItem, error) {
	query := `
		SELECT item_id, receipt_id, position, name, price
		FROM receipt_items
		WHERE receipt_id = $1
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items for receipt %d: %w", receiptID, err)
	}
	defer rows.Close()

	items := []models.ReceiptItem{}
	for rows.Next() {
		var m models.ReceiptItem
		if err := rows.Scan(&m.ItemID, &m.ReceiptID, &m.Position, &m.Name, &m.Price); err != nil {
			return nil, fmt.Errorf("failed to scan line item row for receipt %d: %w", receiptID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item rows for receipt %d: %w", receiptID, err)
	}

	return mapping.ToDomainReceiptItemSlice(items), nil
}
