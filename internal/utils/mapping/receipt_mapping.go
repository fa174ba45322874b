package mapping

import (
	"github.com/snapbill/snapbill_backend/internal/core/domain"
	"github.com/snapbill/snapbill_backend/internal/models"
)

// ToDomainReceipt converts a model Receipt to a domain ReceiptRecord
func ToDomainReceipt(m models.Receipt) domain.ReceiptRecord {
	return domain.ReceiptRecord{
		ReceiptID:    m.ReceiptID,
		AccountID:    m.AccountID,
		Merchant:     m.Merchant,
		DateLabel:    m.ReceiptDate,
		Total:        m.Total,
		Category:     m.Category,
		PointsEarned: m.PointsEarned,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainReceiptSlice converts a slice of model Receipts to domain ReceiptRecords
func ToDomainReceiptSlice(ms []models.Receipt) []domain.ReceiptRecord {
	ds := make([]domain.ReceiptRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReceipt(m)
	}
	return ds
}

// ToDomainReceiptItem converts a model ReceiptItem to a domain ReceiptItem
func ToDomainReceiptItem(m models.ReceiptItem) domain.ReceiptItem {
	return domain.ReceiptItem{
		Name:  m.Name,
		Price: m.Price,
	}
}

// ToDomainReceiptItemSlice converts a slice of model ReceiptItems to domain ReceiptItems
func ToDomainReceiptItemSlice(ms []models.ReceiptItem) []domain.ReceiptItem {
	ds := make([]domain.ReceiptItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReceiptItem(m)
	}
	return ds
}

// ToDomainBalance converts a model Balance to a domain Balance
func ToDomainBalance(m models.Balance) domain.Balance {
	return domain.Balance{
		AccountID:     m.AccountID,
		TotalPoints:   m.TotalPoints,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}
