package receiptrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// CreateReceipt inserts the receipt, its items, and its participant rows in
// one transaction. The uploader joins as an accepted participant; everyone
// else starts pending.
func (r *Repository) CreateReceipt(ctx context.Context, receipt *domain.Receipt, participantIDs []string) (*domain.Receipt, error) {
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		receiptQuery := `
			INSERT INTO receipts (uploaded_by, merchant_name, date, total_amount, tip_amount, tax_amount, image_url, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING receipt_id, created_at
		`
		err := r.db.QueryRow(ctx, receiptQuery,
			receipt.UploadedBy, receipt.MerchantName, receipt.Date,
			receipt.TotalAmount, receipt.TipAmount, receipt.TaxAmount,
			receipt.ImageURL, receipt.Status,
		).Scan(&receipt.ID, &receipt.CreatedAt)
		if err != nil {
			zap.L().Error("failed to insert receipt", zap.Error(err))
			return err
		}

		itemQuery := `
			INSERT INTO receipt_items (receipt_id, name, price, quantity, category)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''))
			RETURNING item_id
		`
		for i := range receipt.Items {
			item := &receipt.Items[i]
			item.ReceiptID = receipt.ID
			if err := r.db.QueryRow(ctx, itemQuery,
				receipt.ID, item.Name, item.Price, item.Quantity, item.Category,
			).Scan(&item.ID); err != nil {
				zap.L().Error("failed to insert receipt item", zap.Error(err))
				return err
			}
		}

		participantQuery := `
			INSERT INTO receipt_participants (receipt_id, user_id, status)
			VALUES ($1, $2, $3)
			ON CONFLICT (receipt_id, user_id) DO NOTHING
		`
		if _, err := r.db.Exec(ctx, participantQuery, receipt.ID, receipt.UploadedBy, domain.ParticipantStatusAccepted); err != nil {
			zap.L().Error("failed to insert uploader participant", zap.Error(err))
			return err
		}
		for _, userID := range participantIDs {
			if userID == receipt.UploadedBy {
				continue
			}
			if _, err := r.db.Exec(ctx, participantQuery, receipt.ID, userID, domain.ParticipantStatusPending); err != nil {
				zap.L().Error("failed to insert receipt participant", zap.Error(err))
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (r *Repository) GetByID(ctx context.Context, receiptID int64) (*domain.Receipt, error) {
	query := `
        SELECT receipt_id, uploaded_by, merchant_name, date, total_amount, tip_amount, tax_amount, image_url, status, created_at
        FROM receipts
        WHERE receipt_id = $1
    `
	var receipt domain.Receipt
	err := r.db.QueryRow(ctx, query, receiptID).Scan(
		&receipt.ID, &receipt.UploadedBy, &receipt.MerchantName, &receipt.Date,
		&receipt.TotalAmount, &receipt.TipAmount, &receipt.TaxAmount,
		&receipt.ImageURL, &receipt.Status, &receipt.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		zap.L().Error("failed to get receipt", zap.Error(err))
		return nil, err
	}

	items, err := r.GetItems(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	receipt.Items = items
	return &receipt, nil
}

func (r *Repository) GetItems(ctx context.Context, receiptID int64) ([]domain.ReceiptItem, error) {
	query := `
        SELECT item_id, receipt_id, name, price, quantity, COALESCE(category, ''), paid_by, paid_at
        FROM receipt_items
        WHERE receipt_id = $1
        ORDER BY item_id
    `
	rows, err := r.db.Query(ctx, query, receiptID)
	if err != nil {
		zap.L().Error("failed to fetch receipt items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []domain.ReceiptItem
	for rows.Next() {
		var item domain.ReceiptItem
		if err := rows.Scan(&item.ID, &item.ReceiptID, &item.Name, &item.Price, &item.Quantity, &item.Category, &item.PaidBy, &item.PaidAt); err != nil {
			zap.L().Error("failed to scan receipt item row", zap.Error(err))
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *Repository) AddItems(ctx context.Context, receiptID int64, items []domain.ReceiptItem) error {
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		query := `
			INSERT INTO receipt_items (receipt_id, name, price, quantity, category)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		`
		for _, item := range items {
			if _, err := r.db.Exec(ctx, query, receiptID, item.Name, item.Price, item.Quantity, item.Category); err != nil {
				zap.L().Error("failed to insert parsed item", zap.Error(err))
				return err
			}
		}
		return nil
	})
}

func (r *Repository) UpdateFinancials(ctx context.Context, receiptID int64, merchantName string, total, tip, tax float64) error {
	query := `
        UPDATE receipts
        SET merchant_name = $1, total_amount = $2, tip_amount = $3, tax_amount = $4, updated_at = CURRENT_TIMESTAMP
        WHERE receipt_id = $5
    `
	tag, err := r.db.Exec(ctx, query, merchantName, total, tip, tax, receiptID)
	if err != nil {
		zap.L().Error("failed to update receipt financials", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) GetUploadedBy(ctx context.Context, receiptID int64) (string, error) {
	query := `SELECT uploaded_by FROM receipts WHERE receipt_id = $1`
	var uploadedBy string
	if err := r.db.QueryRow(ctx, query, receiptID).Scan(&uploadedBy); err != nil {
		if err == pgx.ErrNoRows {
			return "", domain.ErrNotFound
		}
		zap.L().Error("failed to get receipt uploader", zap.Error(err))
		return "", err
	}
	return uploadedBy, nil
}

func (r *Repository) UpdateReceiptStatus(ctx context.Context, receiptID int64, status string) error {
	query := `
        UPDATE receipts
        SET status = $1, updated_at = CURRENT_TIMESTAMP
        WHERE receipt_id = $2
    `
	tag, err := r.db.Exec(ctx, query, status, receiptID)
	if err != nil {
		zap.L().Error("failed to update receipt status", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) GetParticipantStatus(ctx context.Context, receiptID int64, userID string) (string, error) {
	query := `SELECT status FROM receipt_participants WHERE receipt_id = $1 AND user_id = $2`
	var status string
	if err := r.db.QueryRow(ctx, query, receiptID, userID).Scan(&status); err != nil {
		if err == pgx.ErrNoRows {
			return "", domain.ErrNotFound
		}
		zap.L().Error("failed to get participant status", zap.Error(err))
		return "", err
	}
	return status, nil
}

func (r *Repository) UpdateParticipantStatus(ctx context.Context, receiptID int64, userID, status string) error {
	query := `
        UPDATE receipt_participants
        SET status = $1, updated_at = CURRENT_TIMESTAMP
        WHERE receipt_id = $2 AND user_id = $3
    `
	tag, err := r.db.Exec(ctx, query, status, receiptID, userID)
	if err != nil {
		zap.L().Error("failed to update participant status", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) GetPaidAmount(ctx context.Context, receiptID int64, userID string) (float64, error) {
	query := `
        SELECT COALESCE(paid_amount, 0)
        FROM receipt_participants
        WHERE receipt_id = $1 AND user_id = $2
    `
	var paid float64
	if err := r.db.QueryRow(ctx, query, receiptID, userID).Scan(&paid); err != nil {
		if err == pgx.ErrNoRows {
			return 0, domain.ErrNotFound
		}
		zap.L().Error("failed to get paid amount", zap.Error(err))
		return 0, err
	}
	return paid, nil
}

// RecordPayment adds amount to the participant's cumulative paid total.
func (r *Repository) RecordPayment(ctx context.Context, receiptID int64, userID string, amount float64) error {
	query := `
        UPDATE receipt_participants
        SET paid_amount = COALESCE(paid_amount, 0) + $1, paid_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
        WHERE receipt_id = $2 AND user_id = $3
    `
	tag, err := r.db.Exec(ctx, query, amount, receiptID, userID)
	if err != nil {
		zap.L().Error("failed to record participant payment", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) GetAcceptedParticipants(ctx context.Context, receiptID int64) ([]domain.ReceiptParticipant, error) {
	query := `
        SELECT receipt_id, user_id, status, COALESCE(paid_amount, 0), paid_at
        FROM receipt_participants
        WHERE receipt_id = $1 AND status = $2
    `
	rows, err := r.db.Query(ctx, query, receiptID, domain.ParticipantStatusAccepted)
	if err != nil {
		zap.L().Error("failed to fetch accepted participants", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var participants []domain.ReceiptParticipant
	for rows.Next() {
		var p domain.ReceiptParticipant
		if err := rows.Scan(&p.ReceiptID, &p.UserID, &p.Status, &p.PaidAmount, &p.PaidAt); err != nil {
			zap.L().Error("failed to scan participant row", zap.Error(err))
			return nil, err
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

// GetPendingForUser lists receipts visible on the user's pending screen:
// uploaded by them, or shared with them and not declined, and not completed.
func (r *Repository) GetPendingForUser(ctx context.Context, userID string) ([]domain.Receipt, error) {
	query := `
        SELECT DISTINCT r.receipt_id, r.uploaded_by, r.merchant_name, r.date,
               r.total_amount, r.tip_amount, r.tax_amount, r.image_url, r.status, r.created_at
        FROM receipts r
        LEFT JOIN receipt_participants rp ON r.receipt_id = rp.receipt_id AND rp.user_id = $1
        WHERE r.status <> $2
          AND (r.uploaded_by = $1 OR rp.status IN ($3, $4))
        ORDER BY r.created_at DESC
    `
	return r.queryReceipts(ctx, query, userID, domain.ReceiptStatusCompleted,
		domain.ParticipantStatusPending, domain.ParticipantStatusAccepted)
}

// GetCompletedForUser lists fully settled receipts (history view).
func (r *Repository) GetCompletedForUser(ctx context.Context, userID string) ([]domain.Receipt, error) {
	query := `
        SELECT DISTINCT r.receipt_id, r.uploaded_by, r.merchant_name, r.date,
               r.total_amount, r.tip_amount, r.tax_amount, r.image_url, r.status, r.created_at
        FROM receipts r
        LEFT JOIN receipt_participants rp ON r.receipt_id = rp.receipt_id AND rp.user_id = $1
        WHERE r.status = $2
          AND (r.uploaded_by = $1 OR (rp.user_id IS NOT NULL AND rp.status <> $3))
        ORDER BY r.created_at DESC
    `
	return r.queryReceipts(ctx, query, userID, domain.ReceiptStatusCompleted, domain.ParticipantStatusDeclined)
}

// FindUnparsed returns receipts that carry an image but no line items yet,
// candidates for the external parser.
func (r *Repository) FindUnparsed(ctx context.Context, limit int) ([]domain.Receipt, error) {
	query := `
        SELECT r.receipt_id, r.uploaded_by, r.merchant_name, r.date,
               r.total_amount, r.tip_amount, r.tax_amount, r.image_url, r.status, r.created_at
        FROM receipts r
        WHERE r.image_url <> ''
          AND r.status <> $2
          AND NOT EXISTS (SELECT 1 FROM receipt_items ri WHERE ri.receipt_id = r.receipt_id)
        ORDER BY r.created_at
        LIMIT $1
    `
	return r.queryReceipts(ctx, query, limit, domain.ReceiptStatusDeclined)
}

func (r *Repository) queryReceipts(ctx context.Context, query string, args ...any) ([]domain.Receipt, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch receipts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var receipts []domain.Receipt
	for rows.Next() {
		var receipt domain.Receipt
		err := rows.Scan(&receipt.ID, &receipt.UploadedBy, &receipt.MerchantName, &receipt.Date,
			&receipt.TotalAmount, &receipt.TipAmount, &receipt.TaxAmount,
			&receipt.ImageURL, &receipt.Status, &receipt.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan receipt row", zap.Error(err))
			return nil, err
		}
		receipts = append(receipts, receipt)
	}

	return receipts, rows.Err()
}
