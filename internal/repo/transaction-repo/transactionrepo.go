package transactionrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	query := `
        INSERT INTO transactions (from_user_id, to_user_id, amount, transaction_type, description, status, related_entity_id)
        VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, NULLIF($7, ''))
        RETURNING transaction_id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		tx.FromUserID, tx.ToUserID, tx.Amount, tx.TransactionType, tx.Description, tx.Status, tx.RelatedEntityID,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		zap.L().Error("failed to create transaction", zap.Error(err))
		return nil, err
	}
	return tx, nil
}

func (r *Repository) GetByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	query := `
        SELECT transaction_id, from_user_id, COALESCE(to_user_id, ''), amount, transaction_type,
               description, status, COALESCE(related_entity_id, ''), created_at, updated_at
        FROM transactions
        WHERE transaction_id = $1
    `
	var tx domain.Transaction
	err := r.db.QueryRow(ctx, query, transactionID).Scan(
		&tx.ID, &tx.FromUserID, &tx.ToUserID, &tx.Amount, &tx.TransactionType,
		&tx.Description, &tx.Status, &tx.RelatedEntityID, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		zap.L().Error("failed to get transaction", zap.Error(err))
		return nil, err
	}
	return &tx, nil
}

func (r *Repository) ListForUser(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	query := `
        SELECT transaction_id, from_user_id, COALESCE(to_user_id, ''), amount, transaction_type,
               description, status, COALESCE(related_entity_id, ''), created_at, updated_at
        FROM transactions
        WHERE from_user_id = $1 OR to_user_id = $1
        ORDER BY created_at DESC, transaction_id DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		err := rows.Scan(&tx.ID, &tx.FromUserID, &tx.ToUserID, &tx.Amount, &tx.TransactionType,
			&tx.Description, &tx.Status, &tx.RelatedEntityID, &tx.CreatedAt, &tx.UpdatedAt)
		if err != nil {
			zap.L().Error("failed to scan transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func (r *Repository) UpdateStatus(ctx context.Context, transactionID int64, status string) error {
	query := `
        UPDATE transactions
        SET status = $1, updated_at = CURRENT_TIMESTAMP
        WHERE transaction_id = $2
    `
	tag, err := r.db.Exec(ctx, query, status, transactionID)
	if err != nil {
		zap.L().Error("failed to update transaction status", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
