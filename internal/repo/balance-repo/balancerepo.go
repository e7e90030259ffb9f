package balancerepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/internal/pg"
	"github.com/dmarkhas/splitmate/pkg/money"
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

func (r *Repository) GetUserBalance(ctx context.Context, userID string) (float64, error) {
	query := `
        SELECT balance
        FROM users
        WHERE user_id = $1
    `
	var balance float64
	err := r.db.QueryRow(ctx, query, userID).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, domain.ErrNotFound
		}
		zap.L().Error("failed to get user balance", zap.Error(err))
		return 0, err
	}
	return balance, nil
}

// ApplyChange mutates a user's balance by a signed amount and appends the
// matching balance_history row in the same transaction. The user row is
// locked for the duration, so concurrent changes to one balance serialize.
// A change that would drive the balance negative fails with
// domain.ErrInsufficientBalance and leaves no trace.
func (r *Repository) ApplyChange(ctx context.Context, userID string, amount float64, txType, description, referenceID, referenceType string) (*domain.BalanceHistory, error) {
	record := &domain.BalanceHistory{
		UserID:          userID,
		Amount:          amount,
		TransactionType: txType,
		Description:     description,
		ReferenceID:     referenceID,
		ReferenceType:   referenceType,
	}

	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		lockQuery := `
			SELECT balance
			FROM users
			WHERE user_id = $1
			FOR UPDATE
		`
		var before float64
		if err := r.db.QueryRow(ctx, lockQuery, userID).Scan(&before); err != nil {
			if err == pgx.ErrNoRows {
				return domain.ErrNotFound
			}
			zap.L().Error("failed to lock user balance", zap.Error(err))
			return err
		}

		after := money.Round(before + amount)
		if after < 0 {
			return domain.ErrInsufficientBalance
		}

		updateQuery := `
			UPDATE users
			SET balance = $1, updated_at = CURRENT_TIMESTAMP
			WHERE user_id = $2
		`
		if _, err := r.db.Exec(ctx, updateQuery, after, userID); err != nil {
			zap.L().Error("failed to update user balance", zap.Error(err))
			return err
		}

		historyQuery := `
			INSERT INTO balance_history
				(user_id, amount, balance_before, balance_after, transaction_type, description, reference_id, reference_type)
			VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''))
			RETURNING history_id, created_at
		`
		if err := r.db.QueryRow(ctx, historyQuery,
			userID, amount, before, after, txType, description, referenceID, referenceType,
		).Scan(&record.ID, &record.CreatedAt); err != nil {
			zap.L().Error("failed to append balance history", zap.Error(err))
			return err
		}

		record.BalanceBefore = before
		record.BalanceAfter = after
		return nil
	})

	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *Repository) GetHistory(ctx context.Context, userID string, limit int) ([]domain.BalanceHistory, error) {
	query := `
        SELECT history_id, user_id, amount, balance_before, balance_after,
               transaction_type, description, COALESCE(reference_id, ''), COALESCE(reference_type, ''), created_at
        FROM balance_history
        WHERE user_id = $1
        ORDER BY created_at DESC, history_id DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch balance history", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var history []domain.BalanceHistory
	for rows.Next() {
		var rec domain.BalanceHistory
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.Amount, &rec.BalanceBefore, &rec.BalanceAfter,
			&rec.TransactionType, &rec.Description, &rec.ReferenceID, &rec.ReferenceType, &rec.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan balance history row", zap.Error(err))
			return nil, err
		}
		history = append(history, rec)
	}

	return history, rows.Err()
}

func (r *Repository) GetHistoryByType(ctx context.Context, userID, txType string, limit int) ([]domain.BalanceHistory, error) {
	query := `
        SELECT history_id, user_id, amount, balance_before, balance_after,
               transaction_type, description, COALESCE(reference_id, ''), COALESCE(reference_type, ''), created_at
        FROM balance_history
        WHERE user_id = $1 AND transaction_type = $2
        ORDER BY created_at DESC, history_id DESC
        LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, userID, txType, limit)
	if err != nil {
		zap.L().Error("failed to fetch balance history by type", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var history []domain.BalanceHistory
	for rows.Next() {
		var rec domain.BalanceHistory
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.Amount, &rec.BalanceBefore, &rec.BalanceAfter,
			&rec.TransactionType, &rec.Description, &rec.ReferenceID, &rec.ReferenceType, &rec.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan balance history row", zap.Error(err))
			return nil, err
		}
		history = append(history, rec)
	}

	return history, rows.Err()
}
