package assignmentrepo

import (
	"context"
	"time"

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

// ClaimItem sets the user's claim on an item to quantity. The item row is
// locked for the duration of the transaction, so the capacity check and the
// upsert cannot interleave with a concurrent claim on the same item.
// A quantity of zero removes the claim.
func (r *Repository) ClaimItem(ctx context.Context, itemID int64, userID string, quantity int) error {
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		itemQuery := `
			SELECT receipt_id, quantity
			FROM receipt_items
			WHERE item_id = $1
			FOR UPDATE
		`
		var receiptID int64
		var itemQuantity int
		if err := r.db.QueryRow(ctx, itemQuery, itemID).Scan(&receiptID, &itemQuantity); err != nil {
			if err == pgx.ErrNoRows {
				return domain.ErrNotFound
			}
			zap.L().Error("failed to lock receipt item", zap.Error(err))
			return err
		}

		paid, err := r.isItemPaid(ctx, itemID)
		if err != nil {
			return err
		}
		if paid {
			return domain.ErrAlreadyPaid
		}

		othersQuery := `
			SELECT COALESCE(SUM(quantity), 0)
			FROM item_assignments
			WHERE item_id = $1 AND user_id <> $2 AND paid_by IS NULL
		`
		var othersClaimed int
		if err := r.db.QueryRow(ctx, othersQuery, itemID, userID).Scan(&othersClaimed); err != nil {
			zap.L().Error("failed to sum claimed quantity", zap.Error(err))
			return err
		}

		if othersClaimed+quantity > itemQuantity {
			return domain.ErrCapacityExceeded
		}

		if quantity == 0 {
			deleteQuery := `DELETE FROM item_assignments WHERE item_id = $1 AND user_id = $2`
			if _, err := r.db.Exec(ctx, deleteQuery, itemID, userID); err != nil {
				zap.L().Error("failed to remove item assignment", zap.Error(err))
				return err
			}
			return nil
		}

		upsertQuery := `
			INSERT INTO item_assignments (receipt_id, item_id, user_id, quantity)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (item_id, user_id) DO UPDATE SET quantity = EXCLUDED.quantity
		`
		if _, err := r.db.Exec(ctx, upsertQuery, receiptID, itemID, userID, quantity); err != nil {
			zap.L().Error("failed to upsert item assignment", zap.Error(err))
			return err
		}
		return nil
	})
}

// UnclaimItem removes the user's claim. Removing a claim that does not exist
// is a no-op success. Fails if any assignment of the item is already paid.
func (r *Repository) UnclaimItem(ctx context.Context, itemID int64, userID string) error {
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		paid, err := r.isItemPaid(ctx, itemID)
		if err != nil {
			return err
		}
		if paid {
			return domain.ErrAlreadyPaid
		}

		query := `DELETE FROM item_assignments WHERE item_id = $1 AND user_id = $2`
		if _, err := r.db.Exec(ctx, query, itemID, userID); err != nil {
			zap.L().Error("failed to delete item assignment", zap.Error(err))
			return err
		}
		return nil
	})
}

func (r *Repository) isItemPaid(ctx context.Context, itemID int64) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM item_assignments
		WHERE item_id = $1 AND paid_by IS NOT NULL
	`
	var count int
	if err := r.db.QueryRow(ctx, query, itemID).Scan(&count); err != nil {
		zap.L().Error("failed to check item payment", zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) IsItemPaid(ctx context.Context, itemID int64) (bool, error) {
	return r.isItemPaid(ctx, itemID)
}

func (r *Repository) GetAssignmentsForUser(ctx context.Context, receiptID int64, userID string) (map[int64]int, error) {
	query := `
        SELECT item_id, quantity
        FROM item_assignments
        WHERE receipt_id = $1 AND user_id = $2
    `
	rows, err := r.db.Query(ctx, query, receiptID, userID)
	if err != nil {
		zap.L().Error("failed to fetch item assignments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	assignments := make(map[int64]int)
	for rows.Next() {
		var itemID int64
		var quantity int
		if err := rows.Scan(&itemID, &quantity); err != nil {
			zap.L().Error("failed to scan assignment row", zap.Error(err))
			return nil, err
		}
		assignments[itemID] = quantity
	}

	return assignments, rows.Err()
}

func (r *Repository) GetAllAssignments(ctx context.Context, receiptID int64) ([]domain.ItemAssignment, error) {
	query := `
        SELECT receipt_id, item_id, user_id, quantity, paid_by, paid_at
        FROM item_assignments
        WHERE receipt_id = $1
    `
	rows, err := r.db.Query(ctx, query, receiptID)
	if err != nil {
		zap.L().Error("failed to fetch receipt assignments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.ItemAssignment
	for rows.Next() {
		var a domain.ItemAssignment
		if err := rows.Scan(&a.ReceiptID, &a.ItemID, &a.UserID, &a.Quantity, &a.PaidBy, &a.PaidAt); err != nil {
			zap.L().Error("failed to scan assignment row", zap.Error(err))
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

// MarkPaid stamps every unpaid assignment of the user on the receipt, and the
// matching receipt_items rows, with a paid marker. Already-paid rows are left
// untouched, so repeated calls are idempotent.
func (r *Repository) MarkPaid(ctx context.Context, receiptID int64, userID string, at time.Time) (int64, error) {
	var marked int64
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		assignmentsQuery := `
			UPDATE item_assignments
			SET paid_by = $2, paid_at = $3
			WHERE receipt_id = $1 AND user_id = $2 AND paid_by IS NULL
		`
		tag, err := r.db.Exec(ctx, assignmentsQuery, receiptID, userID, at)
		if err != nil {
			zap.L().Error("failed to mark assignments paid", zap.Error(err))
			return err
		}
		marked = tag.RowsAffected()

		itemsQuery := `
			UPDATE receipt_items
			SET paid_by = $2, paid_at = $3
			WHERE receipt_id = $1 AND paid_by IS NULL AND item_id IN (
				SELECT item_id FROM item_assignments WHERE receipt_id = $1 AND user_id = $2
			)
		`
		if _, err := r.db.Exec(ctx, itemsQuery, receiptID, userID, at); err != nil {
			zap.L().Error("failed to mark receipt items paid", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return marked, nil
}

// AllItemsClaimed reports whether every item of the receipt has its full
// quantity claimed. Paid assignments count: they were claimed before payment.
func (r *Repository) AllItemsClaimed(ctx context.Context, receiptID int64) (bool, error) {
	query := `
        SELECT COUNT(*)
        FROM receipt_items ri
        WHERE ri.receipt_id = $1
          AND ri.quantity > (
              SELECT COALESCE(SUM(ia.quantity), 0)
              FROM item_assignments ia
              WHERE ia.item_id = ri.item_id
          )
    `
	var unclaimed int
	if err := r.db.QueryRow(ctx, query, receiptID).Scan(&unclaimed); err != nil {
		zap.L().Error("failed to check claimed items", zap.Error(err))
		return false, err
	}

	itemsQuery := `SELECT COUNT(*) FROM receipt_items WHERE receipt_id = $1`
	var total int
	if err := r.db.QueryRow(ctx, itemsQuery, receiptID).Scan(&total); err != nil {
		zap.L().Error("failed to count receipt items", zap.Error(err))
		return false, err
	}

	// A receipt with no items is never considered fully claimed.
	return total > 0 && unclaimed == 0, nil
}
