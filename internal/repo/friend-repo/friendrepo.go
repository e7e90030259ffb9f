package friendrepo

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

// Upsert creates a friend request or resets a previously declined one back
// to pending. An already pending or accepted pair is left as is.
func (r *Repository) Upsert(ctx context.Context, userID, friendID string) (*domain.Friendship, error) {
	query := `
        INSERT INTO friendships (user_id, friend_id, status)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, friend_id) DO UPDATE
            SET status = $3, updated_at = CURRENT_TIMESTAMP
            WHERE friendships.status = $4
        RETURNING friendship_id, user_id, friend_id, status, created_at, updated_at
    `
	var f domain.Friendship
	err := r.db.QueryRow(ctx, query, userID, friendID,
		domain.FriendshipStatusPending, domain.FriendshipStatusDeclined,
	).Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Conflict row was pending or accepted already.
			return r.getByPair(ctx, userID, friendID)
		}
		zap.L().Error("failed to upsert friendship", zap.Error(err))
		return nil, err
	}
	return &f, nil
}

func (r *Repository) getByPair(ctx context.Context, userID, friendID string) (*domain.Friendship, error) {
	query := `
        SELECT friendship_id, user_id, friend_id, status, created_at, updated_at
        FROM friendships
        WHERE user_id = $1 AND friend_id = $2
    `
	var f domain.Friendship
	err := r.db.QueryRow(ctx, query, userID, friendID).Scan(
		&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		zap.L().Error("failed to get friendship", zap.Error(err))
		return nil, err
	}
	return &f, nil
}

func (r *Repository) GetByID(ctx context.Context, friendshipID int64) (*domain.Friendship, error) {
	query := `
        SELECT friendship_id, user_id, friend_id, status, created_at, updated_at
        FROM friendships
        WHERE friendship_id = $1
    `
	var f domain.Friendship
	err := r.db.QueryRow(ctx, query, friendshipID).Scan(
		&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		zap.L().Error("failed to get friendship", zap.Error(err))
		return nil, err
	}
	return &f, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, friendshipID int64, status string) error {
	query := `
        UPDATE friendships
        SET status = $1, updated_at = CURRENT_TIMESTAMP
        WHERE friendship_id = $2
    `
	tag, err := r.db.Exec(ctx, query, status, friendshipID)
	if err != nil {
		zap.L().Error("failed to update friendship status", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListFriends returns accepted friendships in either direction.
func (r *Repository) ListFriends(ctx context.Context, userID string) ([]domain.Friendship, error) {
	query := `
        SELECT friendship_id, user_id, friend_id, status, created_at, updated_at
        FROM friendships
        WHERE (user_id = $1 OR friend_id = $1) AND status = $2
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, userID, domain.FriendshipStatusAccepted)
}

// ListIncomingRequests returns pending requests addressed to the user.
func (r *Repository) ListIncomingRequests(ctx context.Context, userID string) ([]domain.Friendship, error) {
	query := `
        SELECT friendship_id, user_id, friend_id, status, created_at, updated_at
        FROM friendships
        WHERE friend_id = $1 AND status = $2
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, userID, domain.FriendshipStatusPending)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Friendship, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch friendships", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var friendships []domain.Friendship
	for rows.Next() {
		var f domain.Friendship
		if err := rows.Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			zap.L().Error("failed to scan friendship row", zap.Error(err))
			return nil, err
		}
		friendships = append(friendships, f)
	}

	return friendships, rows.Err()
}
