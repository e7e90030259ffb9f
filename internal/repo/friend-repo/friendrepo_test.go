package friendrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/dmarkhas/splitmate/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()
	return repo, mockDB
}

var friendshipColumns = []string{"friendship_id", "user_id", "friend_id", "status", "created_at", "updated_at"}

func TestRepository_Upsert(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("Creates a new pending request", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO friendships`)).
			WithArgs("user-1", "user-2", domain.FriendshipStatusPending, domain.FriendshipStatusDeclined).
			WillReturnRows(pgxmock.NewRows(friendshipColumns).
				AddRow(int64(5), "user-1", "user-2", domain.FriendshipStatusPending, now, now))

		f, err := repo.Upsert(context.Background(), "user-1", "user-2")
		assert.NoError(t, err)
		assert.Equal(t, int64(5), f.ID)
		assert.Equal(t, domain.FriendshipStatusPending, f.Status)
	})

	t.Run("Existing accepted pair is returned untouched", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO friendships`)).
			WithArgs("user-1", "user-2", domain.FriendshipStatusPending, domain.FriendshipStatusDeclined).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = $1 AND friend_id = $2`)).
			WithArgs("user-1", "user-2").
			WillReturnRows(pgxmock.NewRows(friendshipColumns).
				AddRow(int64(5), "user-1", "user-2", domain.FriendshipStatusAccepted, now, now))

		f, err := repo.Upsert(context.Background(), "user-1", "user-2")
		assert.NoError(t, err)
		assert.Equal(t, domain.FriendshipStatusAccepted, f.Status)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO friendships`)).
			WithArgs("user-1", "user-2", domain.FriendshipStatusPending, domain.FriendshipStatusDeclined).
			WillReturnError(errors.New("database error"))

		f, err := repo.Upsert(context.Background(), "user-1", "user-2")
		assert.Error(t, err)
		assert.Nil(t, f)
	})
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("Existing friendship", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE friendship_id = $1`)).
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows(friendshipColumns).
				AddRow(int64(5), "user-1", "user-2", domain.FriendshipStatusPending, now, now))

		f, err := repo.GetByID(context.Background(), 5)
		assert.NoError(t, err)
		assert.Equal(t, "user-2", f.FriendID)
	})

	t.Run("Unknown friendship", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE friendship_id = $1`)).
			WithArgs(int64(5)).
			WillReturnError(pgx.ErrNoRows)

		f, err := repo.GetByID(context.Background(), 5)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, f)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Updates status", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE friendships`)).
			WithArgs(domain.FriendshipStatusAccepted, int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.UpdateStatus(context.Background(), 5, domain.FriendshipStatusAccepted))
	})

	t.Run("Unknown friendship", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE friendships`)).
			WithArgs(domain.FriendshipStatusAccepted, int64(99)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, repo.UpdateStatus(context.Background(), 99, domain.FriendshipStatusAccepted), domain.ErrNotFound)
	})
}

func TestRepository_Listings(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("ListFriends returns accepted pairs in either direction", func(t *testing.T) {
		rows := pgxmock.NewRows(friendshipColumns).
			AddRow(int64(5), "user-1", "user-2", domain.FriendshipStatusAccepted, now, now).
			AddRow(int64(6), "user-3", "user-1", domain.FriendshipStatusAccepted, now, now)
		mock.ExpectQuery(regexp.QuoteMeta(`(user_id = $1 OR friend_id = $1)`)).
			WithArgs("user-1", domain.FriendshipStatusAccepted).
			WillReturnRows(rows)

		friends, err := repo.ListFriends(context.Background(), "user-1")
		assert.NoError(t, err)
		assert.Len(t, friends, 2)
	})

	t.Run("ListIncomingRequests returns pending addressed to the user", func(t *testing.T) {
		rows := pgxmock.NewRows(friendshipColumns).
			AddRow(int64(7), "user-4", "user-1", domain.FriendshipStatusPending, now, now)
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE friend_id = $1`)).
			WithArgs("user-1", domain.FriendshipStatusPending).
			WillReturnRows(rows)

		incoming, err := repo.ListIncomingRequests(context.Background(), "user-1")
		assert.NoError(t, err)
		assert.Len(t, incoming, 1)
		assert.Equal(t, "user-4", incoming[0].UserID)
	})
}
