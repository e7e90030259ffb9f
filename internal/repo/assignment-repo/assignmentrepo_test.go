package assignmentrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func TestRepository_ClaimItem(t *testing.T) {
	repo, mock, tx := NewMock(t)

	expectItemLock := func(itemQuantity int) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT receipt_id, quantity`)).
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"receipt_id", "quantity"}).AddRow(int64(17), itemQuantity))
	}
	expectPaidCheck := func(paidCount int) {
		mock.ExpectQuery(regexp.QuoteMeta(`paid_by IS NOT NULL`)).
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(paidCount))
	}
	expectOthersSum := func(claimed int) {
		mock.ExpectQuery(regexp.QuoteMeta(`COALESCE(SUM(quantity), 0)`)).
			WithArgs(int64(3), "user-1").
			WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(claimed))
	}

	tests := []struct {
		name      string
		quantity  int
		mockSetup func()
		expectErr error
	}{
		{
			name:     "Claim within capacity upserts",
			quantity: 2,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					expectItemLock(4)
					expectPaidCheck(0)
					expectOthersSum(1)
					mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO item_assignments`)).
						WithArgs(int64(17), int64(3), "user-1", 2).
						WillReturnResult(pgxmock.NewResult("INSERT", 1))
					return fn(ctx)
				})
			},
		},
		{
			name:     "Claim over remaining capacity rejected",
			quantity: 4,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					expectItemLock(4)
					expectPaidCheck(0)
					expectOthersSum(1)
					return fn(ctx)
				})
			},
			expectErr: domain.ErrCapacityExceeded,
		},
		{
			name:     "Zero quantity deletes the claim",
			quantity: 0,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					expectItemLock(4)
					expectPaidCheck(0)
					expectOthersSum(4)
					mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM item_assignments`)).
						WithArgs(int64(3), "user-1").
						WillReturnResult(pgxmock.NewResult("DELETE", 1))
					return fn(ctx)
				})
			},
		},
		{
			name:     "Paid item rejects claims",
			quantity: 1,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					expectItemLock(4)
					expectPaidCheck(1)
					return fn(ctx)
				})
			},
			expectErr: domain.ErrAlreadyPaid,
		},
		{
			name:     "Unknown item",
			quantity: 1,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(`SELECT receipt_id, quantity`)).
						WithArgs(int64(3)).
						WillReturnError(pgx.ErrNoRows)
					return fn(ctx)
				})
			},
			expectErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			err := repo.ClaimItem(context.Background(), 3, "user-1", tt.quantity)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_UnclaimItem(t *testing.T) {
	repo, mock, tx := NewMock(t)

	t.Run("Unclaim removes the assignment", func(t *testing.T) {
		tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			mock.ExpectQuery(regexp.QuoteMeta(`paid_by IS NOT NULL`)).
				WithArgs(int64(3)).
				WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM item_assignments`)).
				WithArgs(int64(3), "user-1").
				WillReturnResult(pgxmock.NewResult("DELETE", 1))
			return fn(ctx)
		})

		assert.NoError(t, repo.UnclaimItem(context.Background(), 3, "user-1"))
	})

	t.Run("Paid item cannot be unclaimed", func(t *testing.T) {
		tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			mock.ExpectQuery(regexp.QuoteMeta(`paid_by IS NOT NULL`)).
				WithArgs(int64(3)).
				WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
			return fn(ctx)
		})

		assert.ErrorIs(t, repo.UnclaimItem(context.Background(), 3, "user-1"), domain.ErrAlreadyPaid)
	})
}

func TestRepository_GetAssignmentsForUser(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		expected  map[int64]int
	}{
		{
			name: "Returns the user's claims",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"item_id", "quantity"}).
					AddRow(int64(1), 2).
					AddRow(int64(2), 1)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT item_id, quantity`)).
					WithArgs(int64(17), "user-1").
					WillReturnRows(rows)
			},
			expected: map[int64]int{1: 2, 2: 1},
		},
		{
			name: "No claims yields empty map",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT item_id, quantity`)).
					WithArgs(int64(17), "user-1").
					WillReturnRows(pgxmock.NewRows([]string{"item_id", "quantity"}))
			},
			expected: map[int64]int{},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT item_id, quantity`)).
					WithArgs(int64(17), "user-1").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			assignments, err := repo.GetAssignmentsForUser(context.Background(), 17, "user-1")
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, assignments)
		})
	}
}

func TestRepository_MarkPaid(t *testing.T) {
	repo, mock, tx := NewMock(t)
	now := time.Now()

	t.Run("Marks assignments and items", func(t *testing.T) {
		tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			mock.ExpectExec(regexp.QuoteMeta(`UPDATE item_assignments`)).
				WithArgs(int64(17), "user-1", now).
				WillReturnResult(pgxmock.NewResult("UPDATE", 2))
			mock.ExpectExec(regexp.QuoteMeta(`UPDATE receipt_items`)).
				WithArgs(int64(17), "user-1", now).
				WillReturnResult(pgxmock.NewResult("UPDATE", 2))
			return fn(ctx)
		})

		marked, err := repo.MarkPaid(context.Background(), 17, "user-1", now)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), marked)
	})

	t.Run("Item update failure aborts", func(t *testing.T) {
		tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			mock.ExpectExec(regexp.QuoteMeta(`UPDATE item_assignments`)).
				WithArgs(int64(17), "user-1", now).
				WillReturnResult(pgxmock.NewResult("UPDATE", 2))
			mock.ExpectExec(regexp.QuoteMeta(`UPDATE receipt_items`)).
				WithArgs(int64(17), "user-1", now).
				WillReturnError(errors.New("update failed"))
			return fn(ctx)
		})

		marked, err := repo.MarkPaid(context.Background(), 17, "user-1", now)
		assert.Error(t, err)
		assert.Equal(t, int64(0), marked)
	})
}

func TestRepository_AllItemsClaimed(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name      string
		unclaimed int
		total     int
		expected  bool
	}{
		{name: "All items fully claimed", unclaimed: 0, total: 3, expected: true},
		{name: "Unclaimed quantity remains", unclaimed: 1, total: 3, expected: false},
		{name: "Empty receipt never counts as claimed", unclaimed: 0, total: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(`ri.quantity >`)).
				WithArgs(int64(17)).
				WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(tt.unclaimed))
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM receipt_items WHERE receipt_id = $1`)).
				WithArgs(int64(17)).
				WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(tt.total))

			claimed, err := repo.AllItemsClaimed(context.Background(), 17)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, claimed)
		})
	}
}
