package receiptrepo

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

func TestRepository_CreateReceipt(t *testing.T) {
	repo, mock, tx := NewMock(t)
	now := time.Now()

	receipt := func() *domain.Receipt {
		return &domain.Receipt{
			UploadedBy:   "uploader",
			MerchantName: "Corner Deli",
			Date:         now,
			TotalAmount:  42.0,
			TipAmount:    5.0,
			TaxAmount:    3.0,
			Status:       domain.ReceiptStatusPending,
			Items: []domain.ReceiptItem{
				{Name: "Sandwich", Price: 12.0, Quantity: 2},
			},
		}
	}

	t.Run("Inserts receipt, items and participants", func(t *testing.T) {
		tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO receipts`)).
				WithArgs("uploader", "Corner Deli", now, 42.0, 5.0, 3.0, "", domain.ReceiptStatusPending).
				WillReturnRows(pgxmock.NewRows([]string{"receipt_id", "created_at"}).AddRow(int64(17), now))
			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO receipt_items`)).
				WithArgs(int64(17), "Sandwich", 12.0, 2, "").
				WillReturnRows(pgxmock.NewRows([]string{"item_id"}).AddRow(int64(1)))
			mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO receipt_participants`)).
				WithArgs(int64(17), "uploader", domain.ParticipantStatusAccepted).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
			mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO receipt_participants`)).
				WithArgs(int64(17), "user-2", domain.ParticipantStatusPending).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
			return fn(ctx)
		})

		created, err := repo.CreateReceipt(context.Background(), receipt(), []string{"uploader", "user-2"})
		assert.NoError(t, err)
		assert.Equal(t, int64(17), created.ID)
		assert.Equal(t, int64(1), created.Items[0].ID)
		assert.Equal(t, int64(17), created.Items[0].ReceiptID)
	})

	t.Run("Item insert failure rolls back", func(t *testing.T) {
		tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO receipts`)).
				WithArgs("uploader", "Corner Deli", now, 42.0, 5.0, 3.0, "", domain.ReceiptStatusPending).
				WillReturnRows(pgxmock.NewRows([]string{"receipt_id", "created_at"}).AddRow(int64(17), now))
			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO receipt_items`)).
				WithArgs(int64(17), "Sandwich", 12.0, 2, "").
				WillReturnError(errors.New("insert failed"))
			return fn(ctx)
		})

		created, err := repo.CreateReceipt(context.Background(), receipt(), []string{"uploader", "user-2"})
		assert.Error(t, err)
		assert.Nil(t, created)
	})
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()

	t.Run("Returns receipt with items", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM receipts`)).
			WithArgs(int64(17)).
			WillReturnRows(pgxmock.NewRows([]string{
				"receipt_id", "uploaded_by", "merchant_name", "date", "total_amount",
				"tip_amount", "tax_amount", "image_url", "status", "created_at",
			}).AddRow(int64(17), "uploader", "Corner Deli", now, 42.0, 5.0, 3.0, "", domain.ReceiptStatusPending, now))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM receipt_items`)).
			WithArgs(int64(17)).
			WillReturnRows(pgxmock.NewRows([]string{
				"item_id", "receipt_id", "name", "price", "quantity", "category", "paid_by", "paid_at",
			}).AddRow(int64(1), int64(17), "Sandwich", 12.0, 2, "", nil, nil))

		receipt, err := repo.GetByID(context.Background(), 17)
		assert.NoError(t, err)
		assert.Equal(t, "uploader", receipt.UploadedBy)
		assert.Len(t, receipt.Items, 1)
		assert.Nil(t, receipt.Items[0].PaidBy)
	})

	t.Run("Unknown receipt", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM receipts`)).
			WithArgs(int64(17)).
			WillReturnError(pgx.ErrNoRows)

		receipt, err := repo.GetByID(context.Background(), 17)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, receipt)
	})
}

func TestRepository_ParticipantStatus(t *testing.T) {
	repo, mock, _ := NewMock(t)

	t.Run("Returns participant status", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM receipt_participants`)).
			WithArgs(int64(17), "user-2").
			WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(domain.ParticipantStatusPending))

		status, err := repo.GetParticipantStatus(context.Background(), 17, "user-2")
		assert.NoError(t, err)
		assert.Equal(t, domain.ParticipantStatusPending, status)
	})

	t.Run("Non-participant", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM receipt_participants`)).
			WithArgs(int64(17), "stranger").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetParticipantStatus(context.Background(), 17, "stranger")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Update hits an existing row", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE receipt_participants`)).
			WithArgs(domain.ParticipantStatusAccepted, int64(17), "user-2").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.UpdateParticipantStatus(context.Background(), 17, "user-2", domain.ParticipantStatusAccepted))
	})

	t.Run("Update with no matching row", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE receipt_participants`)).
			WithArgs(domain.ParticipantStatusAccepted, int64(17), "stranger").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, repo.UpdateParticipantStatus(context.Background(), 17, "stranger", domain.ParticipantStatusAccepted), domain.ErrNotFound)
	})
}

func TestRepository_Payments(t *testing.T) {
	repo, mock, _ := NewMock(t)

	t.Run("GetPaidAmount returns the cumulative total", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`COALESCE(paid_amount, 0)`)).
			WithArgs(int64(17), "user-2").
			WillReturnRows(pgxmock.NewRows([]string{"paid_amount"}).AddRow(12.5))

		paid, err := repo.GetPaidAmount(context.Background(), 17, "user-2")
		assert.NoError(t, err)
		assert.Equal(t, 12.5, paid)
	})

	t.Run("RecordPayment accumulates", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`SET paid_amount = COALESCE(paid_amount, 0) + $1`)).
			WithArgs(17.5, int64(17), "user-2").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.RecordPayment(context.Background(), 17, "user-2", 17.5))
	})

	t.Run("RecordPayment for a non-participant", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`SET paid_amount = COALESCE(paid_amount, 0) + $1`)).
			WithArgs(17.5, int64(17), "stranger").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, repo.RecordPayment(context.Background(), 17, "stranger", 17.5), domain.ErrNotFound)
	})
}

func TestRepository_GetAcceptedParticipants(t *testing.T) {
	repo, mock, _ := NewMock(t)

	rows := pgxmock.NewRows([]string{"receipt_id", "user_id", "status", "paid_amount", "paid_at"}).
		AddRow(int64(17), "uploader", domain.ParticipantStatusAccepted, 0.0, nil).
		AddRow(int64(17), "user-2", domain.ParticipantStatusAccepted, 12.5, nil)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM receipt_participants`)).
		WithArgs(int64(17), domain.ParticipantStatusAccepted).
		WillReturnRows(rows)

	participants, err := repo.GetAcceptedParticipants(context.Background(), 17)
	assert.NoError(t, err)
	assert.Len(t, participants, 2)
	assert.Equal(t, 12.5, participants[1].PaidAmount)
}

func TestRepository_UpdateReceiptStatus(t *testing.T) {
	repo, mock, _ := NewMock(t)

	t.Run("Updates status", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE receipts`)).
			WithArgs(domain.ReceiptStatusCompleted, int64(17)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.UpdateReceiptStatus(context.Background(), 17, domain.ReceiptStatusCompleted))
	})

	t.Run("Unknown receipt", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE receipts`)).
			WithArgs(domain.ReceiptStatusCompleted, int64(99)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, repo.UpdateReceiptStatus(context.Background(), 99, domain.ReceiptStatusCompleted), domain.ErrNotFound)
	})
}

func TestRepository_FindUnparsed(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()

	rows := pgxmock.NewRows([]string{
		"receipt_id", "uploaded_by", "merchant_name", "date", "total_amount",
		"tip_amount", "tax_amount", "image_url", "status", "created_at",
	}).AddRow(int64(17), "uploader", "", now, 0.0, 0.0, 0.0, "https://img.example/17.jpg", domain.ReceiptStatusPending, now)

	mock.ExpectQuery(regexp.QuoteMeta(`NOT EXISTS`)).
		WithArgs(100, domain.ReceiptStatusDeclined).
		WillReturnRows(rows)

	receipts, err := repo.FindUnparsed(context.Background(), 100)
	assert.NoError(t, err)
	assert.Len(t, receipts, 1)
	assert.Equal(t, "https://img.example/17.jpg", receipts[0].ImageURL)
}

func TestRepository_UpdateFinancials(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`SET merchant_name = $1`)).
		WithArgs("Corner Deli", 42.0, 5.0, 3.0, int64(17)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.UpdateFinancials(context.Background(), 17, "Corner Deli", 42.0, 5.0, 3.0))
}
