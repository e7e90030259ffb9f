package parser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dmarkhas/splitmate/internal/config"
	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/pkg/clients"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func NewMock(t *testing.T) (*Service, *MockReceiptRepo, *clients.MockHTTPClientI) {
	cfg := &config.Config{ParserAddress: "http://localhost:8090"}
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	receiptRepo := NewMockReceiptRepo(ctrl)
	client := clients.NewMockHTTPClientI(ctrl)
	service := New(cfg, receiptRepo, client)
	return service, receiptRepo, client
}

func TestService_Start(t *testing.T) {
	service, _, _ := NewMock(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()
}

func TestService_processReceipts(t *testing.T) {
	tests := []struct {
		name             string
		receipts         []domain.Receipt
		mockFindUnparsed func(ctx context.Context, limit int) ([]domain.Receipt, error)
		mockAddTask      func(ctx context.Context, task Task) error
		expectedErr      error
	}{
		{
			name: "successfully schedules receipts",
			receipts: []domain.Receipt{
				{ID: 101, Status: domain.ReceiptStatusPending},
				{ID: 102, Status: domain.ReceiptStatusPending},
			},
			mockAddTask: func(ctx context.Context, task Task) error {
				return nil
			},
		},
		{
			name:        "fails when fetching receipts",
			expectedErr: fmt.Errorf("failed to fetch receipts for parsing"),
		},
		{
			name: "error in workerPool AddTask",
			receipts: []domain.Receipt{
				{ID: 103, Status: domain.ReceiptStatusPending},
			},
			mockAddTask: func(ctx context.Context, task Task) error {
				return fmt.Errorf("failed to add task to worker pool")
			},
			expectedErr: fmt.Errorf("failed to add task to worker pool"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			receiptRepo := NewMockReceiptRepo(ctrl)
			workerPool := NewMockWorkerPoolI(ctrl)

			if tt.expectedErr != nil && tt.receipts == nil {
				receiptRepo.EXPECT().
					FindUnparsed(gomock.Any(), gomock.Any()).
					Return(nil, tt.expectedErr).
					Times(1)
			} else {
				receiptRepo.EXPECT().
					FindUnparsed(gomock.Any(), gomock.Any()).
					Return(tt.receipts, nil).
					Times(1)
				workerPool.EXPECT().
					AddTask(gomock.Any(), gomock.Any()).
					DoAndReturn(tt.mockAddTask).
					Times(len(tt.receipts))
			}

			service := &Service{
				receiptRepo: receiptRepo,
				workerPool:  workerPool,
				limit:       1000,
			}

			logger := zap.NewExample()
			zap.ReplaceGlobals(logger)

			service.processReceipts(context.Background())
		})
	}
}

func TestService_handleReceipt(t *testing.T) {
	testCases := []struct {
		name          string
		receipt       domain.Receipt
		httpStatus    int
		responseBody  string
		expectedError string
		cancelContext bool
		retryError    error
		retryHeaders  http.Header
		addItemsErr   error
		financialsErr error
	}{
		{
			name:         "Successful parse",
			receipt:      domain.Receipt{ID: 1, ImageURL: "https://img/1.jpg", Status: domain.ReceiptStatusPending},
			httpStatus:   http.StatusOK,
			responseBody: `{"merchant_name":"Diner","total_amount":120,"tip_amount":12,"tax_amount":8,"items":[{"name":"Burger","price":25,"quantity":2}]}`,
		},
		{
			name:          "Context canceled",
			receipt:       domain.Receipt{ID: 2, ImageURL: "https://img/2.jpg"},
			expectedError: context.Canceled.Error(),
			cancelContext: true,
		},
		{
			name:          "Failed parse after retries",
			receipt:       domain.Receipt{ID: 3, ImageURL: "https://img/3.jpg"},
			httpStatus:    http.StatusInternalServerError,
			expectedError: "failed to parse receipt 3 after 3 retries: server error",
			retryError:    errors.New("server error"),
		},
		{
			name:          "Receipt still unprocessed after retries",
			receipt:       domain.Receipt{ID: 4, ImageURL: "https://img/4.jpg"},
			httpStatus:    http.StatusNoContent,
			expectedError: "receipt 4 still unprocessed after 3 retries",
		},
		{
			name:          "Unexpected status code",
			receipt:       domain.Receipt{ID: 5, ImageURL: "https://img/5.jpg"},
			httpStatus:    http.StatusTeapot,
			expectedError: "unexpected status code",
		},
		{
			name:         "Rate limit handling",
			receipt:      domain.Receipt{ID: 6, ImageURL: "https://img/6.jpg"},
			httpStatus:   http.StatusTooManyRequests,
			retryHeaders: http.Header{"Retry-After": []string{"1"}},
		},
		{
			name:          "Invalid response body",
			receipt:       domain.Receipt{ID: 7, ImageURL: "https://img/7.jpg"},
			httpStatus:    http.StatusOK,
			responseBody:  `{invalid json}`,
			expectedError: "failed to parse response body: invalid character 'i' looking for beginning of object key string",
		},
		{
			name:         "Parser returned no items",
			receipt:      domain.Receipt{ID: 8, ImageURL: "https://img/8.jpg"},
			httpStatus:   http.StatusOK,
			responseBody: `{"merchant_name":"Diner","total_amount":0,"items":[]}`,
		},
		{
			name:          "Failed to store items",
			receipt:       domain.Receipt{ID: 9, ImageURL: "https://img/9.jpg"},
			httpStatus:    http.StatusOK,
			responseBody:  `{"merchant_name":"Diner","total_amount":50,"items":[{"name":"Salad","price":10,"quantity":5}]}`,
			addItemsErr:   errors.New("db error"),
			expectedError: "failed to store parsed items for receipt 9: db error",
		},
		{
			name:          "Failed to update financials",
			receipt:       domain.Receipt{ID: 10, ImageURL: "https://img/10.jpg"},
			httpStatus:    http.StatusOK,
			responseBody:  `{"merchant_name":"Diner","total_amount":50,"items":[{"name":"Salad","price":10,"quantity":5}]}`,
			financialsErr: errors.New("db error"),
			expectedError: "failed to update receipt 10 financials: db error",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			service, receiptRepo, client := NewMock(t)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if tt.cancelContext {
				cancel()
			} else if tt.retryError != nil {
				client.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tt.httpStatus, []byte(tt.responseBody), http.Header{}, tt.retryError).Times(3)
			} else {
				switch tt.httpStatus {
				case http.StatusNoContent, http.StatusTooManyRequests:
					headers := tt.retryHeaders
					if headers == nil {
						headers = http.Header{}
					}
					client.EXPECT().
						Get(gomock.Any(), gomock.Any()).
						Return(tt.httpStatus, []byte(tt.responseBody), headers, nil).
						Times(3)
				default:
					client.EXPECT().
						Get(gomock.Any(), gomock.Any()).
						Return(tt.httpStatus, []byte(tt.responseBody), http.Header{}, nil).
						Times(1)
				}
			}

			if tt.httpStatus == http.StatusOK && tt.expectedError == "" || tt.addItemsErr != nil || tt.financialsErr != nil {
				if tt.name != "Parser returned no items" {
					receiptRepo.EXPECT().
						AddItems(gomock.Any(), tt.receipt.ID, gomock.Any()).
						DoAndReturn(func(_ context.Context, receiptID int64, items []domain.ReceiptItem) error {
							assert.NotEmpty(t, items)
							assert.Equal(t, receiptID, items[0].ReceiptID)
							return tt.addItemsErr
						}).
						Times(1)
				}
				if tt.addItemsErr == nil && tt.name != "Parser returned no items" {
					receiptRepo.EXPECT().
						UpdateFinancials(gomock.Any(), tt.receipt.ID, "Diner", gomock.Any(), gomock.Any(), gomock.Any()).
						Return(tt.financialsErr).
						Times(1)
				}
			}

			err := service.handleReceipt(ctx, tt.receipt)

			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_applyParseResult(t *testing.T) {
	service, receiptRepo, _ := NewMock(t)

	receipt := domain.Receipt{ID: 17, TotalAmount: 42.5, Status: domain.ReceiptStatusPending}

	t.Run("Keeps stored total when parser omits it", func(t *testing.T) {
		respBody := []byte(`{"merchant_name":"Corner Cafe","total_amount":0,"items":[{"name":"Coffee","price":4.5,"quantity":1}]}`)

		receiptRepo.EXPECT().AddItems(gomock.Any(), int64(17), gomock.Any()).Return(nil)
		receiptRepo.EXPECT().
			UpdateFinancials(gomock.Any(), int64(17), "Corner Cafe", 42.5, 0.0, 0.0).
			Return(nil)

		err := service.applyParseResult(context.Background(), receipt, respBody)
		assert.NoError(t, err)
	})

	t.Run("Uses parser total when present", func(t *testing.T) {
		respBody := []byte(`{"merchant_name":"Corner Cafe","total_amount":55.0,"tip_amount":5,"tax_amount":4,"items":[{"name":"Coffee","price":4.5,"quantity":1}]}`)

		receiptRepo.EXPECT().AddItems(gomock.Any(), int64(17), gomock.Any()).Return(nil)
		receiptRepo.EXPECT().
			UpdateFinancials(gomock.Any(), int64(17), "Corner Cafe", 55.0, 5.0, 4.0).
			Return(nil)

		err := service.applyParseResult(context.Background(), receipt, respBody)
		assert.NoError(t, err)
	})
}

func TestService_waitForRateLimit(t *testing.T) {
	service, _, _ := NewMock(t)

	receipt := domain.Receipt{ID: 17}
	attempt := 1

	headers := http.Header{}
	headers.Set("Retry-After", "1")

	start := time.Now()
	service.waitForRateLimit(receipt, headers, attempt)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 1*time.Second)
	assert.LessOrEqual(t, elapsed, 2*time.Second)

	headers = http.Header{}
	start = time.Now()
	service.waitForRateLimit(receipt, headers, attempt)
	elapsed = time.Since(start)

	assert.GreaterOrEqual(t, elapsed, retryInterval*time.Duration(attempt))
	assert.LessOrEqual(t, elapsed, retryInterval*time.Duration(attempt)+time.Second)
}
