package balance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/internal/dto"
	"github.com/dmarkhas/splitmate/internal/service/ledgerservice"
	"github.com/dmarkhas/splitmate/pkg/auth"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*BalanceHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authCtx() context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, "user-1")
}

func TestGetBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody dto.BalanceResponseDTO
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().GetBalance(authCtx(), "user-1").Return(100.50, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.BalanceResponseDTO{Balance: 100.50},
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetBalance(authCtx(), "user-1").Return(0.0, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/balance", nil)
			r = r.WithContext(authCtx())
			w := httptest.NewRecorder()
			handler.GetBalance(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.BalanceResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}

func TestDepositHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful deposit",
			body: `{"amount":25.5}`,
			prepareMock: func() {
				service.EXPECT().
					Credit(authCtx(), "user-1", 25.5, domain.BalanceTypeAdjustment, "manual deposit", "", "").
					Return(&domain.BalanceHistory{BalanceAfter: 125.5}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid request body",
			body:          `{"amount":invalid}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name: "Non-positive amount",
			body: `{"amount":-5}`,
			prepareMock: func() {
				service.EXPECT().
					Credit(authCtx(), "user-1", -5.0, domain.BalanceTypeAdjustment, "manual deposit", "", "").
					Return(nil, ledgerservice.ErrInvalidAmount)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "amount must be positive",
		},
		{
			name: "Internal server error",
			body: `{"amount":25.5}`,
			prepareMock: func() {
				service.EXPECT().
					Credit(authCtx(), "user-1", 25.5, domain.BalanceTypeAdjustment, "manual deposit", "", "").
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/balance/deposit", bytes.NewBufferString(tt.body))
			r = r.WithContext(authCtx())
			w := httptest.NewRecorder()

			handler.Deposit(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestWithdrawHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful withdrawal",
			body: `{"amount":25.5}`,
			prepareMock: func() {
				service.EXPECT().
					Debit(authCtx(), "user-1", 25.5, domain.BalanceTypeAdjustment, "manual withdrawal", "", "").
					Return(&domain.BalanceHistory{BalanceAfter: 74.5}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Insufficient balance",
			body: `{"amount":25.5}`,
			prepareMock: func() {
				service.EXPECT().
					Debit(authCtx(), "user-1", 25.5, domain.BalanceTypeAdjustment, "manual withdrawal", "", "").
					Return(nil, domain.ErrInsufficientBalance)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: "insufficient balance",
		},
		{
			name: "Internal server error",
			body: `{"amount":25.5}`,
			prepareMock: func() {
				service.EXPECT().
					Debit(authCtx(), "user-1", 25.5, domain.BalanceTypeAdjustment, "manual withdrawal", "", "").
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/balance/withdraw", bytes.NewBufferString(tt.body))
			r = r.WithContext(authCtx())
			w := httptest.NewRecorder()

			handler.Withdraw(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestGetHistoryHandler(t *testing.T) {
	handler, service := NewMock(t)
	now := time.Now()

	tests := []struct {
		name         string
		target       string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name:   "Successful retrieval",
			target: "/balance/history",
			prepareMock: func() {
				service.EXPECT().GetHistory(authCtx(), "user-1", 0).Return([]domain.BalanceHistory{
					{Amount: 100.0, BalanceBefore: 0, BalanceAfter: 100.0, TransactionType: domain.BalanceTypeAdjustment, Description: "manual deposit", CreatedAt: now},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:   "Type filter uses the filtered listing",
			target: "/balance/history?type=payment_sent&limit=10",
			prepareMock: func() {
				service.EXPECT().GetHistoryByType(authCtx(), "user-1", "payment_sent", 10).Return([]domain.BalanceHistory{
					{Amount: -30.0, TransactionType: domain.BalanceTypePaymentSent, CreatedAt: now},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:   "No history",
			target: "/balance/history",
			prepareMock: func() {
				service.EXPECT().GetHistory(authCtx(), "user-1", 0).Return([]domain.BalanceHistory{}, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:   "Internal server error",
			target: "/balance/history",
			prepareMock: func() {
				service.EXPECT().GetHistory(authCtx(), "user-1", 0).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			r = r.WithContext(authCtx())
			w := httptest.NewRecorder()

			handler.GetHistory(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.BalanceHistoryResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}
