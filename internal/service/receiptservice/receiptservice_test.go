package receiptservice

import (
	"context"
	"errors"
	"testing"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/internal/notification"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockReceiptRepo, *MockPublisher) {
	ctrl := gomock.NewController(t)
	receiptRepo := NewMockReceiptRepo(ctrl)
	events := NewMockPublisher(ctrl)
	service := New(receiptRepo, events)
	defer ctrl.Finish()
	return service, receiptRepo, events
}

func TestCreate(t *testing.T) {
	receipt := &domain.Receipt{
		UploadedBy:   "uploader",
		MerchantName: "Corner Deli",
		TotalAmount:  42.0,
	}
	participants := []string{"uploader", "user-2", "user-3"}

	tests := []struct {
		name          string
		receipt       *domain.Receipt
		prepareMock   func(receiptRepo *MockReceiptRepo, events *MockPublisher)
		expectedError bool
	}{
		{
			name:    "Creation notifies everyone but the uploader",
			receipt: receipt,
			prepareMock: func(receiptRepo *MockReceiptRepo, events *MockPublisher) {
				created := *receipt
				created.ID = 17
				created.Status = domain.ReceiptStatusPending
				receiptRepo.EXPECT().CreateReceipt(gomock.Any(), receipt, participants).Return(&created, nil)
				events.EXPECT().Publish(gomock.Any(), notification.Event{
					Type:      notification.EventReceiptShared,
					ReceiptID: 17,
					UserID:    "user-2",
				})
				events.EXPECT().Publish(gomock.Any(), notification.Event{
					Type:      notification.EventReceiptShared,
					ReceiptID: 17,
					UserID:    "user-3",
				})
			},
		},
		{
			name:          "Missing uploader rejected",
			receipt:       &domain.Receipt{MerchantName: "Corner Deli"},
			expectedError: true,
		},
		{
			name:    "Repository failure propagates without notifications",
			receipt: receipt,
			prepareMock: func(receiptRepo *MockReceiptRepo, events *MockPublisher) {
				receiptRepo.EXPECT().CreateReceipt(gomock.Any(), receipt, participants).
					Return(nil, errors.New("insert failed"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, receiptRepo, events := NewMock(t)
			if tt.prepareMock != nil {
				tt.prepareMock(receiptRepo, events)
			}

			created, err := service.Create(context.Background(), tt.receipt, participants)
			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, created)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, int64(17), created.ID)
			assert.Equal(t, domain.ReceiptStatusPending, created.Status)
		})
	}
}

func TestGet(t *testing.T) {
	receipt := &domain.Receipt{ID: 17, UploadedBy: "uploader"}

	tests := []struct {
		name          string
		userID        string
		prepareMock   func(receiptRepo *MockReceiptRepo)
		expectedError error
	}{
		{
			name:   "Uploader sees the receipt without a participant row",
			userID: "uploader",
			prepareMock: func(receiptRepo *MockReceiptRepo) {
				receiptRepo.EXPECT().GetByID(gomock.Any(), int64(17)).Return(receipt, nil)
			},
		},
		{
			name:   "Participant sees the receipt",
			userID: "user-2",
			prepareMock: func(receiptRepo *MockReceiptRepo) {
				receiptRepo.EXPECT().GetByID(gomock.Any(), int64(17)).Return(receipt, nil)
				receiptRepo.EXPECT().GetParticipantStatus(gomock.Any(), int64(17), "user-2").
					Return(domain.ParticipantStatusAccepted, nil)
			},
		},
		{
			name:   "Outsider is denied",
			userID: "stranger",
			prepareMock: func(receiptRepo *MockReceiptRepo) {
				receiptRepo.EXPECT().GetByID(gomock.Any(), int64(17)).Return(receipt, nil)
				receiptRepo.EXPECT().GetParticipantStatus(gomock.Any(), int64(17), "stranger").
					Return("", domain.ErrNotFound)
			},
			expectedError: ErrAccessDenied,
		},
		{
			name:   "Unknown receipt",
			userID: "uploader",
			prepareMock: func(receiptRepo *MockReceiptRepo) {
				receiptRepo.EXPECT().GetByID(gomock.Any(), int64(17)).Return(nil, domain.ErrNotFound)
			},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, receiptRepo, _ := NewMock(t)
			tt.prepareMock(receiptRepo)

			got, err := service.Get(context.Background(), 17, tt.userID)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, receipt, got)
		})
	}
}

func TestAccept(t *testing.T) {
	tests := []struct {
		name          string
		prepareMock   func(receiptRepo *MockReceiptRepo, events *MockPublisher)
		expectedError error
	}{
		{
			name: "Pending invitation accepted",
			prepareMock: func(receiptRepo *MockReceiptRepo, events *MockPublisher) {
				receiptRepo.EXPECT().GetParticipantStatus(gomock.Any(), int64(17), "user-2").
					Return(domain.ParticipantStatusPending, nil)
				receiptRepo.EXPECT().UpdateParticipantStatus(gomock.Any(), int64(17), "user-2", domain.ParticipantStatusAccepted).
					Return(nil)
				events.EXPECT().Publish(gomock.Any(), notification.Event{
					Type:      notification.EventReceiptAccepted,
					ReceiptID: 17,
					UserID:    "user-2",
				})
			},
		},
		{
			name: "Already accepted cannot accept again",
			prepareMock: func(receiptRepo *MockReceiptRepo, events *MockPublisher) {
				receiptRepo.EXPECT().GetParticipantStatus(gomock.Any(), int64(17), "user-2").
					Return(domain.ParticipantStatusAccepted, nil)
			},
			expectedError: ErrNotPending,
		},
		{
			name: "Non-participant",
			prepareMock: func(receiptRepo *MockReceiptRepo, events *MockPublisher) {
				receiptRepo.EXPECT().GetParticipantStatus(gomock.Any(), int64(17), "user-2").
					Return("", domain.ErrNotFound)
			},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, receiptRepo, events := NewMock(t)
			tt.prepareMock(receiptRepo, events)

			err := service.Accept(context.Background(), 17, "user-2")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDecline(t *testing.T) {
	service, receiptRepo, events := NewMock(t)

	receiptRepo.EXPECT().GetParticipantStatus(gomock.Any(), int64(17), "user-2").
		Return(domain.ParticipantStatusPending, nil)
	receiptRepo.EXPECT().UpdateParticipantStatus(gomock.Any(), int64(17), "user-2", domain.ParticipantStatusDeclined).
		Return(nil)
	events.EXPECT().Publish(gomock.Any(), notification.Event{
		Type:      notification.EventReceiptDeclined,
		ReceiptID: 17,
		UserID:    "user-2",
	})

	assert.NoError(t, service.Decline(context.Background(), 17, "user-2"))

	receiptRepo.EXPECT().GetParticipantStatus(gomock.Any(), int64(17), "user-2").
		Return(domain.ParticipantStatusDeclined, nil)
	assert.ErrorIs(t, service.Decline(context.Background(), 17, "user-2"), ErrNotPending)
}

func TestListings(t *testing.T) {
	service, receiptRepo, _ := NewMock(t)

	pending := []domain.Receipt{{ID: 1}, {ID: 2}}
	receiptRepo.EXPECT().GetPendingForUser(gomock.Any(), "user-2").Return(pending, nil)
	got, err := service.Pending(context.Background(), "user-2")
	assert.NoError(t, err)
	assert.Equal(t, pending, got)

	completed := []domain.Receipt{{ID: 3, Status: domain.ReceiptStatusCompleted}}
	receiptRepo.EXPECT().GetCompletedForUser(gomock.Any(), "user-2").Return(completed, nil)
	got, err = service.Completed(context.Background(), "user-2")
	assert.NoError(t, err)
	assert.Equal(t, completed, got)
}
