package receiptservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/internal/notification"
)

var (
	ErrAccessDenied  = errors.New("user is not a participant of this receipt")
	ErrNotPending    = errors.New("participation request is not pending")
	ErrNoParticipant = errors.New("no participants supplied")
)

type ReceiptRepo interface {
	CreateReceipt(ctx context.Context, receipt *domain.Receipt, participantIDs []string) (*domain.Receipt, error)
	GetByID(ctx context.Context, receiptID int64) (*domain.Receipt, error)
	GetParticipantStatus(ctx context.Context, receiptID int64, userID string) (string, error)
	UpdateParticipantStatus(ctx context.Context, receiptID int64, userID string, status string) error
	GetPendingForUser(ctx context.Context, userID string) ([]domain.Receipt, error)
	GetCompletedForUser(ctx context.Context, userID string) ([]domain.Receipt, error)
}

type Publisher interface {
	Publish(ctx context.Context, event notification.Event)
}

type Service struct {
	receiptRepo ReceiptRepo
	events      Publisher
}

func New(receiptRepo ReceiptRepo, events Publisher) *Service {
	return &Service{receiptRepo: receiptRepo, events: events}
}

// Create stores a new receipt and shares it with the given participants.
// The uploader joins as accepted; everyone else starts pending.
func (s *Service) Create(ctx context.Context, receipt *domain.Receipt, participantIDs []string) (*domain.Receipt, error) {
	if receipt.UploadedBy == "" {
		return nil, fmt.Errorf("receipt has no uploader")
	}
	if receipt.Status == "" {
		receipt.Status = domain.ReceiptStatusPending
	}

	created, err := s.receiptRepo.CreateReceipt(ctx, receipt, participantIDs)
	if err != nil {
		return nil, fmt.Errorf("can't create receipt: %w", err)
	}

	for _, id := range participantIDs {
		if id == created.UploadedBy {
			continue
		}
		s.events.Publish(ctx, notification.Event{
			Type:      notification.EventReceiptShared,
			ReceiptID: created.ID,
			UserID:    id,
		})
	}
	return created, nil
}

// Get returns a receipt with its items, restricted to its participants.
func (s *Service) Get(ctx context.Context, receiptID int64, userID string) (*domain.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.UploadedBy != userID {
		if _, err := s.receiptRepo.GetParticipantStatus(ctx, receiptID, userID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, ErrAccessDenied
			}
			return nil, err
		}
	}
	return receipt, nil
}

// Accept confirms the user's participation. Only a pending invitation can
// be accepted.
func (s *Service) Accept(ctx context.Context, receiptID int64, userID string) error {
	if err := s.respond(ctx, receiptID, userID, domain.ParticipantStatusAccepted); err != nil {
		return err
	}
	s.events.Publish(ctx, notification.Event{
		Type:      notification.EventReceiptAccepted,
		ReceiptID: receiptID,
		UserID:    userID,
	})
	return nil
}

// Decline rejects the user's participation. Only a pending invitation can
// be declined.
func (s *Service) Decline(ctx context.Context, receiptID int64, userID string) error {
	if err := s.respond(ctx, receiptID, userID, domain.ParticipantStatusDeclined); err != nil {
		return err
	}
	s.events.Publish(ctx, notification.Event{
		Type:      notification.EventReceiptDeclined,
		ReceiptID: receiptID,
		UserID:    userID,
	})
	return nil
}

func (s *Service) respond(ctx context.Context, receiptID int64, userID string, status string) error {
	current, err := s.receiptRepo.GetParticipantStatus(ctx, receiptID, userID)
	if err != nil {
		return err
	}
	if current != domain.ParticipantStatusPending {
		return ErrNotPending
	}
	return s.receiptRepo.UpdateParticipantStatus(ctx, receiptID, userID, status)
}

// Pending lists receipts the user has been invited to but has not yet
// responded to.
func (s *Service) Pending(ctx context.Context, userID string) ([]domain.Receipt, error) {
	return s.receiptRepo.GetPendingForUser(ctx, userID)
}

// Completed lists fully settled receipts the user participated in.
func (s *Service) Completed(ctx context.Context, userID string) ([]domain.Receipt, error) {
	return s.receiptRepo.GetCompletedForUser(ctx, userID)
}
