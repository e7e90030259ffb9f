package claimservice

import (
	"context"
	"errors"
	"time"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/pkg/money"
	"go.uber.org/zap"
)

type AssignmentRepo interface {
	ClaimItem(ctx context.Context, itemID int64, userID string, quantity int) error
	UnclaimItem(ctx context.Context, itemID int64, userID string) error
	IsItemPaid(ctx context.Context, itemID int64) (bool, error)
	GetAssignmentsForUser(ctx context.Context, receiptID int64, userID string) (map[int64]int, error)
	GetAllAssignments(ctx context.Context, receiptID int64) ([]domain.ItemAssignment, error)
	MarkPaid(ctx context.Context, receiptID int64, userID string, at time.Time) (int64, error)
	AllItemsClaimed(ctx context.Context, receiptID int64) (bool, error)
}

type ReceiptRepo interface {
	GetByID(ctx context.Context, receiptID int64) (*domain.Receipt, error)
	GetItems(ctx context.Context, receiptID int64) ([]domain.ReceiptItem, error)
}

var ErrNegativeQuantity = errors.New("quantity cannot be negative")

type Service struct {
	assignmentRepo AssignmentRepo
	receiptRepo    ReceiptRepo
}

func New(assignmentRepo AssignmentRepo, receiptRepo ReceiptRepo) *Service {
	return &Service{
		assignmentRepo: assignmentRepo,
		receiptRepo:    receiptRepo,
	}
}

// Claim sets the caller's claim on an item to quantity. A quantity of zero
// clears the claim. Capacity conflicts surface as domain.ErrCapacityExceeded,
// claims against paid items as domain.ErrAlreadyPaid.
func (s *Service) Claim(ctx context.Context, itemID int64, userID string, quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	if err := s.assignmentRepo.ClaimItem(ctx, itemID, userID, quantity); err != nil {
		if !errors.Is(err, domain.ErrCapacityExceeded) && !errors.Is(err, domain.ErrAlreadyPaid) {
			zap.L().Error("failed to claim item",
				zap.Int64("item", itemID), zap.String("user", userID), zap.Error(err))
		}
		return err
	}
	return nil
}

// Unclaim removes the caller's claim on an item. Unclaiming an item the user
// never claimed is a no-op success.
func (s *Service) Unclaim(ctx context.Context, itemID int64, userID string) error {
	if err := s.assignmentRepo.UnclaimItem(ctx, itemID, userID); err != nil {
		if !errors.Is(err, domain.ErrAlreadyPaid) {
			zap.L().Error("failed to unclaim item",
				zap.Int64("item", itemID), zap.String("user", userID), zap.Error(err))
		}
		return err
	}
	return nil
}

func (s *Service) Assignments(ctx context.Context, receiptID int64, userID string) (map[int64]int, error) {
	assignments, err := s.assignmentRepo.GetAssignmentsForUser(ctx, receiptID, userID)
	if err != nil {
		zap.L().Error("failed to fetch assignments", zap.Error(err))
		return nil, err
	}
	return assignments, nil
}

// ComputeOwed calculates the user's share of a receipt: the price of their
// claimed quantities plus tax and tip allocated in proportion to their share
// of the item subtotal. The result is rounded half-up to cents.
func (s *Service) ComputeOwed(ctx context.Context, receiptID int64, userID string) (float64, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return 0, err
	}
	if len(receipt.Items) == 0 {
		return 0, nil
	}

	assignments, err := s.assignmentRepo.GetAssignmentsForUser(ctx, receiptID, userID)
	if err != nil {
		return 0, err
	}
	if len(assignments) == 0 {
		return 0, nil
	}

	var totalSubtotal, assignedSubtotal float64
	for _, item := range receipt.Items {
		totalSubtotal += item.Price * float64(item.Quantity)
		if qty, ok := assignments[item.ID]; ok && qty > 0 {
			assignedSubtotal += item.Price * float64(qty)
		}
	}

	if totalSubtotal == 0 {
		return 0, nil
	}

	proportion := assignedSubtotal / totalSubtotal
	owed := assignedSubtotal + receipt.TaxAmount*proportion + receipt.TipAmount*proportion
	return money.Round(owed), nil
}

// MarkPaid stamps all of the user's unpaid claims on the receipt as paid.
func (s *Service) MarkPaid(ctx context.Context, receiptID int64, userID string, at time.Time) (int64, error) {
	marked, err := s.assignmentRepo.MarkPaid(ctx, receiptID, userID, at)
	if err != nil {
		zap.L().Error("failed to mark claims paid",
			zap.Int64("receipt", receiptID), zap.String("user", userID), zap.Error(err))
		return 0, err
	}
	return marked, nil
}

func (s *Service) AllItemsClaimed(ctx context.Context, receiptID int64) (bool, error) {
	return s.assignmentRepo.AllItemsClaimed(ctx, receiptID)
}

func (s *Service) IsItemPaid(ctx context.Context, itemID int64) (bool, error) {
	return s.assignmentRepo.IsItemPaid(ctx, itemID)
}
