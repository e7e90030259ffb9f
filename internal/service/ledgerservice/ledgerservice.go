package ledgerservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/pkg/money"
	"go.uber.org/zap"
)

type BalanceRepo interface {
	GetUserBalance(ctx context.Context, userID string) (float64, error)
	ApplyChange(ctx context.Context, userID string, amount float64, txType, description, referenceID, referenceType string) (*domain.BalanceHistory, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]domain.BalanceHistory, error)
	GetHistoryByType(ctx context.Context, userID, txType string, limit int) ([]domain.BalanceHistory, error)
}

var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrEmptyUserID   = errors.New("user id cannot be empty")
)

const defaultHistoryLimit = 100

type Service struct {
	balanceRepo BalanceRepo
}

func New(balanceRepo BalanceRepo) *Service {
	return &Service{
		balanceRepo: balanceRepo,
	}
}

func (s *Service) GetBalance(ctx context.Context, userID string) (float64, error) {
	balance, err := s.balanceRepo.GetUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return 0, err
	}
	return balance, nil
}

// Credit adds amount to the user's balance and records it in history.
func (s *Service) Credit(ctx context.Context, userID string, amount float64, txType, description, referenceID, referenceType string) (*domain.BalanceHistory, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	record, err := s.balanceRepo.ApplyChange(ctx, userID, money.Round(amount), txType, description, referenceID, referenceType)
	if err != nil {
		zap.L().Error("failed to credit balance", zap.String("user", userID), zap.Error(err))
		return nil, err
	}
	return record, nil
}

// Debit subtracts amount from the user's balance and records it in history
// with a negative sign. Fails with domain.ErrInsufficientBalance if the
// balance cannot cover the amount.
func (s *Service) Debit(ctx context.Context, userID string, amount float64, txType, description, referenceID, referenceType string) (*domain.BalanceHistory, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	record, err := s.balanceRepo.ApplyChange(ctx, userID, -money.Round(amount), txType, description, referenceID, referenceType)
	if err != nil {
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			zap.L().Error("failed to debit balance", zap.String("user", userID), zap.Error(err))
		}
		return nil, err
	}
	return record, nil
}

type TransferRequest struct {
	FromUserID    string
	ToUserID      string
	Amount        float64
	DebitType     string
	CreditType    string
	Description   string
	ReferenceID   string
	ReferenceType string
}

// Transfer moves amount from one user to another as two individually atomic
// steps: debit the sender, then credit the recipient. If the credit fails
// after the debit committed, the debited amount is returned to the sender as
// a compensating refund and the original failure is reported. A refund that
// itself fails leaves money debited but not delivered; that state is logged
// loudly and both errors are surfaced.
func (s *Service) Transfer(ctx context.Context, req TransferRequest) error {
	if req.FromUserID == "" || req.ToUserID == "" {
		return ErrEmptyUserID
	}
	if req.Amount <= 0 {
		return ErrInvalidAmount
	}
	amount := money.Round(req.Amount)

	if _, err := s.balanceRepo.ApplyChange(ctx, req.FromUserID, -amount,
		req.DebitType, req.Description, req.ReferenceID, req.ReferenceType); err != nil {
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			zap.L().Error("transfer debit failed",
				zap.String("from", req.FromUserID), zap.Float64("amount", amount), zap.Error(err))
		}
		return err
	}

	_, err := s.balanceRepo.ApplyChange(ctx, req.ToUserID, amount,
		req.CreditType, req.Description, req.ReferenceID, req.ReferenceType)
	if err == nil {
		return nil
	}
	zap.L().Error("transfer credit failed, refunding sender",
		zap.String("from", req.FromUserID), zap.String("to", req.ToUserID),
		zap.Float64("amount", amount), zap.Error(err))

	refundDesc := fmt.Sprintf("refund: %s (processing error)", req.Description)
	if _, refundErr := s.balanceRepo.ApplyChange(ctx, req.FromUserID, amount,
		domain.BalanceTypeRefund, refundDesc, req.ReferenceID, req.ReferenceType); refundErr != nil {
		// Money was debited but neither delivered nor returned. This needs an
		// operator; it cannot be resolved automatically.
		zap.L().Error("CRITICAL: compensating refund failed, balance inconsistent",
			zap.String("from", req.FromUserID), zap.String("to", req.ToUserID),
			zap.Float64("amount", amount), zap.Error(refundErr))
		return fmt.Errorf("transfer failed and refund failed: %w", errors.Join(err, refundErr))
	}

	return fmt.Errorf("transfer failed, sender refunded: %w", err)
}

func (s *Service) GetHistory(ctx context.Context, userID string, limit int) ([]domain.BalanceHistory, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	history, err := s.balanceRepo.GetHistory(ctx, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch balance history", zap.Error(err))
		return nil, err
	}
	return history, nil
}

func (s *Service) GetHistoryByType(ctx context.Context, userID, txType string, limit int) ([]domain.BalanceHistory, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	history, err := s.balanceRepo.GetHistoryByType(ctx, userID, txType, limit)
	if err != nil {
		zap.L().Error("failed to fetch balance history by type", zap.Error(err))
		return nil, err
	}
	return history, nil
}
