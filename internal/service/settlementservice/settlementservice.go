package settlementservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/internal/notification"
	"github.com/dmarkhas/splitmate/internal/service/ledgerservice"
	"github.com/dmarkhas/splitmate/pkg/money"
	"go.uber.org/zap"
)

type Claims interface {
	ComputeOwed(ctx context.Context, receiptID int64, userID string) (float64, error)
	MarkPaid(ctx context.Context, receiptID int64, userID string, at time.Time) (int64, error)
	AllItemsClaimed(ctx context.Context, receiptID int64) (bool, error)
}

type Ledger interface {
	GetBalance(ctx context.Context, userID string) (float64, error)
	Transfer(ctx context.Context, req ledgerservice.TransferRequest) error
}

type ReceiptRepo interface {
	GetUploadedBy(ctx context.Context, receiptID int64) (string, error)
	GetPaidAmount(ctx context.Context, receiptID int64, userID string) (float64, error)
	RecordPayment(ctx context.Context, receiptID int64, userID string, amount float64) error
	GetAcceptedParticipants(ctx context.Context, receiptID int64) ([]domain.ReceiptParticipant, error)
	GetByID(ctx context.Context, receiptID int64) (*domain.Receipt, error)
	UpdateReceiptStatus(ctx context.Context, receiptID int64, status string) error
}

type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
}

type Publisher interface {
	Publish(ctx context.Context, event notification.Event)
}

type Service struct {
	claims          Claims
	ledger          Ledger
	receiptRepo     ReceiptRepo
	transactionRepo TransactionRepo
	events          Publisher
}

func New(claims Claims, ledger Ledger, receiptRepo ReceiptRepo, transactionRepo TransactionRepo, events Publisher) *Service {
	return &Service{
		claims:          claims,
		ledger:          ledger,
		receiptRepo:     receiptRepo,
		transactionRepo: transactionRepo,
		events:          events,
	}
}

type PaymentResult struct {
	Owed      float64
	Paid      float64
	Remaining float64
	Completed bool
}

// PayReceipt settles the user's outstanding share of a receipt: it transfers
// the remaining owed amount to the uploader, logs a transaction record,
// records the payment against the participant row, marks the user's claims
// paid, and checks whether the receipt is now fully settled.
//
// The balance ledger is the source of truth. If recording the payment fails
// after the transfer succeeded, the transfer is fully reversed; if only the
// transaction audit record fails, the payment stands and the failure is
// logged.
func (s *Service) PayReceipt(ctx context.Context, receiptID int64, userID string) (*PaymentResult, error) {
	owed, err := s.claims.ComputeOwed(ctx, receiptID, userID)
	if err != nil {
		return nil, fmt.Errorf("can't compute owed amount: %w", err)
	}

	alreadyPaid, err := s.receiptRepo.GetPaidAmount(ctx, receiptID, userID)
	if err != nil {
		return nil, fmt.Errorf("can't get paid amount: %w", err)
	}

	remaining := money.Round(owed - alreadyPaid)
	if remaining <= 0 {
		return nil, domain.ErrNothingOwed
	}

	// Precheck for a precise error before touching the ledger; the ledger
	// enforces the same invariant under its row lock.
	balance, err := s.ledger.GetBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("can't get payer balance: %w", err)
	}
	if balance < remaining {
		return nil, domain.ErrInsufficientBalance
	}

	uploader, err := s.receiptRepo.GetUploadedBy(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("can't resolve receipt uploader: %w", err)
	}

	refID := fmt.Sprintf("%d", receiptID)
	description := fmt.Sprintf("payment for receipt %d", receiptID)
	err = s.ledger.Transfer(ctx, ledgerservice.TransferRequest{
		FromUserID:    userID,
		ToUserID:      uploader,
		Amount:        remaining,
		DebitType:     domain.BalanceTypePaymentSent,
		CreditType:    domain.BalanceTypePaymentReceived,
		Description:   description,
		ReferenceID:   refID,
		ReferenceType: "receipt",
	})
	if err != nil {
		return nil, err
	}

	// Best-effort audit record; balances already moved and stay the truth.
	if _, txErr := s.transactionRepo.Create(ctx, &domain.Transaction{
		FromUserID:      userID,
		ToUserID:        uploader,
		Amount:          remaining,
		TransactionType: domain.TransactionTypeReceiptPayment,
		Description:     description,
		Status:          domain.TransactionStatusCompleted,
		RelatedEntityID: refID,
	}); txErr != nil {
		zap.L().Warn("failed to create transaction record",
			zap.Int64("receipt", receiptID), zap.Error(txErr))
	}

	if err := s.receiptRepo.RecordPayment(ctx, receiptID, userID, remaining); err != nil {
		// An unrecorded payment would corrupt every future owed/paid
		// reconciliation, so undo the transfer entirely.
		zap.L().Error("failed to record payment, reversing transfer",
			zap.Int64("receipt", receiptID), zap.String("user", userID), zap.Error(err))
		reverseErr := s.ledger.Transfer(ctx, ledgerservice.TransferRequest{
			FromUserID:    uploader,
			ToUserID:      userID,
			Amount:        remaining,
			DebitType:     domain.BalanceTypeRefund,
			CreditType:    domain.BalanceTypeRefund,
			Description:   fmt.Sprintf("refund: %s (recording error)", description),
			ReferenceID:   refID,
			ReferenceType: "receipt",
		})
		if reverseErr != nil {
			zap.L().Error("CRITICAL: payment reversal failed, ledger and receipt state diverged",
				zap.Int64("receipt", receiptID), zap.String("user", userID), zap.Error(reverseErr))
			return nil, fmt.Errorf("payment recording failed and reversal failed: %w", errors.Join(err, reverseErr))
		}
		return nil, fmt.Errorf("payment recording failed, transfer reversed: %w", err)
	}

	now := time.Now()
	if _, err := s.claims.MarkPaid(ctx, receiptID, userID, now); err != nil {
		zap.L().Warn("failed to mark claims paid after payment",
			zap.Int64("receipt", receiptID), zap.String("user", userID), zap.Error(err))
	}

	completed, err := s.CheckAndComplete(ctx, receiptID)
	if err != nil {
		zap.L().Warn("completion check failed after payment",
			zap.Int64("receipt", receiptID), zap.Error(err))
	}

	s.events.Publish(ctx, notification.Event{
		Type:      notification.EventPaymentReceived,
		ReceiptID: receiptID,
		UserID:    userID,
		Amount:    remaining,
	})

	return &PaymentResult{
		Owed:      owed,
		Paid:      money.Round(alreadyPaid + remaining),
		Remaining: 0,
		Completed: completed,
	}, nil
}

const defaultTransactionLimit = 100

// Transactions lists payment transactions the user sent or received,
// newest first.
func (s *Service) Transactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	return s.transactionRepo.ListForUser(ctx, userID, limit)
}

// CheckAndComplete flips the receipt to completed once every item is fully
// claimed and every accepted participant's paid amount covers their owed
// amount within one cent. Returns whether a transition occurred.
func (s *Service) CheckAndComplete(ctx context.Context, receiptID int64) (bool, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return false, err
	}
	if receipt.Status == domain.ReceiptStatusCompleted {
		return false, nil
	}

	allClaimed, err := s.claims.AllItemsClaimed(ctx, receiptID)
	if err != nil {
		return false, err
	}
	if !allClaimed {
		return false, nil
	}

	participants, err := s.receiptRepo.GetAcceptedParticipants(ctx, receiptID)
	if err != nil {
		return false, err
	}
	if len(participants) == 0 {
		return false, nil
	}

	for _, p := range participants {
		owed, err := s.claims.ComputeOwed(ctx, receiptID, p.UserID)
		if err != nil {
			return false, err
		}
		if !money.Covers(p.PaidAmount, owed) {
			return false, nil
		}
	}

	if err := s.receiptRepo.UpdateReceiptStatus(ctx, receiptID, domain.ReceiptStatusCompleted); err != nil {
		return false, err
	}

	zap.L().Info("receipt fully settled", zap.Int64("receipt", receiptID))
	s.events.Publish(ctx, notification.Event{
		Type:      notification.EventReceiptCompleted,
		ReceiptID: receiptID,
	})
	return true, nil
}
