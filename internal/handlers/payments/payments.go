package payments

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/internal/dto"
	"github.com/dmarkhas/splitmate/internal/service/settlementservice"
	"github.com/dmarkhas/splitmate/pkg/auth"
	"github.com/dmarkhas/splitmate/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	PayReceipt(ctx context.Context, receiptID int64, userID string) (*settlementservice.PaymentResult, error)
	Transactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
}

type PaymentHandler struct {
	settlementService Service
}

func New(settlementService Service) *PaymentHandler {
	return &PaymentHandler{
		settlementService: settlementService,
	}
}

// Pay godoc
//
//	@Summary		Pay the user's share of a receipt
//	@Description	Transfer the outstanding owed amount to the uploader and record the payment.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Receipt ID"
//	@Success		200	{object}	dto.PaymentResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		402	{object}	utils.Response	"Insufficient balance"
//	@Failure		404	{object}	utils.Response	"Receipt not found"
//	@Failure		409	{object}	utils.Response	"Nothing owed"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/receipts/{id}/pay [post]
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)
	receiptID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid receipt id")
		return
	}

	result, err := h.settlementService.PayReceipt(r.Context(), receiptID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Receipt not found")
		case errors.Is(err, domain.ErrNothingOwed):
			utils.RespondWithError(w, http.StatusConflict, "Nothing owed on this receipt")
		case errors.Is(err, domain.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, "Insufficient balance")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PaymentResponseDTO{
		ReceiptID: receiptID,
		Owed:      result.Owed,
		Paid:      result.Paid,
		Completed: result.Completed,
	})
}

// Transactions godoc
//
//	@Summary		List payment transactions
//	@Description	List transactions the user sent or received, newest first.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int	false	"Max entries to return"
//	@Success		200		{array}		dto.TransactionResponseDTO
//	@Success		204		{object}	utils.Response	"No transactions found"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/transactions [get]
func (h *PaymentHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	transactions, err := h.settlementService.Transactions(r.Context(), userID, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	if len(transactions) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No transactions found")
		return
	}

	response := make([]dto.TransactionResponseDTO, len(transactions))
	for i, tx := range transactions {
		response[i] = dto.TransactionResponseDTO{
			ID:              tx.ID,
			FromUserID:      tx.FromUserID,
			ToUserID:        tx.ToUserID,
			Amount:          tx.Amount,
			TransactionType: tx.TransactionType,
			Status:          tx.Status,
			CreatedAt:       tx.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
