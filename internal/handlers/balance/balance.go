package balance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/internal/dto"
	"github.com/dmarkhas/splitmate/internal/service/ledgerservice"
	"github.com/dmarkhas/splitmate/pkg/auth"
	"github.com/dmarkhas/splitmate/pkg/utils"
)

type Service interface {
	GetBalance(ctx context.Context, userID string) (float64, error)
	Credit(ctx context.Context, userID string, amount float64, txType, description, referenceID, referenceType string) (*domain.BalanceHistory, error)
	Debit(ctx context.Context, userID string, amount float64, txType, description, referenceID, referenceType string) (*domain.BalanceHistory, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]domain.BalanceHistory, error)
	GetHistoryByType(ctx context.Context, userID, txType string, limit int) ([]domain.BalanceHistory, error)
}

type BalanceHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *BalanceHandler {
	return &BalanceHandler{
		ledgerService: ledgerService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Description	Retrieve the current account balance for the authenticated user.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	balance, err := h.ledgerService.GetBalance(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Balance: balance,
	})
}

// Deposit godoc
//
//	@Summary		Deposit funds
//	@Description	Add funds to the authenticated user's balance.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.BalanceChangeRequestDTO	true	"Deposit payload"
//	@Success		200		{object}	dto.BalanceResponseDTO		"Balance after deposit"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/user/balance/deposit [post]
func (h *BalanceHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	var req dto.BalanceChangeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.ledgerService.Credit(r.Context(), userID, req.Amount,
		domain.BalanceTypeAdjustment, "manual deposit", "", "")
	if err != nil {
		switch {
		case errors.Is(err, ledgerservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Balance: entry.BalanceAfter,
	})
}

// Withdraw godoc
//
//	@Summary		Withdraw funds
//	@Description	Remove funds from the authenticated user's balance.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.BalanceChangeRequestDTO	true	"Withdrawal payload"
//	@Success		200		{object}	dto.BalanceResponseDTO		"Balance after withdrawal"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		402		{object}	utils.Response				"Insufficient balance"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/user/balance/withdraw [post]
func (h *BalanceHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	var req dto.BalanceChangeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.ledgerService.Debit(r.Context(), userID, req.Amount,
		domain.BalanceTypeAdjustment, "manual withdrawal", "", "")
	if err != nil {
		switch {
		case errors.Is(err, ledgerservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Balance: entry.BalanceAfter,
	})
}

// GetHistory godoc
//
//	@Summary		Get balance history
//	@Description	Get the balance change history for the authenticated user, newest first. Optional type and limit filters.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Param			type	query		string	false	"Transaction type filter"
//	@Param			limit	query		int		false	"Max entries to return"
//	@Success		200		{array}		dto.BalanceHistoryResponseDTO	"Balance history"
//	@Success		204		{object}	utils.Response					"No history found"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/user/balance/history [get]
func (h *BalanceHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	txType := r.URL.Query().Get("type")

	var history []domain.BalanceHistory
	var err error
	if txType != "" {
		history, err = h.ledgerService.GetHistoryByType(r.Context(), userID, txType, limit)
	} else {
		history, err = h.ledgerService.GetHistory(r.Context(), userID, limit)
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch balance history")
		return
	}

	if len(history) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No history found")
		return
	}

	response := make([]dto.BalanceHistoryResponseDTO, len(history))
	for i, entry := range history {
		response[i] = dto.BalanceHistoryResponseDTO{
			Amount:          entry.Amount,
			BalanceBefore:   entry.BalanceBefore,
			BalanceAfter:    entry.BalanceAfter,
			TransactionType: entry.TransactionType,
			Description:     entry.Description,
			CreatedAt:       entry.CreatedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
