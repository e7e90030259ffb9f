package claims

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/internal/dto"
	"github.com/dmarkhas/splitmate/internal/service/claimservice"
	"github.com/dmarkhas/splitmate/pkg/auth"
	"github.com/dmarkhas/splitmate/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	Claim(ctx context.Context, itemID int64, userID string, quantity int) error
	Unclaim(ctx context.Context, itemID int64, userID string) error
	ComputeOwed(ctx context.Context, receiptID int64, userID string) (float64, error)
}

type ClaimHandler struct {
	claimService Service
}

func New(claimService Service) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
	}
}

// Claim godoc
//
//	@Summary		Claim units of a receipt item
//	@Description	Declare how many units of an item the user will pay for. Claiming zero units removes the claim.
//	@Tags			Claims
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Receipt ID"
//	@Param			itemID	path		int						true	"Item ID"
//	@Param			request	body		dto.ClaimItemRequestDTO	true	"Claim payload"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Item not found"
//	@Failure		409		{object}	utils.Response	"Capacity exceeded or item already paid"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/receipts/{id}/items/{itemID}/claim [post]
func (h *ClaimHandler) Claim(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var req dto.ClaimItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.claimService.Claim(r.Context(), itemID, userID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, claimservice.ErrNegativeQuantity):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Item not found")
		case errors.Is(err, domain.ErrAlreadyPaid):
			utils.RespondWithError(w, http.StatusConflict, "Item already paid for")
		case errors.Is(err, domain.ErrCapacityExceeded):
			utils.RespondWithError(w, http.StatusConflict, "Not enough unclaimed units left")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Claim saved"})
}

// Unclaim godoc
//
//	@Summary		Remove a claim on a receipt item
//	@Description	Release the user's claim on an item. Removing a claim that does not exist is a no-op.
//	@Tags			Claims
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id		path		int	true	"Receipt ID"
//	@Param			itemID	path		int	true	"Item ID"
//	@Success		200		{object}	utils.Response
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		409		{object}	utils.Response	"Item already paid"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/receipts/{id}/items/{itemID}/claim [delete]
func (h *ClaimHandler) Unclaim(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	if err := h.claimService.Unclaim(r.Context(), itemID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyPaid):
			utils.RespondWithError(w, http.StatusConflict, "Item already paid for")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Claim removed"})
}

// GetOwed godoc
//
//	@Summary		Get owed amount for a receipt
//	@Description	Compute how much the user owes on a receipt: claimed item subtotal plus a proportional share of tax and tip.
//	@Tags			Claims
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Receipt ID"
//	@Success		200	{object}	dto.OwedAmountResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Receipt not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/receipts/{id}/owed [get]
func (h *ClaimHandler) GetOwed(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)
	receiptID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid receipt id")
		return
	}

	owed, err := h.claimService.ComputeOwed(r.Context(), receiptID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Receipt not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.OwedAmountResponseDTO{
		ReceiptID: receiptID,
		Owed:      owed,
	})
}
