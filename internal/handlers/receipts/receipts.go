package receipts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/internal/dto"
	"github.com/dmarkhas/splitmate/internal/service/receiptservice"
	"github.com/dmarkhas/splitmate/pkg/auth"
	"github.com/dmarkhas/splitmate/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	Create(ctx context.Context, receipt *domain.Receipt, participantIDs []string) (*domain.Receipt, error)
	Get(ctx context.Context, receiptID int64, userID string) (*domain.Receipt, error)
	Accept(ctx context.Context, receiptID int64, userID string) error
	Decline(ctx context.Context, receiptID int64, userID string) error
	Pending(ctx context.Context, userID string) ([]domain.Receipt, error)
	Completed(ctx context.Context, userID string) ([]domain.Receipt, error)
}

type ReceiptHandler struct {
	receiptService Service
}

func New(receiptService Service) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
	}
}

// Create godoc
//
//	@Summary		Upload a new receipt
//	@Description	Create a receipt with its line items and share it with the listed participants.
//	@Tags			Receipts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateReceiptRequestDTO	true	"Receipt payload"
//	@Success		201		{object}	dto.ReceiptResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/receipts [post]
func (h *ReceiptHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	var req dto.CreateReceiptRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receipt := &domain.Receipt{
		UploadedBy:   userID,
		MerchantName: req.MerchantName,
		Date:         req.Date,
		TotalAmount:  req.TotalAmount,
		TipAmount:    req.TipAmount,
		TaxAmount:    req.TaxAmount,
		ImageURL:     req.ImageURL,
	}
	for _, item := range req.Items {
		receipt.Items = append(receipt.Items, domain.ReceiptItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Category: item.Category,
		})
	}

	created, err := h.receiptService.Create(r.Context(), receipt, req.ParticipantIDs)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create receipt")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toReceiptDTO(created))
}

// Get godoc
//
//	@Summary		Get a receipt
//	@Description	Get a receipt with its items. Only participants can view it.
//	@Tags			Receipts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Receipt ID"
//	@Success		200	{object}	dto.ReceiptResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Not a participant"
//	@Failure		404	{object}	utils.Response	"Receipt not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/receipts/{id} [get]
func (h *ReceiptHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)
	receiptID, err := parseID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid receipt id")
		return
	}

	receipt, err := h.receiptService.Get(r.Context(), receiptID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Receipt not found")
		case errors.Is(err, receiptservice.ErrAccessDenied):
			utils.RespondWithError(w, http.StatusForbidden, "Not a participant of this receipt")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toReceiptDTO(receipt))
}

// Accept godoc
//
//	@Summary		Accept a receipt invitation
//	@Tags			Receipts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int		true	"Receipt ID"
//	@Success		200	{object}	utils.Response
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"No invitation found"
//	@Failure		409	{object}	utils.Response	"Invitation already answered"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/receipts/{id}/accept [post]
func (h *ReceiptHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.receiptService.Accept, "Receipt accepted")
}

// Decline godoc
//
//	@Summary		Decline a receipt invitation
//	@Tags			Receipts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int		true	"Receipt ID"
//	@Success		200	{object}	utils.Response
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"No invitation found"
//	@Failure		409	{object}	utils.Response	"Invitation already answered"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/receipts/{id}/decline [post]
func (h *ReceiptHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.receiptService.Decline, "Receipt declined")
}

func (h *ReceiptHandler) respond(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64, string) error, message string) {
	userID := r.Context().Value(auth.UserIDKey).(string)
	receiptID, err := parseID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid receipt id")
		return
	}

	if err := fn(r.Context(), receiptID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "No invitation found")
		case errors.Is(err, receiptservice.ErrNotPending):
			utils.RespondWithError(w, http.StatusConflict, "Invitation already answered")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: message})
}

// Pending godoc
//
//	@Summary		List pending receipt invitations
//	@Tags			Receipts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.ReceiptResponseDTO
//	@Success		204	{object}	utils.Response	"No pending receipts"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/receipts/pending [get]
func (h *ReceiptHandler) Pending(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.receiptService.Pending, "No pending receipts")
}

// Completed godoc
//
//	@Summary		List completed receipts
//	@Tags			Receipts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.ReceiptResponseDTO
//	@Success		204	{object}	utils.Response	"No completed receipts"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/receipts/completed [get]
func (h *ReceiptHandler) Completed(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.receiptService.Completed, "No completed receipts")
}

func (h *ReceiptHandler) list(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) ([]domain.Receipt, error), emptyMessage string) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	receipts, err := fn(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch receipts")
		return
	}
	if len(receipts) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, emptyMessage)
		return
	}

	response := make([]dto.ReceiptResponseDTO, len(receipts))
	for i := range receipts {
		response[i] = toReceiptDTO(&receipts[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func toReceiptDTO(receipt *domain.Receipt) dto.ReceiptResponseDTO {
	resp := dto.ReceiptResponseDTO{
		ID:           receipt.ID,
		UploadedBy:   receipt.UploadedBy,
		MerchantName: receipt.MerchantName,
		Date:         receipt.Date,
		TotalAmount:  receipt.TotalAmount,
		TipAmount:    receipt.TipAmount,
		TaxAmount:    receipt.TaxAmount,
		Status:       receipt.Status,
	}
	for _, item := range receipt.Items {
		resp.Items = append(resp.Items, dto.ReceiptItemResponseDTO{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Category: item.Category,
			Paid:     item.PaidBy != nil,
		})
	}
	return resp
}
