package friends

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmarkhas/splitmate/internal/domain"
	"github.com/dmarkhas/splitmate/internal/dto"
	"github.com/dmarkhas/splitmate/internal/service/friendservice"
	"github.com/dmarkhas/splitmate/pkg/auth"
	"github.com/dmarkhas/splitmate/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	SendRequest(ctx context.Context, userID, friendUsername string) (*domain.Friendship, error)
	Accept(ctx context.Context, friendshipID int64, userID string) error
	Decline(ctx context.Context, friendshipID int64, userID string) error
	ListFriends(ctx context.Context, userID string) ([]domain.Friendship, error)
	ListIncoming(ctx context.Context, userID string) ([]domain.Friendship, error)
}

type FriendHandler struct {
	friendService Service
}

func New(friendService Service) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
	}
}

// SendRequest godoc
//
//	@Summary		Send a friend request
//	@Description	Request friendship with another user by username. Re-requesting after a decline re-opens the request.
//	@Tags			Friends
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.FriendRequestDTO	true	"Friend request payload"
//	@Success		200		{object}	dto.FriendshipResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/friends/requests [post]
func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	var req dto.FriendRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	friendship, err := h.friendService.SendRequest(r.Context(), userID, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, friendservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, friendservice.ErrSelfFriendship):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toFriendshipDTO(friendship))
}

// Accept godoc
//
//	@Summary		Accept a friend request
//	@Tags			Friends
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Friendship ID"
//	@Success		200	{object}	utils.Response
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Not the requested user"
//	@Failure		404	{object}	utils.Response	"Request not found"
//	@Failure		409	{object}	utils.Response	"Request already answered"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/friends/requests/{id}/accept [post]
func (h *FriendHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.friendService.Accept, "Friend request accepted")
}

// Decline godoc
//
//	@Summary		Decline a friend request
//	@Tags			Friends
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Friendship ID"
//	@Success		200	{object}	utils.Response
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Not the requested user"
//	@Failure		404	{object}	utils.Response	"Request not found"
//	@Failure		409	{object}	utils.Response	"Request already answered"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/friends/requests/{id}/decline [post]
func (h *FriendHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.friendService.Decline, "Friend request declined")
}

func (h *FriendHandler) respond(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64, string) error, message string) {
	userID := r.Context().Value(auth.UserIDKey).(string)
	friendshipID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	if err := fn(r.Context(), friendshipID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Request not found")
		case errors.Is(err, friendservice.ErrNotAddressee):
			utils.RespondWithError(w, http.StatusForbidden, "Only the requested user can respond")
		case errors.Is(err, friendservice.ErrNotPending):
			utils.RespondWithError(w, http.StatusConflict, "Request already answered")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: message})
}

// ListFriends godoc
//
//	@Summary		List friends
//	@Description	List accepted friendships in either direction, plus incoming pending requests via the incoming flag.
//	@Tags			Friends
//	@Security		BearerAuth
//	@Produce		json
//	@Param			incoming	query		bool	false	"List incoming pending requests instead"
//	@Success		200			{array}		dto.FriendshipResponseDTO
//	@Success		204			{object}	utils.Response	"No friends found"
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/friends [get]
func (h *FriendHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	var friendships []domain.Friendship
	var err error
	if r.URL.Query().Get("incoming") == "true" {
		friendships, err = h.friendService.ListIncoming(r.Context(), userID)
	} else {
		friendships, err = h.friendService.ListFriends(r.Context(), userID)
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch friends")
		return
	}
	if len(friendships) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No friends found")
		return
	}

	response := make([]dto.FriendshipResponseDTO, len(friendships))
	for i := range friendships {
		response[i] = toFriendshipDTO(&friendships[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toFriendshipDTO(f *domain.Friendship) dto.FriendshipResponseDTO {
	return dto.FriendshipResponseDTO{
		ID:        f.ID,
		UserID:    f.UserID,
		FriendID:  f.FriendID,
		Status:    f.Status,
		CreatedAt: f.CreatedAt,
	}
}
