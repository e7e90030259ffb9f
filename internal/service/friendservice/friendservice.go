package friendservice

import (
	"context"
	"errors"

	"github.com/dmarkhas/splitmate/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrSelfFriendship = errors.New("can't befriend yourself")
	ErrUserNotFound   = errors.New("user not found")
	ErrNotAddressee   = errors.New("only the requested user can respond")
	ErrNotPending     = errors.New("friend request is not pending")
)

type FriendRepo interface {
	Upsert(ctx context.Context, userID, friendID string) (*domain.Friendship, error)
	GetByID(ctx context.Context, friendshipID int64) (*domain.Friendship, error)
	UpdateStatus(ctx context.Context, friendshipID int64, status string) error
	ListFriends(ctx context.Context, userID string) ([]domain.Friendship, error)
	ListIncomingRequests(ctx context.Context, userID string) ([]domain.Friendship, error)
}

type UserRepo interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

type Service struct {
	friendRepo FriendRepo
	userRepo   UserRepo
}

func New(friendRepo FriendRepo, userRepo UserRepo) *Service {
	return &Service{friendRepo: friendRepo, userRepo: userRepo}
}

// SendRequest creates (or revives a declined) friend request to the user
// with the given username.
func (s *Service) SendRequest(ctx context.Context, userID, friendUsername string) (*domain.Friendship, error) {
	friend, err := s.userRepo.FindByUsername(ctx, friendUsername)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if friend == nil {
		return nil, ErrUserNotFound
	}
	if friend.ID == userID {
		return nil, ErrSelfFriendship
	}
	return s.friendRepo.Upsert(ctx, userID, friend.ID)
}

func (s *Service) Accept(ctx context.Context, friendshipID int64, userID string) error {
	return s.respond(ctx, friendshipID, userID, domain.FriendshipStatusAccepted)
}

func (s *Service) Decline(ctx context.Context, friendshipID int64, userID string) error {
	return s.respond(ctx, friendshipID, userID, domain.FriendshipStatusDeclined)
}

func (s *Service) respond(ctx context.Context, friendshipID int64, userID, status string) error {
	friendship, err := s.friendRepo.GetByID(ctx, friendshipID)
	if err != nil {
		return err
	}
	if friendship.FriendID != userID {
		return ErrNotAddressee
	}
	if friendship.Status != domain.FriendshipStatusPending {
		return ErrNotPending
	}
	return s.friendRepo.UpdateStatus(ctx, friendshipID, status)
}

func (s *Service) ListFriends(ctx context.Context, userID string) ([]domain.Friendship, error) {
	return s.friendRepo.ListFriends(ctx, userID)
}

func (s *Service) ListIncoming(ctx context.Context, userID string) ([]domain.Friendship, error) {
	return s.friendRepo.ListIncomingRequests(ctx, userID)
}
