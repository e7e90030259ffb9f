package dto

import "time"

type FriendRequestDTO struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
}

type FriendshipResponseDTO struct {
	ID        int64     `json:"id" example:"5"`
	UserID    string    `json:"user_id"`
	FriendID  string    `json:"friend_id"`
	Status    string    `json:"status" example:"pending"`
	CreatedAt time.Time `json:"created_at"`
}
