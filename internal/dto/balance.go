package dto

import "time"

type BalanceResponseDTO struct {
	Balance float64 `json:"balance" example:"125.5"`
}

type BalanceChangeRequestDTO struct {
	Amount float64 `json:"amount" example:"50"`
}

type BalanceHistoryResponseDTO struct {
	Amount          float64   `json:"amount" example:"-42.5"`
	BalanceBefore   float64   `json:"balance_before" example:"168"`
	BalanceAfter    float64   `json:"balance_after" example:"125.5"`
	TransactionType string    `json:"transaction_type" example:"payment_sent"`
	Description     string    `json:"description" example:"payment for receipt 17"`
	CreatedAt       time.Time `json:"created_at" example:"2025-12-09T16:09:57+03:00"`
}

type TransactionResponseDTO struct {
	ID              int64     `json:"id" example:"31"`
	FromUserID      string    `json:"from_user_id"`
	ToUserID        string    `json:"to_user_id"`
	Amount          float64   `json:"amount" example:"42.5"`
	TransactionType string    `json:"transaction_type" example:"receipt_payment"`
	Status          string    `json:"status" example:"completed"`
	CreatedAt       time.Time `json:"created_at"`
}
