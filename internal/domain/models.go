package domain

import "time"

// Receipt statuses. Transitions only move forward:
// pending -> accepted/declined, accepted -> completed.
const (
	ReceiptStatusPending   = "pending"
	ReceiptStatusAccepted  = "accepted"
	ReceiptStatusDeclined  = "declined"
	ReceiptStatusCompleted = "completed"
)

// Participant statuses.
const (
	ParticipantStatusPending  = "pending"
	ParticipantStatusAccepted = "accepted"
	ParticipantStatusDeclined = "declined"
)

// Balance history transaction types.
const (
	BalanceTypePaymentReceived = "payment_received"
	BalanceTypePaymentSent     = "payment_sent"
	BalanceTypeRefund          = "refund"
	BalanceTypeAdjustment      = "adjustment"
)

// Transaction log types and statuses.
const (
	TransactionTypeReceiptPayment = "receipt_payment"
	TransactionTypePeerToPeer     = "peer_to_peer"
	TransactionTypeRefund         = "refund"

	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusCancelled = "cancelled"
)

// Friendship statuses.
const (
	FriendshipStatusPending  = "pending"
	FriendshipStatusAccepted = "accepted"
	FriendshipStatusDeclined = "declined"
)

type User struct {
	ID           string    `db:"user_id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Balance      float64   `db:"balance"`
	CreatedAt    time.Time `db:"created_at"`
}

type BalanceHistory struct {
	ID              int64     `db:"history_id"`
	UserID          string    `db:"user_id"`
	Amount          float64   `db:"amount"`
	BalanceBefore   float64   `db:"balance_before"`
	BalanceAfter    float64   `db:"balance_after"`
	TransactionType string    `db:"transaction_type"`
	Description     string    `db:"description"`
	ReferenceID     string    `db:"reference_id"`
	ReferenceType   string    `db:"reference_type"`
	CreatedAt       time.Time `db:"created_at"`
}

type Transaction struct {
	ID              int64     `db:"transaction_id"`
	FromUserID      string    `db:"from_user_id"`
	ToUserID        string    `db:"to_user_id"`
	Amount          float64   `db:"amount"`
	TransactionType string    `db:"transaction_type"`
	Description     string    `db:"description"`
	Status          string    `db:"status"`
	RelatedEntityID string    `db:"related_entity_id"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type Friendship struct {
	ID        int64     `db:"friendship_id"`
	UserID    string    `db:"user_id"`
	FriendID  string    `db:"friend_id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Receipt struct {
	ID           int64     `db:"receipt_id"`
	UploadedBy   string    `db:"uploaded_by"`
	MerchantName string    `db:"merchant_name"`
	Date         time.Time `db:"date"`
	TotalAmount  float64   `db:"total_amount"`
	TipAmount    float64   `db:"tip_amount"`
	TaxAmount    float64   `db:"tax_amount"`
	ImageURL     string    `db:"image_url"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	Items        []ReceiptItem
}

type ReceiptItem struct {
	ID        int64      `db:"item_id"`
	ReceiptID int64      `db:"receipt_id"`
	Name      string     `db:"name"`
	Price     float64    `db:"price"`
	Quantity  int        `db:"quantity"`
	Category  string     `db:"category"`
	PaidBy    *string    `db:"paid_by"`
	PaidAt    *time.Time `db:"paid_at"`
}

type ItemAssignment struct {
	ReceiptID int64      `db:"receipt_id"`
	ItemID    int64      `db:"item_id"`
	UserID    string     `db:"user_id"`
	Quantity  int        `db:"quantity"`
	PaidBy    *string    `db:"paid_by"`
	PaidAt    *time.Time `db:"paid_at"`
}

type ReceiptParticipant struct {
	ReceiptID  int64      `db:"receipt_id"`
	UserID     string     `db:"user_id"`
	Status     string     `db:"status"`
	PaidAmount float64    `db:"paid_amount"`
	PaidAt     *time.Time `db:"paid_at"`
}
