package dto

type ClaimItemRequestDTO struct {
	Quantity int `json:"quantity" example:"2"`
}

type OwedAmountResponseDTO struct {
	ReceiptID int64   `json:"receipt_id" example:"17"`
	Owed      float64 `json:"owed" example:"30"`
}

type PaymentResponseDTO struct {
	ReceiptID int64   `json:"receipt_id" example:"17"`
	Owed      float64 `json:"owed" example:"30"`
	Paid      float64 `json:"paid" example:"30"`
	Completed bool    `json:"completed" example:"false"`
}
