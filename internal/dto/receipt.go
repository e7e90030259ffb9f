package dto

import "time"

type CreateReceiptRequestDTO struct {
	MerchantName   string                  `json:"merchant_name" example:"Trattoria Roma"`
	Date           time.Time               `json:"date"`
	TotalAmount    float64                 `json:"total_amount" example:"120"`
	TipAmount      float64                 `json:"tip_amount" example:"12"`
	TaxAmount      float64                 `json:"tax_amount" example:"8"`
	ImageURL       string                  `json:"image_url,omitempty"`
	Items          []ReceiptItemRequestDTO `json:"items"`
	ParticipantIDs []string                `json:"participant_ids"`
}

type ReceiptItemRequestDTO struct {
	Name     string  `json:"name" example:"Margherita"`
	Price    float64 `json:"price" example:"12.5"`
	Quantity int     `json:"quantity" example:"2"`
	Category string  `json:"category,omitempty" example:"food"`
}

type ReceiptResponseDTO struct {
	ID           int64                    `json:"id" example:"17"`
	UploadedBy   string                   `json:"uploaded_by"`
	MerchantName string                   `json:"merchant_name" example:"Trattoria Roma"`
	Date         time.Time                `json:"date"`
	TotalAmount  float64                  `json:"total_amount" example:"120"`
	TipAmount    float64                  `json:"tip_amount" example:"12"`
	TaxAmount    float64                  `json:"tax_amount" example:"8"`
	Status       string                   `json:"status" example:"pending"`
	Items        []ReceiptItemResponseDTO `json:"items,omitempty"`
}

type ReceiptItemResponseDTO struct {
	ID       int64   `json:"id" example:"3"`
	Name     string  `json:"name" example:"Margherita"`
	Price    float64 `json:"price" example:"12.5"`
	Quantity int     `json:"quantity" example:"2"`
	Category string  `json:"category,omitempty" example:"food"`
	Paid     bool    `json:"paid" example:"false"`
}
