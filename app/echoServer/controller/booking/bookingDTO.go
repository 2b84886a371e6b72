package booking

import "time"

type ConfirmPaymentReq struct {
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
}

type UpdateBookingReq struct {
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	TotalAmount float64   `json:"total_amount" validate:"gte=0"`
	Status      string    `json:"status" validate:"omitempty,oneof=pending completed"`
}
