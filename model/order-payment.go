package model

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentSucceeded PaymentStatus = "Succeeded"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

type BookingPayment struct {
	DTO
	BookingId       uint          `gorm:"not null;uniqueIndex" json:"bookingId"`
	Amount          float64       `gorm:"not null" json:"amount"`
	Currency        string        `gorm:"size:3;not null" json:"currency"`
	Status          PaymentStatus `gorm:"size:20;not null;index" json:"status"`
	PaymentIntentId string        `gorm:"size:64;uniqueIndex;not null" json:"paymentIntentId"`
	ClientSecret    string        `gorm:"size:128" json:"clientSecret,omitempty"`
	Provider        string        `gorm:"size:30;not null" json:"provider"`
	PaidAt          *time.Time    `json:"paidAt"`
	FailureReason   *string       `gorm:"size:255" json:"failureReason"`
}

type CreatePaymentIntentInput struct {
	BookingId uint `json:"bookingId" validate:"required"`
}

type PaymentWebhookInput struct {
	PaymentIntentId string  `json:"paymentIntentId" validate:"required"`
	Status          string  `json:"status" validate:"required,oneof=succeeded failed"`
	FailureReason   *string `json:"failureReason" validate:"omitempty,max=255"`
}
