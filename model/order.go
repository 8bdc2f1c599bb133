package model

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
	BookingExpired   BookingStatus = "Expired"
)

type Booking struct {
	DTO
	UserId         uint            `gorm:"not null;index" json:"userId"`
	User           *User           `gorm:"foreignKey:UserId" json:"user,omitempty"`
	ShowtimeId     uint            `gorm:"not null;index" json:"showtimeId"`
	Showtime       *MovieShowTime  `gorm:"foreignKey:ShowtimeId;constraint:OnDelete:RESTRICT" json:"showtime,omitempty"`
	Status         BookingStatus   `gorm:"size:20;not null;index" json:"status"`
	TotalAmount    float64         `gorm:"not null" json:"totalAmount"`
	PublicCode     string          `gorm:"size:16;uniqueIndex;not null" json:"publicCode"`
	ExpiresAt      time.Time       `gorm:"not null;index" json:"expiresAt"`
	ConfirmedAt    *time.Time      `json:"confirmedAt"`
	CancelledAt    *time.Time      `json:"cancelledAt"`
	ReminderSentAt *time.Time      `json:"reminderSentAt"`
	Seats          []BookingSeat   `gorm:"foreignKey:BookingId;constraint:OnDelete:CASCADE" json:"seats,omitempty"`
	Tickets        []Ticket        `gorm:"foreignKey:BookingId;constraint:OnDelete:CASCADE" json:"tickets,omitempty"`
	Payment        *BookingPayment `gorm:"foreignKey:BookingId;constraint:OnDelete:CASCADE" json:"payment,omitempty"`
}

// SeatLabels lists the labels of the booked seats in booking order.
func (b Booking) SeatLabels() []string {
	labels := make([]string, 0, len(b.Seats))
	for _, s := range b.Seats {
		if s.Seat != nil {
			labels = append(labels, s.Seat.SeatLabel)
		}
	}
	return labels
}

type BookingSeat struct {
	DTO
	BookingId  uint    `gorm:"not null;index" json:"bookingId"`
	SeatId     uint    `gorm:"not null;index" json:"seatId"`
	Seat       *Seat   `gorm:"foreignKey:SeatId" json:"seat,omitempty"`
	ShowtimeId uint    `gorm:"not null;index" json:"showtimeId"`
	Price      float64 `gorm:"not null" json:"price"`
}

type CreateBookingInput struct {
	ShowtimeId uint   `json:"showtimeId" validate:"required"`
	SeatIds    []uint `json:"seatIds" validate:"required,min=1,dive,min=1"`
}

type FilterBooking struct {
	Pagination
	UserId     uint   `query:"userId" json:"userId"`
	ShowtimeId uint   `query:"showtimeId" json:"showtimeId"`
	Status     string `query:"status" json:"status" validate:"omitempty,oneof=Pending Confirmed Cancelled Expired"`
	From       string `query:"from" json:"from" validate:"omitempty,datetime=2006-01-02"`
	To         string `query:"to" json:"to" validate:"omitempty,datetime=2006-01-02"`
}
