package model

import "time"

type TicketStatus string

const (
	TicketActive    TicketStatus = "Active"
	TicketUsed      TicketStatus = "Used"
	TicketCancelled TicketStatus = "Cancelled"
	TicketExpired   TicketStatus = "Expired"
)

type Ticket struct {
	DTO
	BookingId    uint           `gorm:"not null;index" json:"bookingId"`
	Booking      *Booking       `gorm:"foreignKey:BookingId" json:"booking,omitempty"`
	SeatId       uint           `gorm:"not null" json:"seatId"`
	Seat         *Seat          `gorm:"foreignKey:SeatId" json:"seat,omitempty"`
	ShowtimeId   uint           `gorm:"not null;index" json:"showtimeId"`
	Showtime     *MovieShowTime `gorm:"foreignKey:ShowtimeId" json:"showtime,omitempty"`
	TicketNumber string         `gorm:"size:32;uniqueIndex;not null" json:"ticketNumber"`
	QRToken      string         `gorm:"column:qr_token;size:64;uniqueIndex;not null" json:"qrToken"`
	Price        float64        `gorm:"not null" json:"price"`
	Status       TicketStatus   `gorm:"size:20;not null;index" json:"status"`
	CheckedInAt  *time.Time     `json:"checkedInAt"`
}

type CheckInInput struct {
	QRToken string `json:"qrToken" validate:"required"`
}

type FilterTicket struct {
	Pagination
	Status string `query:"status" json:"status" validate:"omitempty,oneof=Active Used Cancelled Expired"`
}
