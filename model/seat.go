package model

type Seat struct {
	DTO
	HallId    uint   `gorm:"not null;uniqueIndex:idx_hall_seat_label" json:"hallId"`
	SeatLabel string `gorm:"size:10;not null;uniqueIndex:idx_hall_seat_label" json:"seatLabel"`
	Row       string `gorm:"column:seat_row;size:2;not null" json:"row"`
	Number    int    `gorm:"column:seat_number;not null" json:"number"`
	Active    bool   `gorm:"not null;default:true" json:"active"`
}

type SeatState string

const (
	SeatAvailable SeatState = "Available"
	SeatReserved  SeatState = "Reserved"
	SeatBooked    SeatState = "Booked"
	SeatInactive  SeatState = "Inactive"
)

type ShowtimeSeat struct {
	SeatId    uint      `json:"seatId"`
	SeatLabel string    `json:"seatLabel"`
	Row       string    `json:"row"`
	Number    int       `json:"number"`
	Status    SeatState `json:"status"`
}

type SeatMap struct {
	ShowtimeId  uint           `json:"showtimeId"`
	HallId      uint           `json:"hallId"`
	Price       float64        `json:"price"`
	Rows        int            `json:"rows"`
	SeatsPerRow int            `json:"seatsPerRow"`
	Seats       []ShowtimeSeat `json:"seats"`
}

type SeatActiveInput struct {
	Active *bool `json:"active" validate:"required"`
}
