package model

import "time"

type ShowtimeStatus string

const (
	ShowtimeScheduled ShowtimeStatus = "Scheduled"
	ShowtimeCancelled ShowtimeStatus = "Cancelled"
	ShowtimeCompleted ShowtimeStatus = "Completed"
)

type MovieShowTime struct {
	DTO
	MovieId   uint           `gorm:"not null;index" json:"movieId"`
	Movie     *Movie         `gorm:"foreignKey:MovieId;constraint:OnDelete:RESTRICT" json:"movie,omitempty"`
	HallId    uint           `gorm:"not null;index:idx_showtime_hall_start" json:"hallId"`
	Hall      *Hall          `gorm:"foreignKey:HallId;constraint:OnDelete:RESTRICT" json:"hall,omitempty"`
	StartTime time.Time      `gorm:"not null;index:idx_showtime_hall_start" json:"startTime"`
	EndTime   time.Time      `gorm:"not null" json:"endTime"`
	Price     float64        `gorm:"not null" json:"price"`
	Status    ShowtimeStatus `gorm:"size:20;not null;index" json:"status"`
}

type CreateShowtimeInput struct {
	MovieId   uint      `json:"movieId" validate:"required"`
	HallId    uint      `json:"hallId" validate:"required"`
	StartTime time.Time `json:"startTime" validate:"required"`
	Price     float64   `json:"price" validate:"required,gt=0"`
}

type EditShowtimeInput struct {
	HallId    *uint      `json:"hallId" validate:"omitempty,min=1"`
	StartTime *time.Time `json:"startTime"`
	Price     *float64   `json:"price" validate:"omitempty,gt=0"`
}

type FilterShowtime struct {
	Pagination
	MovieId      uint   `query:"movieId" json:"movieId"`
	BranchId     uint   `query:"branchId" json:"branchId"`
	HallId       uint   `query:"hallId" json:"hallId"`
	Date         string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
	UpcomingOnly bool   `query:"upcomingOnly" json:"upcomingOnly"`
	Status       string `query:"status" json:"status" validate:"omitempty,oneof=Scheduled Cancelled Completed"`
}
