package model

type Review struct {
	DTO
	UserId  uint   `gorm:"not null;uniqueIndex:idx_review_user_movie" json:"userId"`
	User    *User  `gorm:"foreignKey:UserId" json:"user,omitempty"`
	MovieId uint   `gorm:"not null;uniqueIndex:idx_review_user_movie;index" json:"movieId"`
	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`
}

type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type DashboardFilter struct {
	From string `query:"from" json:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" json:"to" validate:"omitempty,datetime=2006-01-02"`
}

type DashboardSummary struct {
	Movies            int64                   `json:"movies"`
	UpcomingShowtimes int64                   `json:"upcomingShowtimes"`
	Bookings          map[BookingStatus]int64 `json:"bookings"`
	Revenue           float64                 `json:"revenue"`
	From              string                  `json:"from"`
	To                string                  `json:"to"`
}
