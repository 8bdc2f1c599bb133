package repository

import (
	"cinemaverse/model"
	"context"

	"gorm.io/gorm"
)

// UnitOfWork bundles the repositories over one gorm session.
type UnitOfWork struct {
	db *gorm.DB

	Users       *UserRepository
	ResetTokens *Repository[model.PasswordResetToken]
	Genres      *Repository[model.Genre]
	Movies      *MovieRepository
	Cast        *Repository[model.MovieCastMember]
	Images      *Repository[model.MovieImage]
	Branches    *BranchRepository
	Halls       *HallRepository
	Seats       *SeatRepository
	Showtimes   *ShowtimeRepository
	Bookings    *BookingRepository
	Payments    *PaymentRepository
	Tickets     *TicketRepository
	Reviews     *ReviewRepository
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:          db,
		Users:       &UserRepository{NewRepository[model.User](db, "user")},
		ResetTokens: NewRepository[model.PasswordResetToken](db, "reset token"),
		Genres:      NewRepository[model.Genre](db, "genre"),
		Movies:      &MovieRepository{NewRepository[model.Movie](db, "movie")},
		Cast:        NewRepository[model.MovieCastMember](db, "cast member"),
		Images:      NewRepository[model.MovieImage](db, "movie image"),
		Branches:    &BranchRepository{NewRepository[model.Branch](db, "branch")},
		Halls:       &HallRepository{NewRepository[model.Hall](db, "hall")},
		Seats:       &SeatRepository{NewRepository[model.Seat](db, "seat")},
		Showtimes:   &ShowtimeRepository{NewRepository[model.MovieShowTime](db, "showtime")},
		Bookings:    &BookingRepository{NewRepository[model.Booking](db, "booking")},
		Payments:    &PaymentRepository{NewRepository[model.BookingPayment](db, "payment")},
		Tickets:     &TicketRepository{NewRepository[model.Ticket](db, "ticket")},
		Reviews:     &ReviewRepository{NewRepository[model.Review](db, "review")},
	}
}

// Transaction runs fn with every repository bound to one database
// transaction. Returning an error rolls the transaction back.
func (u *UnitOfWork) Transaction(ctx context.Context, fn func(tx *UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnitOfWork(tx))
	})
}

func (u *UnitOfWork) DB() *gorm.DB {
	return u.db
}
