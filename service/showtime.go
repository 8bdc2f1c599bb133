package service

import (
	"cinemaverse/apperror"
	"cinemaverse/cache"
	"cinemaverse/helper"
	"cinemaverse/metrics"
	"cinemaverse/model"
	"cinemaverse/repository"
	"context"
	"strings"
	"time"
)

const seatMapTTL = 30 * time.Second

// liveBookings hold seats of a showtime.
var liveBookings = []model.BookingStatus{model.BookingPending, model.BookingConfirmed}

type ShowtimeService struct{ *Deps }

func (s *ShowtimeService) List(ctx context.Context, f model.FilterShowtime) (model.ResponseCustom, error) {
	rows, total, err := s.UoW.Showtimes.List(ctx, f, s.now())
	if err != nil {
		return model.ResponseCustom{}, err
	}
	return model.Paged(rows, f.Pagination, total), nil
}

func (s *ShowtimeService) Get(ctx context.Context, id uint) (*model.MovieShowTime, error) {
	return s.UoW.Showtimes.FindDetail(ctx, id)
}

// ByMovie lists the upcoming showtimes of a movie.
func (s *ShowtimeService) ByMovie(ctx context.Context, movieID uint) ([]model.MovieShowTime, error) {
	if _, err := s.UoW.Movies.FindByID(ctx, movieID); err != nil {
		return nil, err
	}
	return s.UoW.Showtimes.ByMovie(ctx, movieID, s.now())
}

// SeatMap returns every seat of the showtime's hall with its state.
func (s *ShowtimeService) SeatMap(ctx context.Context, id uint) (*model.SeatMap, error) {
	var cached model.SeatMap
	if s.Cache.Get(ctx, cache.SeatMapKey(id), &cached) {
		return &cached, nil
	}
	show, err := s.UoW.Showtimes.FindByID(ctx, id, "Hall")
	if err != nil {
		return nil, err
	}
	seats, err := s.UoW.Seats.ListByHall(ctx, show.HallId)
	if err != nil {
		return nil, err
	}
	states, err := s.UoW.Bookings.SeatStates(ctx, show.ID, s.now())
	if err != nil {
		return nil, err
	}
	m := &model.SeatMap{
		ShowtimeId: show.ID,
		HallId:     show.HallId,
		Price:      show.Price,
		Seats:      make([]model.ShowtimeSeat, 0, len(seats)),
	}
	if show.Hall != nil {
		if layout, ok := helper.LayoutFor(show.Hall.HallType); ok {
			m.Rows, m.SeatsPerRow = layout.Rows, layout.SeatsPerRow
		}
	}
	for _, seat := range seats {
		state := model.SeatAvailable
		if held, ok := states[seat.ID]; ok {
			state = held
		} else if !seat.Active {
			state = model.SeatInactive
		}
		m.Seats = append(m.Seats, model.ShowtimeSeat{
			SeatId:    seat.ID,
			SeatLabel: seat.SeatLabel,
			Row:       seat.Row,
			Number:    seat.Number,
			Status:    state,
		})
	}
	s.Cache.Set(ctx, cache.SeatMapKey(id), m, seatMapTTL)
	return m, nil
}

func (s *ShowtimeService) Create(ctx context.Context, in model.CreateShowtimeInput) (*model.MovieShowTime, error) {
	show := &model.MovieShowTime{
		MovieId:   in.MovieId,
		HallId:    in.HallId,
		StartTime: in.StartTime.UTC(),
		Price:     in.Price,
		Status:    model.ShowtimeScheduled,
	}
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		if err := s.schedule(ctx, tx, show); err != nil {
			return err
		}
		return tx.Showtimes.Create(ctx, show)
	})
	if err != nil {
		return nil, err
	}
	return s.UoW.Showtimes.FindDetail(ctx, show.ID)
}

// schedule checks movie, hall and start of the showtime, sets its end and
// rejects overlaps in the hall.
func (s *ShowtimeService) schedule(ctx context.Context, tx *repository.UnitOfWork, show *model.MovieShowTime) error {
	movie, err := tx.Movies.FindByID(ctx, show.MovieId)
	if err != nil {
		return err
	}
	if movie.Status == model.MovieEnded {
		return apperror.Invalid("movie %s is no longer showing", movie.Title)
	}
	if movie.Duration <= 0 {
		return apperror.Invalid("movie %s has no duration", movie.Title)
	}
	hall, err := tx.Halls.FindByID(ctx, show.HallId)
	if err != nil {
		return err
	}
	if hall.Status != model.HallAvailable {
		return apperror.Invalid("hall %d is %s", hall.HallNumber, strings.ToLower(string(hall.Status)))
	}
	if !show.StartTime.After(s.now()) {
		return apperror.Invalid("start time must be in the future")
	}
	show.EndTime = show.StartTime.Add(time.Duration(movie.Duration)*time.Minute + s.Settings.ShowtimeCleanupTime)
	overlap, err := tx.Showtimes.HasOverlap(ctx, show.HallId, show.StartTime, show.EndTime, show.ID)
	if err != nil {
		return err
	}
	if overlap {
		return apperror.InvalidOperation("hall %d is already booked between %s and %s",
			hall.HallNumber, show.StartTime.Format(time.RFC3339), show.EndTime.Format(time.RFC3339))
	}
	return nil
}

func (s *ShowtimeService) Update(ctx context.Context, id uint, in model.EditShowtimeInput) (*model.MovieShowTime, error) {
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		show, err := tx.Showtimes.FindForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if show.Status != model.ShowtimeScheduled {
			return apperror.Invalid("showtime %d is %s", id, strings.ToLower(string(show.Status)))
		}
		moved := (in.HallId != nil && *in.HallId != show.HallId) ||
			(in.StartTime != nil && !in.StartTime.Equal(show.StartTime))
		if in.Price != nil {
			show.Price = *in.Price
		}
		if moved {
			live, err := tx.Bookings.CountForShowtime(ctx, id, liveBookings...)
			if err != nil {
				return err
			}
			if live > 0 {
				return apperror.Invalid("showtime %d has bookings, its hall and time cannot change", id)
			}
			if in.HallId != nil {
				show.HallId = *in.HallId
			}
			if in.StartTime != nil {
				show.StartTime = in.StartTime.UTC()
			}
			if err := s.schedule(ctx, tx, show); err != nil {
				return err
			}
		}
		return tx.Showtimes.Save(ctx, show)
	})
	if err != nil {
		return nil, err
	}
	s.Cache.Delete(ctx, cache.SeatMapKey(id))
	return s.UoW.Showtimes.FindDetail(ctx, id)
}

// Cancel cancels the showtime together with its pending and confirmed
// bookings. Paid bookings are refunded.
func (s *ShowtimeService) Cancel(ctx context.Context, id uint) (*model.MovieShowTime, error) {
	now := s.now()
	bookings := &BookingService{s.Deps}
	var cancelled []model.Booking
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		show, err := tx.Showtimes.FindForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if show.Status != model.ShowtimeScheduled {
			return apperror.InvalidOperation("showtime %d is already %s", id, strings.ToLower(string(show.Status)))
		}
		if err := tx.Showtimes.Updates(ctx, id, map[string]any{"status": model.ShowtimeCancelled}); err != nil {
			return err
		}
		cancelled, err = tx.Bookings.ByShowtime(ctx, id, liveBookings...)
		if err != nil {
			return err
		}
		for i := range cancelled {
			if err := bookings.cancelInTx(ctx, tx, &cancelled[i], now, "showtime cancelled"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.seatsChanged(ctx, id)
	metrics.Bookings.WithLabelValues(string(model.BookingCancelled)).Add(float64(len(cancelled)))
	for _, b := range cancelled {
		detail, err := s.UoW.Bookings.FindDetail(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		bookings.notifyCancelled(ctx, detail, b.Status == model.BookingConfirmed)
	}
	return s.UoW.Showtimes.FindDetail(ctx, id)
}

func (s *ShowtimeService) Delete(ctx context.Context, id uint) error {
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		if _, err := tx.Showtimes.FindForUpdate(ctx, id); err != nil {
			return err
		}
		count, err := tx.Bookings.CountForShowtime(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.Invalid("showtime %d has bookings, cancel it instead", id)
		}
		return tx.Showtimes.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.Cache.Delete(ctx, cache.SeatMapKey(id))
	return nil
}

// CompleteEnded marks showtimes that are over as Completed and expires their
// unused tickets.
func (s *ShowtimeService) CompleteEnded(ctx context.Context) (completed int, expired int64, err error) {
	now := s.now()
	err = s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		ended, err := tx.Showtimes.DueForCompletion(ctx, now)
		if err != nil || len(ended) == 0 {
			return err
		}
		ids := make([]uint, len(ended))
		for i, st := range ended {
			ids[i] = st.ID
		}
		if err := tx.Showtimes.MarkCompleted(ctx, ids); err != nil {
			return err
		}
		completed = len(ids)
		expired, err = tx.Tickets.ExpireForShowtimes(ctx, ids)
		return err
	})
	if err != nil {
		return 0, 0, err
	}
	return completed, expired, nil
}
