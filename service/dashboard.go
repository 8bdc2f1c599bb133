package service

import (
	"cinemaverse/apperror"
	"cinemaverse/model"
	"cinemaverse/utils"
	"context"
)

type DashboardService struct{ *Deps }

// Summary reports catalog size, upcoming showtimes, bookings by status and
// revenue in [from, to]. The range defaults to the last 30 days.
func (s *DashboardService) Summary(ctx context.Context, f model.DashboardFilter) (*model.DashboardSummary, error) {
	now := s.now()
	to := now.Format(utils.DateLayout)
	from := now.AddDate(0, 0, -29).Format(utils.DateLayout)
	if f.To != "" {
		to = f.To
	}
	if f.From != "" {
		from = f.From
	}
	start, _, err := utils.DayRange(from)
	if err != nil {
		return nil, apperror.Validation(map[string][]string{"from": {"must be a date like 2006-01-02"}})
	}
	_, end, err := utils.DayRange(to)
	if err != nil {
		return nil, apperror.Validation(map[string][]string{"to": {"must be a date like 2006-01-02"}})
	}
	if !start.Before(end) {
		return nil, apperror.Invalid("from must not be after to")
	}

	summary := &model.DashboardSummary{From: from, To: to}
	if summary.Movies, err = s.UoW.Movies.Count(ctx, "1 = 1"); err != nil {
		return nil, err
	}
	if summary.UpcomingShowtimes, err = s.UoW.Showtimes.CountUpcoming(ctx, now); err != nil {
		return nil, err
	}
	if summary.Bookings, err = s.UoW.Bookings.CountByStatus(ctx, start, end); err != nil {
		return nil, err
	}
	if summary.Revenue, err = s.UoW.Payments.Revenue(ctx, start, end); err != nil {
		return nil, err
	}
	return summary, nil
}
