package service

import (
	"cinemaverse/apperror"
	"cinemaverse/model"
	"cinemaverse/utils"
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// checkInOpens is how long before the start a ticket can be scanned.
const checkInOpens = time.Hour

type TicketService struct{ *Deps }

func (s *TicketService) ListMine(ctx context.Context, userID uint, f model.FilterTicket) (model.ResponseCustom, error) {
	rows, total, err := s.UoW.Tickets.ListByUser(ctx, userID, f)
	if err != nil {
		return model.ResponseCustom{}, err
	}
	return model.Paged(rows, f.Pagination, total), nil
}

func (s *TicketService) Get(ctx context.Context, actor Actor, id uint) (*model.Ticket, error) {
	t, err := s.UoW.Tickets.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Booking == nil || !actor.owns(t.Booking.UserId) {
		return nil, apperror.Forbidden("ticket %d belongs to another user", id)
	}
	return t, nil
}

// QRCode renders the check-in QR code of the ticket as PNG.
func (s *TicketService) QRCode(ctx context.Context, actor Actor, id uint) ([]byte, error) {
	t, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	png, err := utils.GenerateQRCode(t.QRToken, utils.TicketQRSize)
	return png, errors.Wrap(err, "render ticket qr")
}

// CheckIn marks the ticket behind a scanned QR token as used.
func (s *TicketService) CheckIn(ctx context.Context, token string) (*model.Ticket, error) {
	t, err := s.UoW.Tickets.FindByQRToken(ctx, strings.TrimSpace(token))
	if err != nil {
		return nil, err
	}
	switch t.Status {
	case model.TicketUsed:
		return nil, apperror.InvalidOperation("ticket %s has already been used", t.TicketNumber)
	case model.TicketActive:
	default:
		return nil, apperror.Invalid("ticket %s is %s", t.TicketNumber, strings.ToLower(string(t.Status)))
	}
	if t.Booking == nil || t.Booking.Status != model.BookingConfirmed {
		return nil, apperror.Invalid("ticket %s does not belong to a confirmed booking", t.TicketNumber)
	}
	now := s.now()
	if st := t.Showtime; st != nil {
		if now.Before(st.StartTime.Add(-checkInOpens)) {
			return nil, apperror.Invalid("check-in for ticket %s opens at %s", t.TicketNumber, st.StartTime.Add(-checkInOpens).Format(time.RFC3339))
		}
		if !now.Before(st.EndTime) || st.Status != model.ShowtimeScheduled {
			return nil, apperror.Invalid("the showtime of ticket %s is over", t.TicketNumber)
		}
	}
	res := s.UoW.Tickets.Model(ctx).
		Where("id = ? AND status = ?", t.ID, model.TicketActive).
		Updates(map[string]any{"status": model.TicketUsed, "checked_in_at": now})
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "check in ticket")
	}
	if res.RowsAffected == 0 {
		return nil, apperror.InvalidOperation("ticket %s has already been used", t.TicketNumber)
	}
	return s.UoW.Tickets.FindDetail(ctx, t.ID)
}
