package service

import (
	"cinemaverse/apperror"
	"cinemaverse/helper"
	"cinemaverse/model"
	"cinemaverse/repository"
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jinzhu/copier"
)

type BranchService struct{ *Deps }

func (s *BranchService) List(ctx context.Context, f model.FilterBranch, activeOnly bool) (model.ResponseCustom, error) {
	rows, total, err := s.UoW.Branches.List(ctx, f, activeOnly)
	if err != nil {
		return model.ResponseCustom{}, err
	}
	return model.Paged(rows, f.Pagination, total), nil
}

func (s *BranchService) Get(ctx context.Context, id uint) (*model.Branch, error) {
	return s.UoW.Branches.FindDetail(ctx, id)
}

func (s *BranchService) Create(ctx context.Context, in model.CreateBranchInput) (*model.Branch, error) {
	branch := &model.Branch{Active: true}
	if err := copier.Copy(branch, &in); err != nil {
		return nil, errors.Wrap(err, "map branch")
	}
	branch.Name = strings.TrimSpace(branch.Name)
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		if err := ensureBranchName(ctx, tx, branch.Name, 0); err != nil {
			return err
		}
		slug, err := helper.UniqueSlug(branch.Name, func(v string) (bool, error) {
			return tx.Branches.SlugExists(ctx, v, 0)
		})
		if err != nil {
			return err
		}
		branch.Slug = slug
		return tx.Branches.Create(ctx, branch)
	})
	if err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *BranchService) Update(ctx context.Context, id uint, in model.EditBranchInput) (*model.Branch, error) {
	var branch *model.Branch
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		var err error
		branch, err = tx.Branches.FindByID(ctx, id)
		if err != nil {
			return err
		}
		oldName := branch.Name
		if err := copier.CopyWithOption(branch, &in, copier.Option{IgnoreEmpty: true}); err != nil {
			return errors.Wrap(err, "map branch")
		}
		if in.Active != nil {
			branch.Active = *in.Active
		}
		if branch.Name != oldName {
			if err := ensureBranchName(ctx, tx, branch.Name, id); err != nil {
				return err
			}
			branch.Slug, err = helper.UniqueSlug(branch.Name, func(v string) (bool, error) {
				return tx.Branches.SlugExists(ctx, v, id)
			})
			if err != nil {
				return err
			}
		}
		return tx.Branches.Save(ctx, branch)
	})
	if err != nil {
		return nil, err
	}
	return branch, nil
}

func ensureBranchName(ctx context.Context, tx *repository.UnitOfWork, name string, excludeID uint) error {
	taken, err := tx.Branches.NameTaken(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.InvalidOperation("branch %s already exists", name)
	}
	return nil
}

// Delete removes the branch and its halls when none of them was scheduled.
func (s *BranchService) Delete(ctx context.Context, id uint) error {
	return s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		if _, err := tx.Branches.FindByID(ctx, id); err != nil {
			return err
		}
		halls, err := tx.Halls.ListByBranch(ctx, id)
		if err != nil {
			return err
		}
		for _, h := range halls {
			scheduled, err := tx.Halls.HasShowtimes(ctx, h.ID)
			if err != nil {
				return err
			}
			if scheduled {
				return apperror.InvalidOperation("hall %d already has showtimes; deactivate the branch instead", h.HallNumber)
			}
		}
		for _, h := range halls {
			if err := tx.Seats.DeleteByHall(ctx, h.ID); err != nil {
				return err
			}
			if err := tx.Halls.Delete(ctx, h.ID); err != nil {
				return err
			}
		}
		return tx.Branches.Delete(ctx, id)
	})
}

type HallService struct{ *Deps }

func (s *HallService) Get(ctx context.Context, id uint) (*model.Hall, error) {
	return s.UoW.Halls.FindByID(ctx, id, "Branch")
}

func (s *HallService) ListByBranch(ctx context.Context, branchID uint) ([]model.Hall, error) {
	if _, err := s.UoW.Branches.FindByID(ctx, branchID); err != nil {
		return nil, err
	}
	return s.UoW.Halls.ListByBranch(ctx, branchID)
}

// Create adds a hall and generates its seats from the layout of its type.
func (s *HallService) Create(ctx context.Context, in model.CreateHallInput) (*model.Hall, error) {
	layout, ok := helper.LayoutFor(in.HallType)
	if !ok {
		return nil, apperror.Invalid("unknown hall type %s", in.HallType)
	}
	hall := &model.Hall{
		BranchId:   in.BranchId,
		HallNumber: in.HallNumber,
		HallType:   in.HallType,
		Capacity:   layout.Capacity(),
		Status:     model.HallAvailable,
	}
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		if _, err := tx.Branches.FindByID(ctx, in.BranchId); err != nil {
			return err
		}
		if err := ensureHallNumber(ctx, tx, in.BranchId, in.HallNumber, 0); err != nil {
			return err
		}
		if err := tx.Halls.Create(ctx, hall); err != nil {
			return err
		}
		return createSeats(ctx, tx, hall)
	})
	if err != nil {
		return nil, err
	}
	return hall, nil
}

func createSeats(ctx context.Context, tx *repository.UnitOfWork, hall *model.Hall) error {
	seats, err := helper.GenerateSeats(hall.ID, hall.HallType)
	if err != nil {
		return apperror.Invalid("%s", err.Error())
	}
	return tx.Seats.CreateBatch(ctx, seats)
}

func ensureHallNumber(ctx context.Context, tx *repository.UnitOfWork, branchID uint, number int, excludeID uint) error {
	taken, err := tx.Halls.NumberTaken(ctx, branchID, number, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.InvalidOperation("hall number %d already exists in this branch", number)
	}
	return nil
}

// Update changes number or status. A type change regenerates the seats and
// is only allowed before the hall is first scheduled.
func (s *HallService) Update(ctx context.Context, id uint, in model.EditHallInput) (*model.Hall, error) {
	var hall *model.Hall
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		var err error
		hall, err = tx.Halls.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if in.HallNumber != nil && *in.HallNumber != hall.HallNumber {
			if err := ensureHallNumber(ctx, tx, hall.BranchId, *in.HallNumber, id); err != nil {
				return err
			}
			hall.HallNumber = *in.HallNumber
		}
		if in.Status != nil {
			hall.Status = *in.Status
		}
		if in.HallType != nil && *in.HallType != hall.HallType {
			scheduled, err := tx.Halls.HasShowtimes(ctx, id)
			if err != nil {
				return err
			}
			if scheduled {
				return apperror.InvalidOperation("hall %d already has showtimes; its type cannot change", hall.HallNumber)
			}
			layout, ok := helper.LayoutFor(*in.HallType)
			if !ok {
				return apperror.Invalid("unknown hall type %s", *in.HallType)
			}
			hall.HallType = *in.HallType
			hall.Capacity = layout.Capacity()
			if err := tx.Seats.DeleteByHall(ctx, id); err != nil {
				return err
			}
			if err := createSeats(ctx, tx, hall); err != nil {
				return err
			}
		}
		return tx.Halls.Save(ctx, hall)
	})
	if err != nil {
		return nil, err
	}
	return hall, nil
}

func (s *HallService) Delete(ctx context.Context, id uint) error {
	now := s.now()
	return s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		hall, err := tx.Halls.FindByID(ctx, id)
		if err != nil {
			return err
		}
		upcoming, err := tx.Halls.HasFutureShowtimes(ctx, id, now)
		if err != nil {
			return err
		}
		if upcoming {
			return apperror.InvalidOperation("hall %d already has upcoming showtimes", hall.HallNumber)
		}
		scheduled, err := tx.Halls.HasShowtimes(ctx, id)
		if err != nil {
			return err
		}
		if scheduled {
			return apperror.InvalidOperation("hall %d already has past showtimes; close it instead", hall.HallNumber)
		}
		if err := tx.Seats.DeleteByHall(ctx, id); err != nil {
			return err
		}
		return tx.Halls.Delete(ctx, id)
	})
}

func (s *HallService) Seats(ctx context.Context, hallID uint) ([]model.Seat, error) {
	if _, err := s.UoW.Halls.FindByID(ctx, hallID); err != nil {
		return nil, err
	}
	return s.UoW.Seats.ListByHall(ctx, hallID)
}

func (s *HallService) SetSeatActive(ctx context.Context, hallID, seatID uint, active bool) (*model.Seat, error) {
	seat, err := s.UoW.Seats.FindByID(ctx, seatID)
	if err != nil {
		return nil, err
	}
	if seat.HallId != hallID {
		return nil, apperror.NotFound("seat %d not found", seatID)
	}
	if err := s.UoW.Seats.Updates(ctx, seatID, map[string]any{"active": active}); err != nil {
		return nil, err
	}
	seat.Active = active
	showtimes, err := s.UoW.Showtimes.UpcomingByHall(ctx, hallID, s.now())
	if err != nil {
		return nil, err
	}
	for _, id := range showtimes {
		s.seatsChanged(ctx, id)
	}
	return seat, nil
}
