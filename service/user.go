package service

import (
	"cinemaverse/apperror"
	"cinemaverse/model"
	"context"
)

type UserService struct{ *Deps }

func (s *UserService) List(ctx context.Context, f model.FilterUser) (model.ResponseCustom, error) {
	rows, total, err := s.UoW.Users.List(ctx, f)
	if err != nil {
		return model.ResponseCustom{}, err
	}
	return model.Paged(rows, f.Pagination, total), nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	return s.UoW.Users.FindByID(ctx, id)
}

func (s *UserService) ChangeRole(ctx context.Context, actor Actor, id uint, role string) (*model.User, error) {
	if actor.UserId == id {
		return nil, apperror.Invalid("admins cannot change their own role")
	}
	user, err := s.UoW.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.UoW.Users.Updates(ctx, id, map[string]any{"role": role}); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetActive(ctx context.Context, actor Actor, id uint, active bool) (*model.User, error) {
	if actor.UserId == id && !active {
		return nil, apperror.Invalid("admins cannot deactivate themselves")
	}
	user, err := s.UoW.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Active = active
	if err := s.UoW.Users.Updates(ctx, id, map[string]any{"active": active}); err != nil {
		return nil, err
	}
	return user, nil
}
