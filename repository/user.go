package repository

import (
	"cinemaverse/model"
	"cinemaverse/utils"
	"context"
	"strings"
)

type UserRepository struct {
	*Repository[model.User]
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.FindOne(ctx, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.Exists(ctx, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) List(ctx context.Context, f model.FilterUser) ([]model.User, int64, error) {
	q := r.Model(ctx)
	if f.SearchKey != "" {
		like := utils.Like(f.SearchKey)
		q = q.Where("LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like, like)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	return r.Page(q.Order("id"), f.Pagination)
}
