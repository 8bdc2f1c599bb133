// Package repository wraps gorm with typed repositories that can be bound
// to a transaction through UnitOfWork.
package repository

import (
	"cinemaverse/apperror"
	"cinemaverse/model"
	"cinemaverse/utils"
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository[T any] struct {
	db   *gorm.DB
	name string
}

func NewRepository[T any](db *gorm.DB, name string) *Repository[T] {
	return &Repository[T]{db: db, name: name}
}

// DB returns a session bound to ctx.
func (r *Repository[T]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *Repository[T]) Model(ctx context.Context) *gorm.DB {
	var zero T
	return r.DB(ctx).Model(&zero)
}

func (r *Repository[T]) FindByID(ctx context.Context, id uint, preloads ...string) (*T, error) {
	q := r.DB(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	return r.first(q, id)
}

// FindForUpdate loads a row and locks it for the rest of the transaction.
func (r *Repository[T]) FindForUpdate(ctx context.Context, id uint) (*T, error) {
	return r.first(r.DB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *Repository[T]) first(q *gorm.DB, conds ...any) (*T, error) {
	var entity T
	if err := q.First(&entity, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if len(conds) == 1 {
				return nil, apperror.NotFound("%s %v not found", r.name, conds[0])
			}
			return nil, apperror.NotFound("%s not found", r.name)
		}
		return nil, errors.Wrapf(err, "load %s", r.name)
	}
	return &entity, nil
}

// FindOne returns the first row matching the condition.
func (r *Repository[T]) FindOne(ctx context.Context, query string, args ...any) (*T, error) {
	return r.first(r.DB(ctx).Where(query, args...))
}

func (r *Repository[T]) FindByIDs(ctx context.Context, ids []uint) ([]T, error) {
	var rows []T
	if len(ids) == 0 {
		return rows, nil
	}
	err := r.DB(ctx).Where("id IN ?", ids).Find(&rows).Error
	return rows, errors.Wrapf(err, "list %s", r.name)
}

func (r *Repository[T]) Exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	err := r.Model(ctx).Where(query, args...).Limit(1).Count(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "check %s", r.name)
	}
	return count > 0, nil
}

func (r *Repository[T]) Count(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	err := r.Model(ctx).Where(query, args...).Count(&count).Error
	return count, errors.Wrapf(err, "count %s", r.name)
}

func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	return r.write(r.DB(ctx).Create(entity).Error, "create")
}

func (r *Repository[T]) Save(ctx context.Context, entity *T) error {
	return r.write(r.DB(ctx).Omit(clause.Associations).Save(entity).Error, "save")
}

// Updates writes the given columns of the row with id.
func (r *Repository[T]) Updates(ctx context.Context, id uint, values map[string]any) error {
	return r.write(r.Model(ctx).Where("id = ?", id).Updates(values).Error, "update")
}

// write reports unique index violations as conflicts.
func (r *Repository[T]) write(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Conflict("%s already exists", r.name)
	}
	return errors.Wrapf(err, "%s %s", op, r.name)
}

func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	var zero T
	return errors.Wrapf(r.DB(ctx).Delete(&zero, id).Error, "delete %s", r.name)
}

// Page counts and fetches one page of q. Preloads apply to the fetch only.
func (r *Repository[T]) Page(q *gorm.DB, p model.Pagination, preloads ...string) ([]T, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "count %s", r.name)
	}
	q = q.Session(&gorm.Session{})
	for _, pl := range preloads {
		q = q.Preload(pl)
	}
	var rows []T
	if err := utils.ApplyPagination(q, p.Limit, p.Page).Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "list %s", r.name)
	}
	return rows, total, nil
}
