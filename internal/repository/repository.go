// Package repository persists the domain entities through gorm.
//
// Every entity repository embeds the generic CRUD implementation and layers
// its own lookups on top. Lookups of a single record report absence as
// (nil, nil); store failures come back as domain persistence errors.
package repository

import (
	"context"
	"errors"
	"time"

	"hbnb/internal/domain"

	"gorm.io/gorm"
)

// Repository is the CRUD contract shared by all entities
type Repository[T any] interface {
	Add(ctx context.Context, entity *T) error
	Get(ctx context.Context, id string) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	Page(ctx context.Context, offset, limit int) ([]T, int64, error)
	Update(ctx context.Context, id string, fields map[string]any) (*T, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type gormRepository[T any] struct {
	db   *gorm.DB
	name string // Entity name used in error messages
}

func newGormRepository[T any](db *gorm.DB, name string) gormRepository[T] {
	return gormRepository[T]{db: db, name: name}
}

// Add inserts entity. An id already set on the entity is kept.
func (r gormRepository[T]) Add(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflictf("%s already exists", r.name)
		}
		return domain.Persistence("failed to create "+r.name, err)
	}
	return nil
}

func (r gormRepository[T]) Get(ctx context.Context, id string) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Persistence("failed to get "+r.name, err)
	}
	return &entity, nil
}

func (r gormRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&out).Error; err != nil {
		return nil, domain.Persistence("failed to list "+r.name+"s", err)
	}
	return out, nil
}

// Page returns one page of records ordered by creation time, plus the total count
func (r gormRepository[T]) Page(ctx context.Context, offset, limit int) ([]T, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, domain.Persistence("failed to count "+r.name+"s", err)
	}
	var out []T
	err := r.db.WithContext(ctx).Order("created_at asc").Offset(offset).Limit(limit).Find(&out).Error
	if err != nil {
		return nil, 0, domain.Persistence("failed to list "+r.name+"s", err)
	}
	return out, total, nil
}

// Update applies fields (column name -> value) to the record and returns the
// fresh row. updated_at is always refreshed.
func (r gormRepository[T]) Update(ctx context.Context, id string, fields map[string]any) (*T, error) {
	existing, err := r.Get(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	values := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		values[k] = v
	}
	values["updated_at"] = time.Now().UTC()
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(values).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.Conflictf("%s already exists", r.name)
		}
		return nil, domain.Persistence("failed to update "+r.name, err)
	}
	return r.Get(ctx, id)
}

// Delete removes the record and reports whether one existed
func (r gormRepository[T]) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return false, domain.Persistence("failed to delete "+r.name, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// byIDs loads the records whose id is in ids; unknown ids are skipped
func (r gormRepository[T]) byIDs(ctx context.Context, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("created_at asc").Find(&out).Error; err != nil {
		return nil, domain.Persistence("failed to get "+r.name+"s by id", err)
	}
	return out, nil
}
