package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store over one SQL table. Records are keyed by a string "id" column.
type GormStore[T any] struct {
	db *gorm.DB
}

// NewGormStore creates a store for the table backing T
func NewGormStore[T any](db *gorm.DB) *GormStore[T] {
	return &GormStore[T]{db: db}
}

func (r *GormStore[T]) where(ctx context.Context, filter Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T))
	if len(filter) > 0 {
		q = q.Where(map[string]interface{}(filter))
	}
	return q
}

func (r *GormStore[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	order := "created_at desc, id desc"
	if opts.OldestFirst {
		order = "created_at asc, id asc"
	}
	q := r.where(ctx, opts.Filter).Order(order)
	if opts.Limit > 0 {
		q = q.Offset(int(opts.Skip)).Limit(int(opts.Limit))
	}

	docs := make([]T, 0)
	if err := q.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *GormStore[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var doc T
	if err := r.where(ctx, filter).First(&doc).Error; err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func (r *GormStore[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var doc T
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func (r *GormStore[T]) Create(ctx context.Context, doc *T) error {
	return translate(r.db.WithContext(ctx).Create(doc).Error)
}

func (r *GormStore[T]) Update(ctx context.Context, id string, fields Fields) (*T, error) {
	doc, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(doc).Updates(map[string]interface{}(fields)).Error; err != nil {
			return nil, translate(err)
		}
	}
	return r.GetByID(ctx, id)
}

func (r *GormStore[T]) UpdateWhere(ctx context.Context, filter Filter, fields Fields) (int64, error) {
	res := r.where(ctx, filter).Updates(map[string]interface{}(fields))
	return res.RowsAffected, translate(res.Error)
}

func (r *GormStore[T]) Delete(ctx context.Context, id string) (*T, error) {
	doc, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *GormStore[T]) DeleteKeys(ctx context.Context, keys []string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", keys).Delete(new(T))
	return res.RowsAffected, res.Error
}

func (r *GormStore[T]) Restore(ctx context.Context, docs []T) error {
	if len(docs) == 0 {
		return nil
	}
	// rows that are still present are left alone
	return translate(r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&docs).Error)
}

func (r *GormStore[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	var n int64
	err := r.where(ctx, filter).Count(&n).Error
	return n, err
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
