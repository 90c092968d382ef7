package repository

import (
	"context"

	"gorm.io/gorm"
)

// table holds the statements shared by every repository.
type table[T any] struct {
	db *gorm.DB
}

func (t table[T]) conn(ctx context.Context) *gorm.DB {
	return t.db.WithContext(ctx)
}

func (t table[T]) create(ctx context.Context, rec *T) error {
	return translate(t.conn(ctx).Create(rec).Error)
}

func (t table[T]) take(ctx context.Context, query string, args ...any) (T, error) {
	var rec T
	err := t.conn(ctx).Where(query, args...).Take(&rec).Error
	return rec, translate(err)
}

// update writes every column of rec onto the row matched by query.
func (t table[T]) update(ctx context.Context, rec *T, query string, args ...any) error {
	res := t.conn(ctx).Model(new(T)).Where(query, args...).Select("*").Updates(rec)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t table[T]) updateColumns(ctx context.Context, values map[string]any, query string, args ...any) error {
	res := t.conn(ctx).Model(new(T)).Where(query, args...).Updates(values)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t table[T]) remove(ctx context.Context, query string, args ...any) (bool, error) {
	res := t.conn(ctx).Where(query, args...).Delete(new(T))
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (t table[T]) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := t.conn(ctx).Model(new(T)).Where(query, args...).Count(&n).Error
	return n, translate(err)
}

func page(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}
