package store

import (
	"context"
	"errors"

	"marketplace-app/internal/domain/designers"
	"marketplace-app/internal/domain/products"
	"marketplace-app/internal/domain/users"
	"marketplace-app/internal/domain/videos"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on top of a gorm connection.
type GormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Designers() DesignerStore { return gormEntity[designers.Designer]{s.db} }
func (s *GormStore) Requests() UpdateRequestStore {
	return gormEntity[designers.UpdateRequest]{s.db}
}
func (s *GormStore) Videos() VideoStore     { return gormVideos{gormEntity[videos.Video]{s.db}} }
func (s *GormStore) Users() UserStore       { return gormUsers{s.db} }
func (s *GormStore) Products() ProductStore { return gormEntity[products.Product]{s.db} }

func (s *GormStore) InTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGorm(tx))
	})
}

// gormEntity covers the uuid-keyed document types with one implementation.
type gormEntity[T any] struct {
	db *gorm.DB
}

func applyJoins(q *gorm.DB, joins []Join) *gorm.DB {
	for _, j := range joins {
		if len(j.Fields) > 0 {
			fields := j.Fields
			q = q.Preload(j.Relation, func(db *gorm.DB) *gorm.DB {
				return db.Select(fields)
			})
		} else {
			q = q.Preload(j.Relation)
		}
	}
	return q
}

func (g gormEntity[T]) FindByID(ctx context.Context, id string, joins ...Join) (*T, error) {
	var out T
	q := applyJoins(g.db.WithContext(ctx), joins)
	if err := q.First(&out, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (g gormEntity[T]) Find(ctx context.Context, filter Filter, sort *Sort, page *Page, joins ...Join) ([]T, error) {
	q := applyJoins(g.db.WithContext(ctx), joins)
	if len(filter) > 0 {
		q = q.Where(map[string]interface{}(filter))
	}
	if sort != nil {
		q = q.Order(clause.OrderByColumn{
			Column: clause.Column{Name: sort.Field},
			Desc:   sort.Desc,
		})
	}
	if page != nil {
		q = q.Offset(page.Offset).Limit(page.Limit)
	}
	var out []T
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g gormEntity[T]) Create(ctx context.Context, row *T) error {
	return g.db.WithContext(ctx).Create(row).Error
}

func (g gormEntity[T]) UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error {
	res := g.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g gormEntity[T]) DeleteByID(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g gormEntity[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	var n int64
	q := g.db.WithContext(ctx).Model(new(T))
	if len(filter) > 0 {
		q = q.Where(map[string]interface{}(filter))
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

type gormVideos struct {
	gormEntity[videos.Video]
}

func (g gormVideos) AddComment(ctx context.Context, c *videos.Comment) error {
	return g.db.WithContext(ctx).Create(c).Error
}

// users keep an auto-increment uint primary key, so they sit outside the
// generic uuid entity.
type gormUsers struct {
	db *gorm.DB
}

func (g gormUsers) FindByID(ctx context.Context, id uint) (*users.User, error) {
	var u users.User
	if err := g.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (g gormUsers) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	var u users.User
	if err := g.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (g gormUsers) UpdateByID(ctx context.Context, id uint, patch map[string]interface{}) error {
	res := g.db.WithContext(ctx).Model(&users.User{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
