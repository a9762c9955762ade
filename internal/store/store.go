// Package store defines the persistence contract the workflow engine and
// handlers depend on. Implementations must give per-document atomicity and
// read-your-writes for a given id; InTransaction is the only multi-entity
// isolation primitive.
package store

import (
	"context"
	"errors"

	"marketplace-app/internal/domain/designers"
	"marketplace-app/internal/domain/products"
	"marketplace-app/internal/domain/users"
	"marketplace-app/internal/domain/videos"
)

var ErrNotFound = errors.New("record not found")

// Filter matches documents by field equality.
type Filter map[string]interface{}

type Sort struct {
	Field string
	Desc  bool
}

type Page struct {
	Offset int
	Limit  int
}

// Join is a read-side join specification: resolve Relation on the loaded
// documents, optionally projecting only Fields. Nested relations use dot
// notation ("Designer.User").
type Join struct {
	Relation string
	Fields   []string
}

type DesignerStore interface {
	FindByID(ctx context.Context, id string, joins ...Join) (*designers.Designer, error)
	Find(ctx context.Context, filter Filter, sort *Sort, page *Page, joins ...Join) ([]designers.Designer, error)
	Create(ctx context.Context, d *designers.Designer) error
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

type UpdateRequestStore interface {
	FindByID(ctx context.Context, id string, joins ...Join) (*designers.UpdateRequest, error)
	Find(ctx context.Context, filter Filter, sort *Sort, page *Page, joins ...Join) ([]designers.UpdateRequest, error)
	Create(ctx context.Context, r *designers.UpdateRequest) error
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

type VideoStore interface {
	FindByID(ctx context.Context, id string, joins ...Join) (*videos.Video, error)
	Find(ctx context.Context, filter Filter, sort *Sort, page *Page, joins ...Join) ([]videos.Video, error)
	Create(ctx context.Context, v *videos.Video) error
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context, filter Filter) (int64, error)
	AddComment(ctx context.Context, c *videos.Comment) error
}

type UserStore interface {
	FindByID(ctx context.Context, id uint) (*users.User, error)
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	UpdateByID(ctx context.Context, id uint, patch map[string]interface{}) error
}

type ProductStore interface {
	FindByID(ctx context.Context, id string, joins ...Join) (*products.Product, error)
	Find(ctx context.Context, filter Filter, sort *Sort, page *Page, joins ...Join) ([]products.Product, error)
	Create(ctx context.Context, p *products.Product) error
	DeleteByID(ctx context.Context, id string) error
}

// Store aggregates the entity stores. InTransaction runs fn against a
// transactional view; an error aborts everything, nil commits.
type Store interface {
	Designers() DesignerStore
	Requests() UpdateRequestStore
	Videos() VideoStore
	Users() UserStore
	Products() ProductStore

	InTransaction(ctx context.Context, fn func(tx Store) error) error
}
