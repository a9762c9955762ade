package storetest

import (
	"context"

	"marketplace-app/internal/domain/designers"
	"marketplace-app/internal/domain/products"
	"marketplace-app/internal/domain/users"
	"marketplace-app/internal/domain/videos"
	"marketplace-app/internal/store"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type memDesigners struct{ m *Memory }

func (s memDesigners) FindByID(_ context.Context, id string, joins ...store.Join) (*designers.Designer, error) {
	d, ok := s.m.designers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if wantsJoin(joins, "User") {
		if u, ok := s.m.users[d.UserID]; ok {
			d.User = &u
		}
	}
	return &d, nil
}

func (s memDesigners) Find(_ context.Context, filter store.Filter, sortSpec *store.Sort, page *store.Page, joins ...store.Join) ([]designers.Designer, error) {
	var out []designers.Designer
	for _, d := range s.m.designers {
		if v, ok := filter["is_approved"]; ok && d.IsApproved != v.(bool) {
			continue
		}
		if v, ok := filter["user_id"]; ok && d.UserID != v.(uint) {
			continue
		}
		if wantsJoin(joins, "User") {
			if u, ok := s.m.users[d.UserID]; ok {
				d.User = &u
			}
		}
		out = append(out, d)
	}
	if sortSpec != nil && sortSpec.Field == "created_at" {
		sortByCreatedAt(out, func(d designers.Designer) int64 {
			return d.CreatedAt.UnixNano()
		}, sortSpec.Desc)
	}
	return paginate(out, page), nil
}

func (s memDesigners) Create(_ context.Context, d *designers.Designer) error {
	if err := s.m.fail("designers.create"); err != nil {
		return err
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	s.m.designers[d.ID] = *d
	return nil
}

func (s memDesigners) UpdateByID(_ context.Context, id string, patch map[string]interface{}) error {
	if err := s.m.fail("designers.update"); err != nil {
		return err
	}
	d, ok := s.m.designers[id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range patch {
		switch k {
		case "logo_url":
			d.LogoURL = asString(v)
		case "background_url":
			d.BackgroundURL = asString(v)
		case "short_description":
			d.ShortDescription = asString(v)
		case "about":
			d.About = asString(v)
		case "is_approved":
			d.IsApproved = v.(bool)
		}
	}
	s.m.designers[id] = d
	return nil
}

func (s memDesigners) DeleteByID(_ context.Context, id string) error {
	if _, ok := s.m.designers[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.m.designers, id)
	return nil
}

func (s memDesigners) Count(_ context.Context, filter store.Filter) (int64, error) {
	rows, _ := s.Find(context.Background(), filter, nil, nil)
	return int64(len(rows)), nil
}

type memRequests struct{ m *Memory }

func (s memRequests) FindByID(_ context.Context, id string, joins ...store.Join) (*designers.UpdateRequest, error) {
	r, ok := s.m.requests[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if wantsJoin(joins, "Designer") || wantsJoin(joins, "Designer.User") {
		if d, ok := s.m.designers[r.DesignerID]; ok {
			if wantsJoin(joins, "Designer.User") {
				if u, ok := s.m.users[d.UserID]; ok {
					d.User = &u
				}
			}
			r.Designer = &d
		}
	}
	return &r, nil
}

func (s memRequests) Find(_ context.Context, filter store.Filter, sortSpec *store.Sort, page *store.Page, joins ...store.Join) ([]designers.UpdateRequest, error) {
	var out []designers.UpdateRequest
	for _, r := range s.m.requests {
		if v, ok := filter["status"]; ok && r.Status != v.(designers.RequestStatus) {
			continue
		}
		if v, ok := filter["designer_id"]; ok && r.DesignerID != v.(string) {
			continue
		}
		if wantsJoin(joins, "Designer") || wantsJoin(joins, "Designer.User") {
			if d, ok := s.m.designers[r.DesignerID]; ok {
				if wantsJoin(joins, "Designer.User") {
					if u, ok := s.m.users[d.UserID]; ok {
						d.User = &u
					}
				}
				r.Designer = &d
			}
		}
		out = append(out, r)
	}
	if sortSpec != nil && sortSpec.Field == "created_at" {
		sortByCreatedAt(out, func(r designers.UpdateRequest) int64 {
			return r.CreatedAt.UnixNano()
		}, sortSpec.Desc)
	}
	return paginate(out, page), nil
}

func (s memRequests) Create(_ context.Context, r *designers.UpdateRequest) error {
	if err := s.m.fail("requests.create"); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.m.requests[r.ID] = *r
	return nil
}

func (s memRequests) UpdateByID(_ context.Context, id string, patch map[string]interface{}) error {
	if err := s.m.fail("requests.update"); err != nil {
		return err
	}
	r, ok := s.m.requests[id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range patch {
		switch k {
		case "status":
			r.Status = v.(designers.RequestStatus)
		case "admin_comments":
			r.AdminComments = asString(v)
		}
	}
	s.m.requests[id] = r
	return nil
}

func (s memRequests) DeleteByID(_ context.Context, id string) error {
	if _, ok := s.m.requests[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.m.requests, id)
	return nil
}

func (s memRequests) Count(_ context.Context, filter store.Filter) (int64, error) {
	rows, _ := s.Find(context.Background(), filter, nil, nil)
	return int64(len(rows)), nil
}

type memVideos struct{ m *Memory }

func (s memVideos) FindByID(_ context.Context, id string, joins ...store.Join) (*videos.Video, error) {
	v, ok := s.m.videos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if wantsJoin(joins, "User") {
		if u, ok := s.m.users[v.UserID]; ok {
			v.User = &u
		}
	}
	return &v, nil
}

func (s memVideos) Find(_ context.Context, filter store.Filter, sortSpec *store.Sort, page *store.Page, joins ...store.Join) ([]videos.Video, error) {
	var out []videos.Video
	for _, v := range s.m.videos {
		if f, ok := filter["is_approved"]; ok && v.IsApproved != f.(bool) {
			continue
		}
		if f, ok := filter["user_id"]; ok && v.UserID != f.(uint) {
			continue
		}
		out = append(out, v)
	}
	if sortSpec != nil && sortSpec.Field == "created_at" {
		sortByCreatedAt(out, func(v videos.Video) int64 {
			return v.CreatedAt.UnixNano()
		}, sortSpec.Desc)
	}
	return paginate(out, page), nil
}

func (s memVideos) Create(_ context.Context, v *videos.Video) error {
	if err := s.m.fail("videos.create"); err != nil {
		return err
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	s.m.videos[v.ID] = *v
	return nil
}

func (s memVideos) UpdateByID(_ context.Context, id string, patch map[string]interface{}) error {
	if err := s.m.fail("videos.update"); err != nil {
		return err
	}
	v, ok := s.m.videos[id]
	if !ok {
		return store.ErrNotFound
	}
	for k, val := range patch {
		switch k {
		case "is_approved":
			v.IsApproved = val.(bool)
		case "likes":
			v.Likes = val.(int)
		case "liked_by":
			v.LikedBy = val.(datatypes.JSONSlice[uint])
		case "urls":
			v.URLs = append(pq.StringArray(nil), val.(pq.StringArray)...)
		}
	}
	s.m.videos[id] = v
	return nil
}

func (s memVideos) DeleteByID(_ context.Context, id string) error {
	if _, ok := s.m.videos[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.m.videos, id)
	return nil
}

func (s memVideos) Count(_ context.Context, filter store.Filter) (int64, error) {
	rows, _ := s.Find(context.Background(), filter, nil, nil)
	return int64(len(rows)), nil
}

func (s memVideos) AddComment(_ context.Context, c *videos.Comment) error {
	if err := s.m.fail("videos.comment"); err != nil {
		return err
	}
	c.ID = uint(len(s.m.comments) + 1)
	s.m.comments = append(s.m.comments, *c)
	return nil
}

type memUsers struct{ m *Memory }

func (s memUsers) FindByID(_ context.Context, id uint) (*users.User, error) {
	u, ok := s.m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s memUsers) FindByEmail(_ context.Context, email string) (*users.User, error) {
	for _, u := range s.m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s memUsers) UpdateByID(_ context.Context, id uint, patch map[string]interface{}) error {
	if err := s.m.fail("users.update"); err != nil {
		return err
	}
	u, ok := s.m.users[id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range patch {
		switch k {
		case "is_creator":
			u.IsCreator = v.(bool)
		case "is_verified":
			u.IsVerified = v.(bool)
		}
	}
	s.m.users[id] = u
	return nil
}

type memProducts struct{ m *Memory }

func (s memProducts) FindByID(_ context.Context, id string, joins ...store.Join) (*products.Product, error) {
	p, ok := s.m.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s memProducts) Find(_ context.Context, filter store.Filter, sortSpec *store.Sort, page *store.Page, joins ...store.Join) ([]products.Product, error) {
	var out []products.Product
	for _, p := range s.m.products {
		if f, ok := filter["designer_id"]; ok && p.DesignerID != f.(string) {
			continue
		}
		out = append(out, p)
	}
	return paginate(out, page), nil
}

func (s memProducts) Create(_ context.Context, p *products.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.m.products[p.ID] = *p
	return nil
}

func (s memProducts) DeleteByID(_ context.Context, id string) error {
	if _, ok := s.m.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.m.products, id)
	return nil
}

// helpers

func wantsJoin(joins []store.Join, relation string) bool {
	for _, j := range joins {
		if j.Relation == relation {
			return true
		}
	}
	return false
}

func paginate[T any](rows []T, page *store.Page) []T {
	if page == nil {
		return rows
	}
	if page.Offset >= len(rows) {
		return nil
	}
	rows = rows[page.Offset:]
	if page.Limit > 0 && page.Limit < len(rows) {
		rows = rows[:page.Limit]
	}
	return rows
}

func asString(v interface{}) string {
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
