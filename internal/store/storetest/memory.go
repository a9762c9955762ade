// Package storetest provides an in-memory store.Store for tests, with
// per-write failure injection and snapshot-based transaction rollback.
package storetest

import (
	"context"
	"sort"
	"sync"

	"marketplace-app/internal/domain/designers"
	"marketplace-app/internal/domain/products"
	"marketplace-app/internal/domain/users"
	"marketplace-app/internal/domain/videos"
	"marketplace-app/internal/store"

	"github.com/google/uuid"
)

type Memory struct {
	mu sync.Mutex

	designers map[string]designers.Designer
	requests  map[string]designers.UpdateRequest
	videos    map[string]videos.Video
	users     map[uint]users.User
	products  map[string]products.Product
	comments  []videos.Comment

	// FailOn maps "<entity>.<op>" (e.g. "users.update", "videos.create")
	// to an error returned instead of performing the write.
	FailOn map[string]error
}

func New() *Memory {
	return &Memory{
		designers: map[string]designers.Designer{},
		requests:  map[string]designers.UpdateRequest{},
		videos:    map[string]videos.Video{},
		users:     map[uint]users.User{},
		products:  map[string]products.Product{},
		FailOn:    map[string]error{},
	}
}

func (m *Memory) fail(op string) error {
	if err, ok := m.FailOn[op]; ok {
		return err
	}
	return nil
}

// seeding helpers

func (m *Memory) SeedUser(u users.User) users.User {
	if u.ID == 0 {
		u.ID = uint(len(m.users) + 1)
	}
	m.users[u.ID] = u
	return u
}

func (m *Memory) SeedDesigner(d designers.Designer) designers.Designer {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	m.designers[d.ID] = d
	return d
}

func (m *Memory) SeedRequest(r designers.UpdateRequest) designers.UpdateRequest {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	m.requests[r.ID] = r
	return r
}

func (m *Memory) SeedVideo(v videos.Video) videos.Video {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	m.videos[v.ID] = v
	return v
}

func (m *Memory) SeedProduct(p products.Product) products.Product {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.products[p.ID] = p
	return p
}

// direct state accessors for assertions

func (m *Memory) Designer(id string) (designers.Designer, bool) {
	d, ok := m.designers[id]
	return d, ok
}

func (m *Memory) Request(id string) (designers.UpdateRequest, bool) {
	r, ok := m.requests[id]
	return r, ok
}

func (m *Memory) Video(id string) (videos.Video, bool) {
	v, ok := m.videos[id]
	return v, ok
}

func (m *Memory) User(id uint) (users.User, bool) {
	u, ok := m.users[id]
	return u, ok
}

func (m *Memory) RequestCount() int { return len(m.requests) }
func (m *Memory) VideoCount() int   { return len(m.videos) }
func (m *Memory) Comments() []videos.Comment {
	return append([]videos.Comment(nil), m.comments...)
}

// store.Store

func (m *Memory) Designers() store.DesignerStore     { return memDesigners{m} }
func (m *Memory) Requests() store.UpdateRequestStore { return memRequests{m} }
func (m *Memory) Videos() store.VideoStore           { return memVideos{m} }
func (m *Memory) Users() store.UserStore             { return memUsers{m} }
func (m *Memory) Products() store.ProductStore       { return memProducts{m} }

func (m *Memory) InTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

type state struct {
	designers map[string]designers.Designer
	requests  map[string]designers.UpdateRequest
	videos    map[string]videos.Video
	users     map[uint]users.User
	products  map[string]products.Product
	comments  []videos.Comment
}

func (m *Memory) snapshot() state {
	s := state{
		designers: map[string]designers.Designer{},
		requests:  map[string]designers.UpdateRequest{},
		videos:    map[string]videos.Video{},
		users:     map[uint]users.User{},
		products:  map[string]products.Product{},
		comments:  append([]videos.Comment(nil), m.comments...),
	}
	for k, v := range m.designers {
		s.designers[k] = v
	}
	for k, v := range m.requests {
		s.requests[k] = v
	}
	for k, v := range m.videos {
		v.URLs = append(v.URLs[:0:0], v.URLs...)
		v.LikedBy = append(v.LikedBy[:0:0], v.LikedBy...)
		s.videos[k] = v
	}
	for k, v := range m.users {
		s.users[k] = v
	}
	for k, v := range m.products {
		s.products[k] = v
	}
	return s
}

func (m *Memory) restore(s state) {
	m.designers = s.designers
	m.requests = s.requests
	m.videos = s.videos
	m.users = s.users
	m.products = s.products
	m.comments = s.comments
}

func sortByCreatedAt[T any](rows []T, created func(T) int64, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return created(rows[i]) > created(rows[j])
		}
		return created(rows[i]) < created(rows[j])
	})
}
