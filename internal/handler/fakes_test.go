package handler

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/simpleblog/backend/internal/db"
	"github.com/simpleblog/backend/internal/model"
	"github.com/simpleblog/backend/internal/service"
)

type memoryUsers struct {
	users  map[string]*model.User
	nextID int64
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*model.User{}}
}

func (m *memoryUsers) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	if _, ok := m.users[username]; ok {
		return nil, db.ErrDuplicate
	}
	m.nextID++
	u := &model.User{ID: m.nextID, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	m.users[username] = u
	return u, nil
}

func (m *memoryUsers) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, db.ErrNotFound
	}
	return u, nil
}

type memoryPosts struct {
	posts     []model.Post
	nextID    int64
	clock     time.Time
	mutations int
}

func newMemoryPosts() *memoryPosts {
	return &memoryPosts{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memoryPosts) add(title, body string) model.Post {
	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	p := model.Post{ID: m.nextID, Title: title, Body: body, CreatedAt: m.clock, UpdatedAt: m.clock}
	m.posts = append(m.posts, p)
	return p
}

func (m *memoryPosts) sorted() []model.Post {
	out := append([]model.Post(nil), m.posts...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memoryPosts) ListPosts(ctx context.Context, limit, offset int) ([]model.Post, error) {
	all := m.sorted()
	if offset >= len(all) {
		return []model.Post{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memoryPosts) ListAllPosts(ctx context.Context) ([]model.Post, error) {
	return m.sorted(), nil
}

func (m *memoryPosts) CountPosts(ctx context.Context) (int64, error) {
	return int64(len(m.posts)), nil
}

func (m *memoryPosts) SearchPosts(ctx context.Context, term string) ([]model.Post, error) {
	needle := strings.ToLower(term)
	out := []model.Post{}
	for _, p := range m.sorted() {
		if strings.Contains(strings.ToLower(service.SanitizeSearchTerm(p.Title)), needle) ||
			strings.Contains(strings.ToLower(service.SanitizeSearchTerm(p.Body)), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryPosts) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memoryPosts) CreatePost(ctx context.Context, title, body string) (*model.Post, error) {
	m.mutations++
	p := m.add(title, body)
	return &p, nil
}

func (m *memoryPosts) UpdatePost(ctx context.Context, id int64, title, body string) (*model.Post, error) {
	for i := range m.posts {
		if m.posts[i].ID == id {
			m.mutations++
			m.posts[i].Title = title
			m.posts[i].Body = body
			m.posts[i].UpdatedAt = time.Now()
			p := m.posts[i]
			return &p, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memoryPosts) DeletePost(ctx context.Context, id int64) (bool, error) {
	for i := range m.posts {
		if m.posts[i].ID == id {
			m.mutations++
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(ctx context.Context) error {
	return s.err
}

var errPingFailed = errors.New("dial tcp: connection refused")
