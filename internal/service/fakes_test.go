package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/simpleblog/backend/internal/db"
	"github.com/simpleblog/backend/internal/model"
)

var errStoreDown = errors.New("connection refused")

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int64
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.users[username]; ok {
		return nil, db.ErrDuplicate
	}
	f.nextID++
	user := &model.User{ID: f.nextID, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f.users[username] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[username]
	if !ok {
		return nil, db.ErrNotFound
	}
	return user, nil
}

type fakePostRepo struct {
	posts     []model.Post
	nextID    int64
	clock     time.Time
	mutations int
	lists     int
	searched  []string
	err       error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// seed adds n posts, each one minute newer than the last.
func (f *fakePostRepo) seed(n int) {
	for i := 0; i < n; i++ {
		f.nextID++
		f.clock = f.clock.Add(time.Minute)
		f.posts = append(f.posts, model.Post{
			ID:        f.nextID,
			Title:     "Post",
			Body:      "body",
			CreatedAt: f.clock,
			UpdatedAt: f.clock,
		})
	}
}

func (f *fakePostRepo) sorted() []model.Post {
	out := append([]model.Post(nil), f.posts...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (f *fakePostRepo) ListPosts(ctx context.Context, limit, offset int) ([]model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lists++
	all := f.sorted()
	if offset >= len(all) {
		return []model.Post{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakePostRepo) ListAllPosts(ctx context.Context) ([]model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sorted(), nil
}

func (f *fakePostRepo) CountPosts(ctx context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.posts)), nil
}

func (f *fakePostRepo) SearchPosts(ctx context.Context, term string) ([]model.Post, error) {
	f.searched = append(f.searched, term)
	if f.err != nil {
		return nil, f.err
	}
	needle := strings.ToLower(term)
	out := []model.Post{}
	for _, p := range f.sorted() {
		title := strings.ToLower(SanitizeSearchTerm(p.Title))
		body := strings.ToLower(SanitizeSearchTerm(p.Body))
		if strings.Contains(title, needle) || strings.Contains(body, needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakePostRepo) CreatePost(ctx context.Context, title, body string) (*model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mutations++
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	p := model.Post{ID: f.nextID, Title: title, Body: body, CreatedAt: f.clock, UpdatedAt: f.clock}
	f.posts = append(f.posts, p)
	return &p, nil
}

func (f *fakePostRepo) UpdatePost(ctx context.Context, id int64, title, body string) (*model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.mutations++
			f.clock = f.clock.Add(time.Minute)
			f.posts[i].Title = title
			f.posts[i].Body = body
			f.posts[i].UpdatedAt = f.clock
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakePostRepo) DeletePost(ctx context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.mutations++
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
