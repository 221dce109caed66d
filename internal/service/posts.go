package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/simpleblog/backend/internal/db"
	"github.com/simpleblog/backend/internal/model"
)

const DefaultPageSize = 10

var searchStrip = regexp.MustCompile(`[^a-zA-Z0-9]`)

// PostRepository is the content store.
type PostRepository interface {
	ListPosts(ctx context.Context, limit, offset int) ([]model.Post, error)
	ListAllPosts(ctx context.Context) ([]model.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	SearchPosts(ctx context.Context, term string) ([]model.Post, error)
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	CreatePost(ctx context.Context, title, body string) (*model.Post, error)
	UpdatePost(ctx context.Context, id int64, title, body string) (*model.Post, error)
	DeletePost(ctx context.Context, id int64) (bool, error)
}

type PostService struct {
	repo         PostRepository
	pageSize     int
	storeTimeout time.Duration
}

func NewPostService(repo PostRepository, pageSize int, storeTimeout time.Duration) *PostService {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &PostService{
		repo:         repo,
		pageSize:     pageSize,
		storeTimeout: storeTimeout,
	}
}

func (s *PostService) PageSize() int {
	return s.pageSize
}

// List returns one page of posts, newest first. page below 1 is treated as 1
// and pageSize below 1 falls back to the configured size.
func (s *PostService) List(ctx context.Context, page, pageSize int) (*model.PostPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.pageSize
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	total, err := s.repo.CountPosts(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	// Pages past the data never reach the store, so the offset below cannot overflow.
	if int64(page) > totalPages(pageSize, total) {
		return &model.PostPage{
			Items:    []model.Post{},
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		}, nil
	}

	items, err := s.repo.ListPosts(ctx, pageSize, pageSize*(page-1))
	if err != nil {
		return nil, storeError(err)
	}

	return &model.PostPage{
		Items:       items,
		Page:        page,
		PageSize:    pageSize,
		Total:       total,
		HasNextPage: HasNextPage(page, pageSize, total),
	}, nil
}

// HasNextPage reports page+1 <= ceil(total/pageSize), compared as
// page < ceil(total/pageSize) so a huge page cannot wrap.
func HasNextPage(page, pageSize int, total int64) bool {
	return int64(page) < totalPages(pageSize, total)
}

func totalPages(pageSize int, total int64) int64 {
	if pageSize < 1 || total <= 0 {
		return 0
	}
	size := int64(pageSize)
	return total/size + min(total%size, 1)
}

// ListAll returns every post, newest first.
func (s *PostService) ListAll(ctx context.Context) ([]model.Post, error) {
	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	posts, err := s.repo.ListAllPosts(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*model.Post, error) {
	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return post, nil
}

// SanitizeSearchTerm drops every character that is not an ASCII letter or digit.
func SanitizeSearchTerm(query string) string {
	return searchStrip.ReplaceAllString(query, "")
}

// Search matches the sanitized query against title or body, ignoring case
// and punctuation, so "hello!!world" finds "Hello World".
// A query that sanitizes to nothing matches nothing.
func (s *PostService) Search(ctx context.Context, query string) ([]model.Post, error) {
	term := SanitizeSearchTerm(query)
	if term == "" {
		return []model.Post{}, nil
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	posts, err := s.repo.SearchPosts(ctx, term)
	if err != nil {
		return nil, storeError(err)
	}
	return posts, nil
}

func (s *PostService) Create(ctx context.Context, actor *model.AuthUser, title, body string) (*model.Post, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if err := validatePost(title, body); err != nil {
		return nil, err
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	post, err := s.repo.CreatePost(ctx, title, body)
	if err != nil {
		return nil, storeError(err)
	}
	return post, nil
}

// Update overwrites title and body. An unknown id yields ErrNotFound.
func (s *PostService) Update(ctx context.Context, actor *model.AuthUser, id int64, title, body string) (*model.Post, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if err := validatePost(title, body); err != nil {
		return nil, err
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	post, err := s.repo.UpdatePost(ctx, id, title, body)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return post, nil
}

// Delete removes the post. Deleting an unknown id is a no-op, not an error.
func (s *PostService) Delete(ctx context.Context, actor *model.AuthUser, id int64) error {
	if actor == nil {
		return ErrUnauthorized
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	if _, err := s.repo.DeletePost(ctx, id); err != nil {
		return storeError(err)
	}
	return nil
}

func validatePost(title, body string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		return ErrInvalidInput
	}
	return nil
}
