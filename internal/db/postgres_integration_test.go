package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func newTestPostgres(t *testing.T) *Postgres {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	pg := NewPostgres(pool)
	if err := pg.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE users, posts RESTART IDENTITY`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pg
}

func TestUserRoundTripIntegration(t *testing.T) {
	pg := newTestPostgres(t)
	ctx := context.Background()

	created, err := pg.CreateUser(ctx, "admin", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if _, err := pg.CreateUser(ctx, "admin", "other"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := pg.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.ID != created.ID || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user %+v", got)
	}

	if _, err := pg.GetUserByUsername(ctx, "Admin"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("usernames must be case-sensitive, got %v", err)
	}
}

func TestPostLifecycleIntegration(t *testing.T) {
	pg := newTestPostgres(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		if _, err := pg.CreatePost(ctx, fmt.Sprintf("Post %02d", i), "body"); err != nil {
			t.Fatalf("CreatePost: %v", err)
		}
	}

	count, err := pg.CountPosts(ctx)
	if err != nil || count != 12 {
		t.Fatalf("CountPosts = %d, %v", count, err)
	}

	page, err := pg.ListPosts(ctx, 10, 10)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("second page has %d posts, want 2", len(page))
	}
	if page[0].ID <= page[1].ID {
		t.Fatalf("expected id tie-break descending, got %d then %d", page[0].ID, page[1].ID)
	}

	matches, err := pg.SearchPosts(ctx, "post1")
	if err != nil {
		t.Fatalf("SearchPosts: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("SearchPosts matched %d, want 2", len(matches))
	}

	if _, err := pg.UpdatePost(ctx, 9999, "x", "y"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	updated, err := pg.UpdatePost(ctx, 1, "Renamed", "new body")
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if updated.Title != "Renamed" || updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatalf("unexpected update result %+v", updated)
	}

	deleted, err := pg.DeletePost(ctx, 1)
	if err != nil || !deleted {
		t.Fatalf("DeletePost(1) = %v, %v", deleted, err)
	}
	deleted, err = pg.DeletePost(ctx, 1)
	if err != nil || deleted {
		t.Fatalf("second DeletePost(1) = %v, %v", deleted, err)
	}
}
