package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/simpleblog/backend/internal/model"
)

const postColumns = `id, title, body, created_at, updated_at`

func (db *Postgres) EnsurePostSchema(ctx context.Context) error {
	return db.execAll(ctx, []string{
		`
		CREATE TABLE IF NOT EXISTS posts (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS posts_created_at_idx ON posts(created_at DESC, id DESC)`,
	})
}

// ListPosts returns posts newest first; id breaks ties between equal timestamps.
func (db *Postgres) ListPosts(ctx context.Context, limit, offset int) ([]model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return collectPosts(rows)
}

func (db *Postgres) ListAllPosts(ctx context.Context) ([]model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC, id DESC
	`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return collectPosts(rows)
}

func (db *Postgres) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// SearchPosts matches term case-insensitively against title or body, with
// non-alphanumeric characters removed from both sides of the comparison.
// The caller must pass a term free of LIKE wildcards.
func (db *Postgres) SearchPosts(ctx context.Context, term string) ([]model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE regexp_replace(title, '[^a-zA-Z0-9]', '', 'g') ILIKE '%' || $1 || '%'
		   OR regexp_replace(body, '[^a-zA-Z0-9]', '', 'g') ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC, id DESC
	`
	rows, err := db.Pool.Query(ctx, query, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	return collectPosts(rows)
}

func (db *Postgres) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE id = $1
	`
	post, err := scanPost(db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

func (db *Postgres) CreatePost(ctx context.Context, title, body string) (*model.Post, error) {
	query := `
		INSERT INTO posts (title, body, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING ` + postColumns
	post, err := scanPost(db.Pool.QueryRow(ctx, query, title, body))
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// UpdatePost returns ErrNotFound without touching any row when id is unknown.
func (db *Postgres) UpdatePost(ctx context.Context, id int64, title, body string) (*model.Post, error) {
	query := `
		UPDATE posts
		SET title = $2, body = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + postColumns
	post, err := scanPost(db.Pool.QueryRow(ctx, query, id, title, body))
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// DeletePost reports whether a row was removed.
func (db *Postgres) DeletePost(ctx context.Context, id int64) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var p model.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPosts(rows pgx.Rows) ([]model.Post, error) {
	defer rows.Close()

	list := []model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
