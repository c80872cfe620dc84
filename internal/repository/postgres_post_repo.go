package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/hitoshi/sasayaki/internal/model"
)

// PostgresPostRepo はPostgreSQLを使用した投稿リポジトリ。
type PostgresPostRepo struct {
	db *sql.DB
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// Create は投稿を作成する。
func (r *PostgresPostRepo) Create(ctx context.Context, post *model.Post) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, user_id, body, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		post.ID, post.UserID, post.Body, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, body, created_at, updated_at FROM posts WHERE id = $1`,
		id,
	).Scan(&post.ID, &post.UserID, &post.Body, &post.CreatedAt, &post.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	return post, nil
}

// List は投稿一覧をcreated_atで並べて返す。
// authorIDがnilでない場合はそのユーザーの投稿のみに絞り込む。
func (r *PostgresPostRepo) List(ctx context.Context, authorID *uuid.UUID, order model.PostSortOrder) ([]*model.Post, error) {
	// orderはmodel.PostSortOrderの2値のみ受け付けるため、
	// SQLへの文字列連結はここに限り安全。
	direction := "ASC"
	if order == model.PostSortDesc {
		direction = "DESC"
	}

	var rows *sql.Rows
	var err error
	if authorID != nil {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, user_id, body, created_at, updated_at
			 FROM posts WHERE user_id = $1 ORDER BY created_at `+direction,
			*authorID,
		)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, user_id, body, created_at, updated_at
			 FROM posts ORDER BY created_at `+direction,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post := &model.Post{}
		if err := rows.Scan(&post.ID, &post.UserID, &post.Body, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// Delete は指定IDの投稿を削除する。
func (r *PostgresPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)
