package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/sasayaki/internal/model"
)

// PostgresRefreshTokenRepo はPostgreSQLを使用したリフレッシュトークンリポジトリ。
// create / revoke はいずれも単一のSQL文で完結し、
// read-modify-writeの競合は発生しない。
type PostgresRefreshTokenRepo struct {
	db *sql.DB
}

// NewPostgresRefreshTokenRepo はPostgresRefreshTokenRepoを生成する。
func NewPostgresRefreshTokenRepo(db *sql.DB) *PostgresRefreshTokenRepo {
	return &PostgresRefreshTokenRepo{db: db}
}

// Create は新しいリフレッシュトークンを保存する。
func (r *PostgresRefreshTokenRepo) Create(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (token, user_id, created_at, expires_at)
		 VALUES ($1, $2, now(), $3)`,
		token, userID, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

// FindByToken はトークン文字列の完全一致でレコードを取得する。
// 見つからない場合はnilを返す。
func (r *PostgresRefreshTokenRepo) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	rt := &model.RefreshToken{}
	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_id, created_at, expires_at, revoked_at
		 FROM refresh_tokens WHERE token = $1`,
		token,
	).Scan(&rt.Token, &rt.UserID, &rt.CreatedAt, &rt.ExpiresAt, &rt.RevokedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}

	return rt, nil
}

// Revoke は該当レコードのrevoked_atを現在時刻に設定する。
// トークンが存在しない場合もエラーにしない。
func (r *PostgresRefreshTokenRepo) Revoke(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at = now() WHERE token = $1`,
		token,
	)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// DeleteExpiredBefore はexpires_atがcutoffより古いレコードを削除し、削除件数を返す。
func (r *PostgresRefreshTokenRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// compile-time interface check
var _ RefreshTokenRepository = (*PostgresRefreshTokenRepo)(nil)
