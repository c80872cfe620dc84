// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/sasayaki/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成する。メールアドレス重複の場合はエラーを返す。
	Create(ctx context.Context, user *model.User) error

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// UpdateCredentials はメールアドレスとパスワードハッシュを更新する。
	UpdateCredentials(ctx context.Context, id uuid.UUID, email, hashedPassword string) (*model.User, error)

	// UpgradeToPremium はプレミアムフラグを設定する。
	// 対象ユーザーが存在しない場合はfalseを返す。
	UpgradeToPremium(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteAll は全ユーザーを削除する。投稿とリフレッシュトークンは
	// CASCADE削除される。dev環境の管理リセット専用。
	DeleteAll(ctx context.Context) error
}

// PostRepository は投稿データの永続化インターフェース。
type PostRepository interface {
	// Create は投稿を作成する。
	Create(ctx context.Context, post *model.Post) error

	// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)

	// List は投稿一覧をcreated_atで並べて返す。
	// authorIDがnilでない場合はそのユーザーの投稿のみに絞り込む。
	List(ctx context.Context, authorID *uuid.UUID, order model.PostSortOrder) ([]*model.Post, error)

	// Delete は指定IDの投稿を削除する。
	Delete(ctx context.Context, id uuid.UUID) error
}

// RefreshTokenRepository はリフレッシュトークンの永続化インターフェース。
// すべての変更操作は単一のアトミックなSQL文として実行される。
type RefreshTokenRepository interface {
	// Create は新しいリフレッシュトークンを保存する。
	// トークンの衝突チェックは行わない。呼び出し側が十分な長さの
	// 暗号乱数トークンを生成する責任を持つ。
	Create(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error

	// FindByToken はトークン文字列の完全一致でレコードを取得する。
	// 見つからない場合はnilを返す。
	FindByToken(ctx context.Context, token string) (*model.RefreshToken, error)

	// Revoke は該当レコードのrevoked_atを現在時刻に設定する。
	// トークンが存在しない場合もエラーにしない。トークンを持たない
	// 呼び出し側に存在情報を漏らさないための仕様。
	Revoke(ctx context.Context, token string) error

	// DeleteExpiredBefore はexpires_atがcutoffより古いレコードを削除し、
	// 削除件数を返す。保持期間超過レコードのクリーンアップ用。
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
