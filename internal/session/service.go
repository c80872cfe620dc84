// Package session はログイン・トークンリフレッシュ・失効の
// セッション管理ロジックを提供する。
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/sasayaki/internal/auth"
	"github.com/hitoshi/sasayaki/internal/model"
	"github.com/hitoshi/sasayaki/internal/repository"
)

var (
	// ErrInvalidCredentials はログイン失敗を示す。
	// メールアドレス不明とパスワード不一致を意図的に区別しない。
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRefreshTokenNotFound は未知のリフレッシュトークンを示す。
	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	// ErrRefreshTokenRevoked は失効済みリフレッシュトークンを示す。
	// 一度失効したトークンは以後のリフレッシュを恒久的に拒否する。
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")

	// ErrRefreshTokenExpired は期限切れリフレッシュトークンを示す。
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// dummyHash はアカウントが存在しない場合のログインで検証対象にする
// ダミーのパスワードハッシュ。メールアドレスの存在有無にかかわらず
// 必ず1回ハッシュ検証を実行することで、応答時間の差から
// アカウントの存在が推測されることを防ぐ。
// （"dummy-password-for-timing" のargon2idハッシュ。平文側と一致することはない）
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=2$c2FzYXlha2ktZHVtbXktc2FsdA$kYkkLT3nCUkPBIuTC2xWVH5FHASUxJmBJlCfXef3a7c"

// ServiceConfig はセッションサービスの設定。
type ServiceConfig struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration // アクセストークン有効期間（推奨1時間）
	RefreshTokenTTL time.Duration // リフレッシュトークン有効期間（推奨60日）
}

// Service はセッション管理のビジネスロジックを提供する。
// アクセストークンはステートレスなJWT、リフレッシュトークンは
// 永続化された不透明文字列として扱う。
type Service struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	config    ServiceConfig
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, tokenRepo repository.RefreshTokenRepository, config ServiceConfig) *Service {
	return &Service{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		config:    config,
	}
}

// LoginResult はログイン成功時の応答。
// Userはパスワードハッシュを除いた公開プロフィール。
type LoginResult struct {
	User         model.User
	AccessToken  string
	RefreshToken string
}

// Login はメールアドレスとパスワードを検証し、成功時に
// アクセストークンとリフレッシュトークンのペアを発行する。
// リフレッシュトークンは永続化される。
//
// 失敗はアカウント不明・パスワード不一致のいずれもErrInvalidCredentialsに
// 集約する。アカウントが見つからない場合もダミーハッシュに対して
// 検証を実行し、タイミング差でアカウントの存在を漏らさない。
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	hashed := dummyHash
	if user != nil {
		hashed = user.HashedPassword
	}

	match, err := auth.VerifyPassword(password, hashed)
	if err != nil {
		// 保存されたハッシュの破損。認証失敗とは区別してログに残すが、
		// 外部への応答は通常のログイン失敗と同一にする。
		slog.Error("stored password hash is malformed",
			slog.String("error", err.Error()),
		)
		return nil, ErrInvalidCredentials
	}
	if user == nil || !match {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := auth.MakeJWT(user.ID, s.config.JWTSecret, s.config.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := auth.MakeRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiresAt := time.Now().Add(s.config.RefreshTokenTTL)
	if err := s.tokenRepo.Create(ctx, refreshToken, user.ID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID.String()),
	)

	return &LoginResult{
		User:         user.PublicProfile(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh はリフレッシュトークンを検証し、同一主体の新しい
// アクセストークンを発行する。リフレッシュトークン自体は
// ローテーションも延長もしない。
//
// 判定は1回のフェッチで得たスナップショットに対して行う。
// 失効（revoked_atあり）→ ErrRefreshTokenRevoked、
// 期限切れ → ErrRefreshTokenExpired、未知 → ErrRefreshTokenNotFound。
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	record, err := s.tokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if record == nil {
		return "", ErrRefreshTokenNotFound
	}
	if record.RevokedAt != nil {
		return "", ErrRefreshTokenRevoked
	}
	if time.Now().After(record.ExpiresAt) {
		return "", ErrRefreshTokenExpired
	}

	accessToken, err := auth.MakeJWT(record.UserID, s.config.JWTSecret, s.config.AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}

	return accessToken, nil
}

// Revoke はリフレッシュトークンを失効させる。
// 未知のトークンに対しても成功として扱い、存在情報を漏らさない。
// 失効は恒久的で、以後のリフレッシュは常に失敗する。
func (s *Service) Revoke(ctx context.Context, refreshToken string) error {
	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
