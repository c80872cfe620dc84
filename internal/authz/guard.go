// Package authz はリクエスト資格情報の検証と権限判定を提供する。
//
// 認証(Authenticate)はAuthorizationヘッダーからアクセストークンを
// 取り出して検証し、権限判定(Authorize*)は認証済み主体が対象の
// 操作を行えるかを判断する。失敗理由は型付きエラーとして返し、
// HTTP境界でのステータス判定(401/403)に使う。
package authz

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/hitoshi/sasayaki/internal/auth"
	"github.com/hitoshi/sasayaki/internal/config"
)

var (
	// ErrNotOwner は対象リソースの所有者以外による操作を表す。
	ErrNotOwner = errors.New("authz: requester does not own the resource")
	// ErrInvalidAPIKey はAPIキーの不一致を表す。
	ErrInvalidAPIKey = errors.New("authz: invalid api key")
	// ErrPlatformForbidden は開発プラットフォーム以外での管理操作を表す。
	ErrPlatformForbidden = errors.New("authz: operation is restricted to the dev platform")
)

// Guard は認証と権限判定をまとめて担う。
type Guard struct {
	jwtSecret     string
	paymentAPIKey string
	platform      string
}

// NewGuard はGuardを生成する。
func NewGuard(cfg *config.Config) *Guard {
	return &Guard{
		jwtSecret:     cfg.JWTSecret,
		paymentAPIKey: cfg.PaymentAPIKey,
		platform:      cfg.Platform,
	}
}

// Authenticate はAuthorizationヘッダーのBearerトークンを検証し、
// 主体のユーザーIDを返す。ヘッダー不備・トークン不正は
// authパッケージの型付きエラーをそのまま返す。
func (g *Guard) Authenticate(header http.Header) (uuid.UUID, error) {
	token, err := auth.GetBearerToken(header)
	if err != nil {
		return uuid.Nil, err
	}
	return auth.ValidateJWT(token, g.jwtSecret)
}

// AuthorizeOwner は操作主体が対象リソースの所有者であることを検証する。
func (g *Guard) AuthorizeOwner(requesterID, ownerID uuid.UUID) error {
	if requesterID != ownerID {
		return ErrNotOwner
	}
	return nil
}

// AuthorizeAPIKey はAuthorizationヘッダーのApiKeyが決済プロバイダ用の
// キーと一致することを検証する。比較は一定時間で行う。
func (g *Guard) AuthorizeAPIKey(header http.Header) error {
	key, err := auth.GetAPIKey(header)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(g.paymentAPIKey)) != 1 {
		return ErrInvalidAPIKey
	}
	return nil
}

// AuthorizePlatform は管理系操作が開発プラットフォームでのみ
// 許可されることを検証する。
func (g *Guard) AuthorizePlatform() error {
	if g.platform != config.PlatformDev {
		return ErrPlatformForbidden
	}
	return nil
}
