package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/sasayaki/internal/authz"
	"github.com/hitoshi/sasayaki/internal/metrics"
	"github.com/hitoshi/sasayaki/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	Guard             *authz.Guard
	RateLimiter       *middleware.RateLimiter
	CORSAllowedOrigin string

	// サービス
	SessionService SessionServiceInterface
	UserService    UserServiceInterface
	PostService    PostServiceInterface
	Upgrader       PremiumUpgrader
	Resetter       Resetter
	Pinger         Pinger

	// メトリクス
	Collector      metrics.MetricsCollector
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Recovery → Logging
//
// 認証が必要なルートではさらに Auth → RateLimit(General) を通す。
// ログインはIP単位の専用レート制限のみを通す。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.Collector))

	authHandler := NewAuthHandler(deps.SessionService, deps.Collector)
	userHandler := NewUserHandler(deps.UserService)
	postHandler := NewPostHandler(deps.PostService, deps.Collector)
	webhookHandler := NewWebhookHandler(deps.Upgrader, deps.Guard)
	adminHandler := NewAdminHandler(deps.Resetter, deps.Guard, deps.Pinger)

	// --- 認証不要のルート ---

	r.Get("/health", adminHandler.Health)

	// Prometheusスクレイプ用
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// ユーザー登録
	r.Post("/api/users", userHandler.Create)

	// ログイン（IP単位のレート制限付き）
	r.With(deps.RateLimiter.LoginMiddleware()).Post("/api/login", authHandler.Login)

	// トークン管理。資格情報はリフレッシュトークン自体なので
	// アクセストークン認証は通さない
	r.Post("/api/refresh", authHandler.Refresh)
	r.Post("/api/revoke", authHandler.Revoke)

	// 投稿の閲覧は認証不要
	r.Get("/api/posts", postHandler.List)
	r.Get("/api/posts/{id}", postHandler.Get)

	// 決済プロバイダWebhook（ApiKey認可）
	r.Post("/api/webhooks/payment", webhookHandler.HandlePayment)

	// 管理系（プラットフォーム認可）
	r.Post("/admin/reset", adminHandler.Reset)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.Guard, deps.Logger))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Put("/api/users", userHandler.Update)
		r.Post("/api/posts", postHandler.Create)
		r.Delete("/api/posts/{id}", postHandler.Delete)
	})

	return r
}
