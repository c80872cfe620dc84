package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/hitoshi/sasayaki/internal/authz"
	"github.com/hitoshi/sasayaki/internal/model"
)

// contextKey はコンテキスト値のキー衝突を防ぐための非公開型。
type contextKey string

const (
	userIDContextKey       contextKey = "userID"
	userIDHolderContextKey contextKey = "userIDHolder"
)

// userIDHolder は内側のミドルウェアで確定したユーザーIDを、
// 派生リクエストを参照できない外側のロギングミドルウェアへ伝える入れ物。
type userIDHolder struct {
	mu     sync.Mutex
	userID uuid.UUID
	set    bool
}

func (h *userIDHolder) store(userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.userID = userID
	h.set = true
}

func (h *userIDHolder) load() (uuid.UUID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.userID, h.set
}

// contextWithUserIDHolder は空のuserIDHolderをコンテキストに載せる。
func contextWithUserIDHolder(ctx context.Context, holder *userIDHolder) context.Context {
	return context.WithValue(ctx, userIDHolderContextKey, holder)
}

// UserIDFromContext はリクエストコンテキストから認証済みユーザーの
// IDを取り出す。認証ミドルウェアを通過していない場合はfalseを返す。
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDContextKey).(uuid.UUID)
	return userID, ok
}

// ContextWithUserID はユーザーIDを持つコンテキストを返す。
// 外側のミドルウェアが仕込んだuserIDHolderがあればそちらにも書き込む。
func ContextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	if holder, ok := ctx.Value(userIDHolderContextKey).(*userIDHolder); ok {
		holder.store(userID)
	}
	return context.WithValue(ctx, userIDContextKey, userID)
}

// NewAuthMiddleware はBearerアクセストークンを検証し、主体のユーザーIDを
// コンテキストに載せるミドルウェアを返す。
// 失敗の具体的な理由（ヘッダー欠落・期限切れ・署名不正など）はログにのみ
// 記録し、クライアントには一律のUNAUTHORIZEDを返す。
func NewAuthMiddleware(guard *authz.Guard, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := guard.Authenticate(r.Header)
			if err != nil {
				logger.Warn("authentication failed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("reason", err.Error()),
				)
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			ctx := ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
