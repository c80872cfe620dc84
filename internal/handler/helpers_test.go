package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/sasayaki/internal/authz"
	"github.com/hitoshi/sasayaki/internal/config"
	"github.com/hitoshi/sasayaki/internal/middleware"
)

// withUserID は認証済みユーザーIDをリクエストコンテキストに注入する。
func withUserID(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

// newTestGuard はテスト用のGuardを生成する。
func newTestGuard(platform string) *authz.Guard {
	return authz.NewGuard(&config.Config{
		JWTSecret:     "test-secret",
		PaymentAPIKey: "payment-key-123",
		Platform:      platform,
	})
}

// nopCollector はメトリクス収集の無効実装。記録された回数だけ数える。
type nopCollector struct {
	loginSuccess int
	loginFail    int
	tokenRefresh int
	tokenRevoke  int
	postCreated  int
}

func (c *nopCollector) RecordLoginSuccess()                       { c.loginSuccess++ }
func (c *nopCollector) RecordLoginFailure()                       { c.loginFail++ }
func (c *nopCollector) RecordTokenRefresh()                       { c.tokenRefresh++ }
func (c *nopCollector) RecordTokenRevoke()                        { c.tokenRevoke++ }
func (c *nopCollector) RecordPostCreated()                        { c.postCreated++ }
func (c *nopCollector) RecordHTTPStatus(statusCode int)           {}
func (c *nopCollector) RecordRequestLatency(duration time.Duration) {}
func (c *nopCollector) RecordTokensPurged(count int64)            {}
