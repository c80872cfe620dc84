package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/sasayaki/internal/auth"
	"github.com/hitoshi/sasayaki/internal/metrics"
	"github.com/hitoshi/sasayaki/internal/model"
	"github.com/hitoshi/sasayaki/internal/session"
)

// SessionServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type SessionServiceInterface interface {
	// Login は資格情報を検証してトークンペアを発行する。
	Login(ctx context.Context, email, password string) (*session.LoginResult, error)
	// Refresh はリフレッシュトークンから新しいアクセストークンを発行する。
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Revoke はリフレッシュトークンを失効させる。
	Revoke(ctx context.Context, refreshToken string) error
}

// AuthHandler はログイン・トークン再発行・失効のHTTPハンドラー。
type AuthHandler struct {
	service   SessionServiceInterface
	collector metrics.MetricsCollector
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service SessionServiceInterface, collector metrics.MetricsCollector) *AuthHandler {
	return &AuthHandler{
		service:   service,
		collector: collector,
	}
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse はログイン成功時のレスポンス。
type loginResponse struct {
	userResponse
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// refreshResponse はトークン再発行成功時のレスポンス。
type refreshResponse struct {
	Token string `json:"token"`
}

// Login はログインを処理する。
// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestResponse(w)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			h.collector.RecordLoginFailure()
			writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewInvalidCredentialsError())
			return
		}
		handleServiceError(w, err)
		return
	}

	h.collector.RecordLoginSuccess()
	writeJSONResponse(w, http.StatusOK, loginResponse{
		userResponse: toUserResponse(result.User),
		Token:        result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// Refresh はアクセストークンの再発行を処理する。
// リフレッシュトークンはAuthorizationヘッダーのBearerとして受け取る。
// POST /api/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := auth.GetBearerToken(r.Header)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	accessToken, err := h.service.Refresh(r.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrRefreshTokenNotFound),
			errors.Is(err, session.ErrRefreshTokenRevoked),
			errors.Is(err, session.ErrRefreshTokenExpired):
			// 失敗理由はログにのみ記録し、クライアントには一律401を返す
			slog.Warn("token refresh rejected", slog.String("reason", err.Error()))
			writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		default:
			handleServiceError(w, err)
		}
		return
	}

	h.collector.RecordTokenRefresh()
	writeJSONResponse(w, http.StatusOK, refreshResponse{Token: accessToken})
}

// Revoke はリフレッシュトークンの失効を処理する。
// 未知のトークンでも204を返す。トークンを持たない呼び出し側に
// 存在情報を漏らさないための仕様。
// POST /api/revoke
func (h *AuthHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := auth.GetBearerToken(r.Header)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	if err := h.service.Revoke(r.Context(), refreshToken); err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordTokenRevoke()
	w.WriteHeader(http.StatusNoContent)
}
