package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/sasayaki/internal/authz"
	"github.com/hitoshi/sasayaki/internal/model"
)

// Resetter は管理リセットが必要とするサービスインターフェース。
type Resetter interface {
	Reset(ctx context.Context) error
}

// Pinger はヘルスチェックが依存するDB疎通確認インターフェース。
// *sql.DB が満たす。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// AdminHandler は管理系エンドポイントのHTTPハンドラー。
type AdminHandler struct {
	resetter Resetter
	guard    *authz.Guard
	pinger   Pinger
}

// NewAdminHandler はAdminHandlerを生成する。
// pingerがnilの場合、ヘルスチェックはDB疎通確認をスキップする。
func NewAdminHandler(resetter Resetter, guard *authz.Guard, pinger Pinger) *AdminHandler {
	return &AdminHandler{
		resetter: resetter,
		guard:    guard,
		pinger:   pinger,
	}
}

// Reset は全データの削除を処理する。開発プラットフォームでのみ許可される。
// POST /admin/reset
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.guard.AuthorizePlatform(); err != nil {
		slog.Warn("admin reset rejected", slog.String("reason", err.Error()))
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return
	}

	if err := h.resetter.Reset(r.Context()); err != nil {
		handleServiceError(w, err)
		return
	}

	slog.Info("all data reset")
	w.WriteHeader(http.StatusOK)
}

// Health はヘルスチェックに応答する。DB疎通が取れない場合は503を返す。
// GET /health
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", slog.String("error", err.Error()))
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NG"))
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
