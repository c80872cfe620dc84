package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hitoshi/sasayaki/internal/authz"
	"github.com/hitoshi/sasayaki/internal/model"
)

// eventUserUpgraded は決済プロバイダのプレミアム昇格イベント名。
const eventUserUpgraded = "user.upgraded"

// PremiumUpgrader は決済Webhookが必要とするサービスインターフェース。
type PremiumUpgrader interface {
	UpgradeToPremium(ctx context.Context, userID uuid.UUID) error
}

// WebhookHandler は決済プロバイダからのWebhookを処理する。
type WebhookHandler struct {
	upgrader PremiumUpgrader
	guard    *authz.Guard
}

// NewWebhookHandler はWebhookHandlerを生成する。
func NewWebhookHandler(upgrader PremiumUpgrader, guard *authz.Guard) *WebhookHandler {
	return &WebhookHandler{
		upgrader: upgrader,
		guard:    guard,
	}
}

// paymentWebhookRequest は決済Webhookのリクエストボディ。
type paymentWebhookRequest struct {
	Event string `json:"event"`
	Data  struct {
		UserID uuid.UUID `json:"user_id"`
	} `json:"data"`
}

// HandlePayment は決済プロバイダからの通知を処理する。
// ApiKeyスキームのAuthorizationヘッダーで認可する。
// 関知しないイベントは本文を処理せず204を返す。
// POST /api/webhooks/payment
func (h *WebhookHandler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.guard.AuthorizeAPIKey(r.Header); err != nil {
		slog.Warn("webhook authorization failed", slog.String("reason", err.Error()))
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req paymentWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestResponse(w)
		return
	}

	if req.Event != eventUserUpgraded {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.upgrader.UpgradeToPremium(r.Context(), req.Data.UserID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
