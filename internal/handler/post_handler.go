package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hitoshi/sasayaki/internal/metrics"
	"github.com/hitoshi/sasayaki/internal/middleware"
	"github.com/hitoshi/sasayaki/internal/model"
)

// PostServiceInterface は投稿ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	// Create は投稿を作成する。本文は検証・モデレーション済みで保存される。
	Create(ctx context.Context, userID uuid.UUID, body string) (*model.Post, error)
	// Get は投稿を1件取得する。
	Get(ctx context.Context, postID uuid.UUID) (*model.Post, error)
	// List は投稿一覧を返す。
	List(ctx context.Context, authorID *uuid.UUID, order string) ([]*model.Post, error)
	// Delete は所有者確認の上で投稿を削除する。
	Delete(ctx context.Context, requesterID, postID uuid.UUID) error
}

// PostHandler は投稿管理のHTTPハンドラー。
type PostHandler struct {
	service   PostServiceInterface
	collector metrics.MetricsCollector
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service PostServiceInterface, collector metrics.MetricsCollector) *PostHandler {
	return &PostHandler{
		service:   service,
		collector: collector,
	}
}

// createPostRequest は投稿作成リクエストのボディ。
type createPostRequest struct {
	Body string `json:"body"`
}

// Create は投稿作成を処理する。
// POST /api/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestResponse(w)
		return
	}

	post, err := h.service.Create(r.Context(), userID, req.Body)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordPostCreated()
	writeJSONResponse(w, http.StatusCreated, toPostResponse(post))
}

// List は投稿一覧を取得する。
// author_idクエリで作者を絞り込み、sortクエリ（asc/desc）で並び順を指定できる。
// GET /api/posts?author_id=xxx&sort=desc
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	var authorID *uuid.UUID
	if raw := r.URL.Query().Get("author_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
				Code:     "INVALID_REQUEST",
				Message:  "author_idの形式が正しくありません。",
				Category: "validation",
				Action:   "UUID形式のユーザーIDを指定してください。",
			})
			return
		}
		authorID = &id
	}

	posts, err := h.service.List(r.Context(), authorID, r.URL.Query().Get("sort"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, toPostResponse(post))
	}

	writeJSONResponse(w, http.StatusOK, responses)
}

// Get は投稿を1件取得する。
// GET /api/posts/{id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewPostNotFoundError(chi.URLParam(r, "id")))
		return
	}

	post, err := h.service.Get(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toPostResponse(post))
}

// Delete は投稿削除を処理する。所有者のみが削除できる。
// DELETE /api/posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewPostNotFoundError(chi.URLParam(r, "id")))
		return
	}

	if err := h.service.Delete(r.Context(), userID, postID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
