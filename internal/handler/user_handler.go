package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/hitoshi/sasayaki/internal/middleware"
	"github.com/hitoshi/sasayaki/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// Register は新規ユーザーを登録する。
	Register(ctx context.Context, email, password string) (model.User, error)
	// UpdateCredentials はメールアドレスとパスワードを更新する。
	UpdateCredentials(ctx context.Context, userID uuid.UUID, email, password string) (model.User, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// credentialsRequest はユーザー登録・更新リクエストのボディ。
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// validate は必須フィールドの存在を検証する。
func (req *credentialsRequest) validate() *model.APIError {
	if req.Email == "" || req.Password == "" {
		return &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "メールアドレスとパスワードは必須です。",
			Category: "validation",
			Action:   "両方のフィールドを入力してください。",
		}
	}
	return nil
}

// Create はユーザー登録を処理する。
// POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestResponse(w)
		return
	}
	if apiErr := req.validate(); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toUserResponse(user))
}

// Update は認証済みユーザー自身の資格情報更新を処理する。
// PUT /api/users
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestResponse(w)
		return
	}
	if apiErr := req.validate(); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	user, err := h.service.UpdateCredentials(r.Context(), userID, req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toUserResponse(user))
}
