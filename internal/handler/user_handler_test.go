package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hitoshi/sasayaki/internal/model"
)

// --- モック定義 ---

// mockUserService はUserServiceInterfaceのモック実装。
type mockUserService struct {
	registerFn          func(ctx context.Context, email, password string) (model.User, error)
	updateCredentialsFn func(ctx context.Context, userID uuid.UUID, email, password string) (model.User, error)
}

func (m *mockUserService) Register(ctx context.Context, email, password string) (model.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, email, password)
	}
	return model.User{}, nil
}

func (m *mockUserService) UpdateCredentials(ctx context.Context, userID uuid.UUID, email, password string) (model.User, error) {
	if m.updateCredentialsFn != nil {
		return m.updateCredentialsFn(ctx, userID, email, password)
	}
	return model.User{}, nil
}

// --- POST /api/users テスト ---

func TestUserHandler_Create_Success(t *testing.T) {
	userID := uuid.New()
	svc := &mockUserService{
		registerFn: func(ctx context.Context, email, password string) (model.User, error) {
			return model.User{ID: userID, Email: email}, nil
		},
	}

	h := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/users",
		strings.NewReader(`{"email":"a@b.com","password":"secret123"}`))
	w := httptest.NewRecorder()

	h.Create(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.ID != userID {
		t.Errorf("id = %v, want %v", body.ID, userID)
	}
	if body.Email != "a@b.com" {
		t.Errorf("email = %q, want %q", body.Email, "a@b.com")
	}
}

// TestUserHandler_Create_ResponseOmitsHash はレスポンスJSONに
// パスワード関連フィールドが含まれないことを検証する。
func TestUserHandler_Create_ResponseOmitsHash(t *testing.T) {
	svc := &mockUserService{
		registerFn: func(ctx context.Context, email, password string) (model.User, error) {
			return model.User{ID: uuid.New(), Email: email}, nil
		},
	}

	h := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/users",
		strings.NewReader(`{"email":"a@b.com","password":"secret123"}`))
	w := httptest.NewRecorder()

	h.Create(w, req)

	body := w.Body.String()
	if strings.Contains(body, "password") || strings.Contains(body, "hash") {
		t.Errorf("response should not mention passwords: %s", body)
	}
}

func TestUserHandler_Create_EmailTaken(t *testing.T) {
	svc := &mockUserService{
		registerFn: func(ctx context.Context, email, password string) (model.User, error) {
			return model.User{}, model.NewEmailTakenError()
		},
	}

	h := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/users",
		strings.NewReader(`{"email":"a@b.com","password":"secret123"}`))
	w := httptest.NewRecorder()

	h.Create(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	var body apiErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Code != model.ErrCodeEmailTaken {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodeEmailTaken)
	}
}

func TestUserHandler_Create_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"password":"secret123"}`},
		{name: "missing password", body: `{"email":"a@b.com"}`},
		{name: "empty body", body: `{}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h := NewUserHandler(&mockUserService{})

			req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(test.body))
			w := httptest.NewRecorder()

			h.Create(w, req)

			if w.Result().StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
			}
		})
	}
}

// --- PUT /api/users テスト ---

func TestUserHandler_Update_Success(t *testing.T) {
	userID := uuid.New()
	svc := &mockUserService{
		updateCredentialsFn: func(ctx context.Context, id uuid.UUID, email, password string) (model.User, error) {
			if id != userID {
				t.Errorf("userID = %v, want %v", id, userID)
			}
			return model.User{ID: id, Email: email}, nil
		},
	}

	h := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/users",
		strings.NewReader(`{"email":"new@b.com","password":"newpass456"}`))
	req = withUserID(req, userID)
	w := httptest.NewRecorder()

	h.Update(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Email != "new@b.com" {
		t.Errorf("email = %q, want %q", body.Email, "new@b.com")
	}
}

func TestUserHandler_Update_NoUserID_ReturnsUnauthorized(t *testing.T) {
	h := NewUserHandler(&mockUserService{})

	req := httptest.NewRequest(http.MethodPut, "/api/users",
		strings.NewReader(`{"email":"new@b.com","password":"newpass456"}`))
	// ユーザーIDを注入しない
	w := httptest.NewRecorder()

	h.Update(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestUserHandler_Update_UserNotFound(t *testing.T) {
	svc := &mockUserService{
		updateCredentialsFn: func(ctx context.Context, id uuid.UUID, email, password string) (model.User, error) {
			return model.User{}, model.NewUserNotFoundError()
		},
	}

	h := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/users",
		strings.NewReader(`{"email":"new@b.com","password":"newpass456"}`))
	req = withUserID(req, uuid.New())
	w := httptest.NewRecorder()

	h.Update(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}
