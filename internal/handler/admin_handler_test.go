package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// --- モック定義 ---

// mockResetter はResetterのモック実装。
type mockResetter struct {
	resetFn func(ctx context.Context) error
}

func (m *mockResetter) Reset(ctx context.Context) error {
	if m.resetFn != nil {
		return m.resetFn(ctx)
	}
	return nil
}

// --- POST /admin/reset テスト ---

func TestAdminHandler_Reset_AllowedOnDevPlatform(t *testing.T) {
	resetCalled := false
	resetter := &mockResetter{
		resetFn: func(ctx context.Context) error {
			resetCalled = true
			return nil
		},
	}

	h := NewAdminHandler(resetter, newTestGuard("dev"), nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/reset", nil)
	w := httptest.NewRecorder()

	h.Reset(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if !resetCalled {
		t.Error("expected Reset to be called")
	}
}

// TestAdminHandler_Reset_ForbiddenOnProd は開発プラットフォーム以外で
// リセットが拒否されることを検証する。
func TestAdminHandler_Reset_ForbiddenOnProd(t *testing.T) {
	resetter := &mockResetter{
		resetFn: func(ctx context.Context) error {
			t.Error("reset should not be called on the prod platform")
			return nil
		},
	}

	h := NewAdminHandler(resetter, newTestGuard("prod"), nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/reset", nil)
	w := httptest.NewRecorder()

	h.Reset(w, req)

	if w.Result().StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusForbidden)
	}
}

func TestAdminHandler_Reset_InternalError(t *testing.T) {
	resetter := &mockResetter{
		resetFn: func(ctx context.Context) error {
			return errors.New("db down")
		},
	}

	h := NewAdminHandler(resetter, newTestGuard("dev"), nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/reset", nil)
	w := httptest.NewRecorder()

	h.Reset(w, req)

	if w.Result().StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusInternalServerError)
	}
}

// --- GET /health テスト ---

// mockPinger はPingerのモック実装。
type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func TestAdminHandler_Health(t *testing.T) {
	h := NewAdminHandler(&mockResetter{}, newTestGuard("prod"), &mockPinger{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.Health(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if got := w.Body.String(); got != "OK" {
		t.Errorf("body = %q, want %q", got, "OK")
	}
}

// TestAdminHandler_Health_DBDown はDB疎通が取れない場合に503を返すことを検証する。
func TestAdminHandler_Health_DBDown(t *testing.T) {
	pinger := &mockPinger{
		pingFn: func(ctx context.Context) error {
			return errors.New("connection refused")
		},
	}
	h := NewAdminHandler(&mockResetter{}, newTestGuard("prod"), pinger)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.Health(w, req)

	if w.Result().StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusServiceUnavailable)
	}
}
