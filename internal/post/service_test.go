package post

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hitoshi/sasayaki/internal/model"
	"github.com/hitoshi/sasayaki/internal/security"
)

// --- モック ---

type mockPostRepo struct {
	createFn   func(ctx context.Context, post *model.Post) error
	findByIDFn func(ctx context.Context, id uuid.UUID) (*model.Post, error)
	listFn     func(ctx context.Context, authorID *uuid.UUID, order model.PostSortOrder) ([]*model.Post, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPostRepo) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}
func (m *mockPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockPostRepo) List(ctx context.Context, authorID *uuid.UUID, order model.PostSortOrder) ([]*model.Post, error) {
	if m.listFn != nil {
		return m.listFn(ctx, authorID, order)
	}
	return nil, nil
}
func (m *mockPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func newTestService(repo *mockPostRepo) *Service {
	return NewService(repo, security.NewContentModerator(nil))
}

func wantErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *model.APIError", err)
	}
	if apiErr.Code != code {
		t.Errorf("code = %q, want %q", apiErr.Code, code)
	}
}

// --- テスト ---

func TestCreate(t *testing.T) {
	userID := uuid.New()
	var persisted *model.Post

	svc := newTestService(&mockPostRepo{
		createFn: func(ctx context.Context, post *model.Post) error {
			persisted = post
			return nil
		},
	})

	got, err := svc.Create(context.Background(), userID, "I hear Mastodon is better than Sasayaki. sharbert I need to migrate")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	want := "I hear Mastodon is better than Sasayaki. **** I need to migrate"
	if got.Body != want {
		t.Errorf("body = %q, want %q", got.Body, want)
	}
	if got.UserID != userID {
		t.Errorf("user ID = %v, want %v", got.UserID, userID)
	}
	if persisted == nil || persisted.Body != want {
		t.Error("moderated body should be persisted")
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "empty body", body: "", wantCode: model.ErrCodePostEmpty},
		{name: "whitespace only", body: "   \n\t ", wantCode: model.ErrCodePostEmpty},
		{name: "too long", body: strings.Repeat("a", model.PostMaxLength+1), wantCode: model.ErrCodePostTooLong},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc := newTestService(&mockPostRepo{})
			_, err := svc.Create(context.Background(), uuid.New(), test.body)
			wantErrorCode(t, err, test.wantCode)
		})
	}
}

// TestCreate_LengthIsRuneCount は長さ判定がバイト数ではなく
// 文字数で行われることを検証する。
func TestCreate_LengthIsRuneCount(t *testing.T) {
	svc := newTestService(&mockPostRepo{})

	// 140文字のマルチバイト文字列（UTF-8では420バイト）
	body := strings.Repeat("あ", model.PostMaxLength)
	if _, err := svc.Create(context.Background(), uuid.New(), body); err != nil {
		t.Errorf("Create(140 runes) error = %v, want nil", err)
	}

	if _, err := svc.Create(context.Background(), uuid.New(), body+"あ"); err == nil {
		t.Error("Create(141 runes) should fail")
	}
}

func TestGet(t *testing.T) {
	postID := uuid.New()
	svc := newTestService(&mockPostRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Post, error) {
			if id == postID {
				return &model.Post{ID: postID, Body: "hello"}, nil
			}
			return nil, nil
		},
	})

	got, err := svc.Get(context.Background(), postID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Body != "hello" {
		t.Errorf("body = %q, want %q", got.Body, "hello")
	}

	_, err = svc.Get(context.Background(), uuid.New())
	wantErrorCode(t, err, model.ErrCodePostNotFound)
}

func TestList(t *testing.T) {
	var gotAuthor *uuid.UUID
	var gotOrder model.PostSortOrder

	svc := newTestService(&mockPostRepo{
		listFn: func(ctx context.Context, authorID *uuid.UUID, order model.PostSortOrder) ([]*model.Post, error) {
			gotAuthor = authorID
			gotOrder = order
			return []*model.Post{}, nil
		},
	})

	// デフォルトは昇順・絞り込みなし
	if _, err := svc.List(context.Background(), nil, ""); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotAuthor != nil {
		t.Error("author filter should be nil when not specified")
	}
	if gotOrder != model.PostSortAsc {
		t.Errorf("order = %q, want %q", gotOrder, model.PostSortAsc)
	}

	// 作者絞り込みと降順指定
	author := uuid.New()
	if _, err := svc.List(context.Background(), &author, "desc"); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotAuthor == nil || *gotAuthor != author {
		t.Error("author filter should be forwarded")
	}
	if gotOrder != model.PostSortDesc {
		t.Errorf("order = %q, want %q", gotOrder, model.PostSortDesc)
	}
}

func TestList_InvalidSortOrder(t *testing.T) {
	svc := newTestService(&mockPostRepo{})
	_, err := svc.List(context.Background(), nil, "sideways")
	wantErrorCode(t, err, model.ErrCodeInvalidSortOrder)
}

func TestDelete(t *testing.T) {
	owner := uuid.New()
	postID := uuid.New()

	newRepo := func(deleted *bool) *mockPostRepo {
		return &mockPostRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Post, error) {
				if id == postID {
					return &model.Post{ID: postID, UserID: owner}, nil
				}
				return nil, nil
			},
			deleteFn: func(ctx context.Context, id uuid.UUID) error {
				if deleted != nil {
					*deleted = true
				}
				return nil
			},
		}
	}

	t.Run("owner can delete", func(t *testing.T) {
		deleted := false
		svc := newTestService(newRepo(&deleted))
		if err := svc.Delete(context.Background(), owner, postID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if !deleted {
			t.Error("post should be deleted")
		}
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		deleted := false
		svc := newTestService(newRepo(&deleted))
		err := svc.Delete(context.Background(), uuid.New(), postID)
		wantErrorCode(t, err, model.ErrCodeForbidden)
		if deleted {
			t.Error("post should not be deleted")
		}
	})

	t.Run("unknown post", func(t *testing.T) {
		svc := newTestService(newRepo(nil))
		err := svc.Delete(context.Background(), owner, uuid.New())
		wantErrorCode(t, err, model.ErrCodePostNotFound)
	})
}
