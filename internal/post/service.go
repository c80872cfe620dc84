// Package post は投稿の作成・取得・削除のドメインロジックを提供する。
package post

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hitoshi/sasayaki/internal/model"
	"github.com/hitoshi/sasayaki/internal/repository"
)

// Moderator は投稿本文のサニタイズと禁止語マスクを行う。
type Moderator interface {
	Moderate(body string) string
}

// Service は投稿操作を担う。
type Service struct {
	postRepo  repository.PostRepository
	moderator Moderator
}

// NewService はServiceを生成する。
func NewService(postRepo repository.PostRepository, moderator Moderator) *Service {
	return &Service{postRepo: postRepo, moderator: moderator}
}

// Create は認証済みユーザーの投稿を作成する。
// 本文は前後の空白を除いた上で長さを検証し、モデレーション
// （HTML除去と禁止語マスク）を通してから保存する。
// 長さの判定はバイト数ではなく文字数（rune数）で行う。
func (s *Service) Create(ctx context.Context, userID uuid.UUID, body string) (*model.Post, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, model.NewPostEmptyError()
	}
	if utf8.RuneCountInString(body) > model.PostMaxLength {
		return nil, model.NewPostTooLongError()
	}

	now := time.Now()
	post := &model.Post{
		ID:        uuid.New(),
		UserID:    userID,
		Body:      s.moderator.Moderate(body),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// Get は指定IDの投稿を返す。見つからない場合はPOST_NOT_FOUNDを返す。
func (s *Service) Get(ctx context.Context, postID uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID.String())
	}
	return post, nil
}

// List は投稿一覧を作成日時順で返す。authorIDがnilでない場合は
// そのユーザーの投稿のみに絞り込む。orderが空の場合は昇順。
func (s *Service) List(ctx context.Context, authorID *uuid.UUID, order string) ([]*model.Post, error) {
	sortOrder := model.PostSortAsc
	switch order {
	case "", string(model.PostSortAsc):
		// デフォルトは昇順
	case string(model.PostSortDesc):
		sortOrder = model.PostSortDesc
	default:
		return nil, model.NewInvalidSortOrderError(order)
	}

	posts, err := s.postRepo.List(ctx, authorID, sortOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Delete は投稿を削除する。所有者以外による削除はFORBIDDENを返す。
// 存在確認を所有者確認より先に行うため、他人の投稿IDを指定した
// 場合は404ではなく403になる。
func (s *Service) Delete(ctx context.Context, requesterID, postID uuid.UUID) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to find post: %w", err)
	}
	if post == nil {
		return model.NewPostNotFoundError(postID.String())
	}
	if post.UserID != requesterID {
		return model.NewForbiddenError()
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}
