// Package user はユーザー登録・資格情報更新・プレミアム昇格の
// ドメインロジックを提供する。
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/sasayaki/internal/auth"
	"github.com/hitoshi/sasayaki/internal/model"
	"github.com/hitoshi/sasayaki/internal/repository"
)

// Service はユーザーのライフサイクル操作を担う。
type Service struct {
	userRepo repository.UserRepository
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// Register は新規ユーザーを登録する。パスワードは保存前に
// ハッシュ化され、平文が永続化層へ渡ることはない。
// メールアドレスが登録済みの場合はEMAIL_TAKENを返す。
func (s *Service) Register(ctx context.Context, email, password string) (model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hash,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.User{}, model.NewEmailTakenError()
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user.PublicProfile(), nil
}

// UpdateCredentials は認証済みユーザー自身のメールアドレスと
// パスワードを更新する。
func (s *Service) UpdateCredentials(ctx context.Context, userID uuid.UUID, email, password string) (model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	updated, err := s.userRepo.UpdateCredentials(ctx, userID, email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.User{}, model.NewEmailTakenError()
		}
		return model.User{}, fmt.Errorf("failed to update credentials: %w", err)
	}
	if updated == nil {
		return model.User{}, model.NewUserNotFoundError()
	}

	return updated.PublicProfile(), nil
}

// UpgradeToPremium は決済プロバイダからの通知を受けてユーザーを
// プレミアム会員に昇格させる。対象が存在しない場合はUSER_NOT_FOUNDを返す。
func (s *Service) UpgradeToPremium(ctx context.Context, userID uuid.UUID) error {
	upgraded, err := s.userRepo.UpgradeToPremium(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to upgrade user: %w", err)
	}
	if !upgraded {
		return model.NewUserNotFoundError()
	}
	return nil
}

// Reset は全ユーザーとそれに紐づくデータを削除する。
// 開発プラットフォーム限定の管理操作から呼ばれる。
func (s *Service) Reset(ctx context.Context) error {
	if err := s.userRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to reset users: %w", err)
	}
	return nil
}
