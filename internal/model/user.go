// Package model はドメインモデルを定義する。
package model

import (
	"time"

	"github.com/google/uuid"
)

// User はサービス利用ユーザーを表す。
// HashedPasswordは永続化専用であり、APIレスポンスには決して含めない。
type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	IsPremium      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicProfile はHashedPasswordを除いたUserのコピーを返す。
// ログイン応答などクライアントへ返却する場面で使用する。
func (u *User) PublicProfile() User {
	profile := *u
	profile.HashedPassword = ""
	return profile
}
