// Package model はドメインモデルを定義する。
package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken は永続化されるリフレッシュトークンを表す。
// Tokenは推測不能なランダム文字列で、主キーとして扱う。
// 失効時はRevokedAtを設定するのみで、レコードは監査記録として残す。
type RefreshToken struct {
	Token     string
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Usable はトークンが現在有効かどうかを返す。
// 失効済みでなく、かつ有効期限内の場合のみtrue。
func (t *RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && !now.After(t.ExpiresAt)
}
