// Package model はドメインモデルを定義する。
package model

import (
	"time"

	"github.com/google/uuid"
)

// PostMaxLength は投稿本文の最大文字数（rune数）。
const PostMaxLength = 140

// Post はユーザーの投稿を表す。
// Bodyは保存前にモデレーション（HTML除去と禁止語のマスク）を通過している。
type Post struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostSortOrder は投稿一覧の並び順を表す。
type PostSortOrder string

const (
	// PostSortAsc は作成日時の昇順。
	PostSortAsc PostSortOrder = "asc"
	// PostSortDesc は作成日時の降順。
	PostSortDesc PostSortOrder = "desc"
)
