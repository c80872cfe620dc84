// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentModeratorService は投稿本文をサニタイズ・モデレーションし、
// XSS攻撃や禁止語の露出からユーザーを保護する。
// bluemondayライブラリのStrictPolicyでHTMLタグを全て除去した上で、
// 禁止語を伏せ字（****）に置換する。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maskedWord は禁止語の置換後の伏せ字。
const maskedWord = "****"

// ContentModeratorService は投稿本文のモデレーション機能のインターフェースを定義する。
// 投稿の保存前に使用される。
type ContentModeratorService interface {
	// Moderate は本文からHTMLタグを除去し、禁止語を伏せ字に置換して返す。
	// 禁止語の判定は大文字小文字を区別せず、空白区切りのトークン単位で行う。
	// 句読点が付いたトークン（例: "word!"）は置換対象にしない。
	// 空文字列の入力には空文字列を返す。
	// 状態を持たない純粋な変換であり、同一入力に対して常に同一出力を返す（冪等）。
	Moderate(body string) string
}

// contentModerator はContentModeratorServiceの実装。
// bluemondayのポリシーと禁止語集合を保持し、スレッドセーフに動作する。
type contentModerator struct {
	policy      *bluemonday.Policy
	bannedWords map[string]struct{}
}

// defaultBannedWords はデフォルトの禁止語リスト。
var defaultBannedWords = []string{
	"kerfuffle",
	"sharbert",
	"fornax",
}

// NewContentModerator はContentModeratorServiceの新しいインスタンスを生成する。
// wordsが空の場合はデフォルトの禁止語リストを使用する。
// HTMLの除去にはbluemondayのStrictPolicy（全タグ除去）を使用する。
func NewContentModerator(words []string) *contentModerator {
	if len(words) == 0 {
		words = defaultBannedWords
	}

	banned := make(map[string]struct{}, len(words))
	for _, w := range words {
		banned[strings.ToLower(w)] = struct{}{}
	}

	return &contentModerator{
		policy:      bluemonday.StrictPolicy(),
		bannedWords: banned,
	}
}

// Moderate は本文からHTMLタグを除去し、禁止語を伏せ字に置換して返す。
func (m *contentModerator) Moderate(body string) string {
	cleaned := m.policy.Sanitize(body)

	tokens := strings.Split(cleaned, " ")
	for i, token := range tokens {
		if _, ok := m.bannedWords[strings.ToLower(token)]; ok {
			tokens[i] = maskedWord
		}
	}

	return strings.Join(tokens, " ")
}
