// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, post, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodePostNotFound       = "POST_NOT_FOUND"
	ErrCodePostTooLong        = "POST_TOO_LONG"
	ErrCodePostEmpty          = "POST_EMPTY"
	ErrCodeInvalidSortOrder   = "INVALID_SORT_ORDER"
)

// NewInvalidCredentialsError はログイン失敗エラーを生成する。
// メールアドレス不明とパスワード不一致を区別しない単一のエラーであり、
// アカウントの存在を漏らさないための意図的な設計。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewUnauthorizedError は認証エラーを生成する。
// トークンの失効・署名不正・ヘッダー欠落などの内部的な区別は
// レスポンスに含めず、ログにのみ記録する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewForbiddenError は認可エラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "この操作を行う権限がありません。",
		Category: "auth",
		Action:   "自分のリソースに対してのみ操作できます。",
	}
}

// NewEmailTakenError はメールアドレス重複エラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "validation",
		Action:   "別のメールアドレスを使用するか、ログインしてください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ユーザーIDを確認してください。",
	}
}

// NewPostNotFoundError は投稿未検出エラーを生成する。
func NewPostNotFoundError(postID string) *APIError {
	return &APIError{
		Code:     ErrCodePostNotFound,
		Message:  fmt.Sprintf("指定された投稿が見つかりません: %s", postID),
		Category: "post",
		Action:   "投稿IDを確認してください。",
	}
}

// NewPostTooLongError は本文長超過エラーを生成する。
func NewPostTooLongError() *APIError {
	return &APIError{
		Code:     ErrCodePostTooLong,
		Message:  fmt.Sprintf("投稿は%d文字以内で入力してください。", PostMaxLength),
		Category: "validation",
		Action:   "本文を短くして再度投稿してください。",
	}
}

// NewPostEmptyError は本文が空の場合のエラーを生成する。
func NewPostEmptyError() *APIError {
	return &APIError{
		Code:     ErrCodePostEmpty,
		Message:  "投稿本文が空です。",
		Category: "validation",
		Action:   "本文を入力してください。",
	}
}

// NewInvalidSortOrderError は無効な並び順エラーを生成する。
func NewInvalidSortOrderError(sort string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidSortOrder,
		Message:  fmt.Sprintf("無効な並び順です: %s", sort),
		Category: "validation",
		Action:   "並び順には asc または desc を指定してください。",
	}
}
