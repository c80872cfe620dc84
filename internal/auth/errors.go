// Package auth はパスワードハッシュ、アクセストークンの発行・検証、
// Authorizationヘッダーの解析といった認証の基礎部品を提供する。
// 失敗はすべて型付きのセンチネルエラーで返し、呼び出し側が
// errors.Isで種別ごとに分岐できるようにする。文字列照合には依存しない。
package auth

import "errors"

var (
	// ErrMalformedHash は保存されたパスワードハッシュが構造的に不正な場合のエラー。
	// 単なるパスワード不一致とは区別し、データ破損として扱えるようにする。
	ErrMalformedHash = errors.New("malformed password hash")

	// ErrTokenExpired はアクセストークンの有効期限切れを示す。
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidSignature はアクセストークンの署名検証失敗を示す。
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrMalformedToken はアクセストークンの構造不正（必須クレーム欠落等）を示す。
	ErrMalformedToken = errors.New("malformed token")

	// ErrMissingAuthHeader はAuthorizationヘッダーが存在しない場合のエラー。
	ErrMissingAuthHeader = errors.New("missing authorization header")

	// ErrMalformedAuthHeader はAuthorizationヘッダーの形式不正を示す。
	// スキーム不一致、またはフィールド数が2でない場合に返す。
	ErrMalformedAuthHeader = errors.New("malformed authorization header")
)
