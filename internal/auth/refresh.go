package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// refreshTokenBytes はリフレッシュトークンの乱数バイト長。
// 32バイト（256ビット）あれば衝突確率は無視できるため、
// ストア側では重複チェックを行わない。
const refreshTokenBytes = 32

// MakeRefreshToken は暗号論的に安全な乱数からリフレッシュトークンを生成する。
// トークンは不透明なhex文字列で、中身に意味は持たない。
func MakeRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
