package auth

import (
	"net/http"
	"strings"
)

const (
	schemeBearer = "Bearer"
	schemeAPIKey = "ApiKey"
)

// GetBearerToken はAuthorizationヘッダーから "Bearer <token>" 形式の
// トークンを取り出す。ヘッダーが無い場合はErrMissingAuthHeader、
// スキーム不一致またはフィールド数が2でない場合はErrMalformedAuthHeaderを返す。
// 副作用のない純粋な解析処理。
func GetBearerToken(headers http.Header) (string, error) {
	return extractScheme(headers, schemeBearer)
}

// GetAPIKey はAuthorizationヘッダーから "ApiKey <key>" 形式のキーを取り出す。
// 構造的な契約はGetBearerTokenと同一で、スキームのリテラルのみ異なる。
func GetAPIKey(headers http.Header) (string, error) {
	return extractScheme(headers, schemeAPIKey)
}

// extractScheme はAuthorizationヘッダーを空白区切りで分解し、
// 厳密に2フィールドかつ先頭がschemeに一致する場合のみ2番目を返す。
func extractScheme(headers http.Header, scheme string) (string, error) {
	value := headers.Get("Authorization")
	if value == "" {
		return "", ErrMissingAuthHeader
	}

	fields := strings.Fields(value)
	if len(fields) != 2 || fields[0] != scheme {
		return "", ErrMalformedAuthHeader
	}

	return fields[1], nil
}
