package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer はアクセストークンのiss（発行者）クレームに設定する値。
const TokenIssuer = "sasayaki"

// MakeJWT はuserIDを主体とするHS256署名付きアクセストークンを発行する。
// クレームは {iss, sub, iat, exp} のみで、署名は全クレームを対象とする。
// expiresInに負値を渡すと発行時点で期限切れのトークンになる
// （期限切れ経路のテスト用であり、検証は必ず失敗する）。
func MakeJWT(userID uuid.UUID, secret string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
	})

	return token.SignedString([]byte(secret))
}

// ValidateJWT はトークンの署名と有効期限を検証し、主体のユーザーIDを返す。
// 失敗は種別ごとに型付きエラーで返す:
//   - 期限切れ → ErrTokenExpired
//   - 署名不一致 → ErrInvalidSignature
//   - 構造不正・クレーム欠落・発行者不一致 → ErrMalformedToken
//
// ストレージにアクセスしない純粋なメモリ内計算であり、ブロックしない。
func ValidateJWT(tokenString, secret string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			// HS256以外の署名方式は受け付けない（alg none攻撃の防止）
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidSignature
			}
			return []byte(secret), nil
		},
		jwt.WithIssuer(TokenIssuer),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return uuid.Nil, ErrInvalidSignature
		default:
			return uuid.Nil, ErrMalformedToken
		}
	}
	if !token.Valid {
		return uuid.Nil, ErrMalformedToken
	}

	if claims.Subject == "" {
		return uuid.Nil, ErrMalformedToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrMalformedToken
	}

	return userID, nil
}
