package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword_Format(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "normal", password: "secret123"},
		{name: "empty", password: ""},
		{name: "long", password: strings.Repeat("a", 128)},
		{name: "unicode", password: "パスワード🔐"},
		{name: "special chars", password: "p@ssw0rd!#$%"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			hash, err := HashPassword(test.password)
			if err != nil {
				t.Fatalf("HashPassword() error = %v", err)
			}
			if !strings.HasPrefix(hash, "$argon2id$") {
				t.Errorf("hash should start with $argon2id$: %q", hash)
			}
			if len(strings.Split(hash, "$")) != 6 {
				t.Errorf("hash should have 6 $-separated parts: %q", hash)
			}
		})
	}
}

// TestHashPassword_Salted は同一パスワードでもソルトにより出力が毎回異なることを検証する。
func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	h2, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestVerifyPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	ok, err := VerifyPassword("secret123", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if !ok {
		t.Error("correct password should verify")
	}

	ok, err = VerifyPassword("wrong", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if ok {
		t.Error("wrong password should not verify")
	}
}

// TestVerifyPassword_MalformedHash は構造不正なハッシュが
// 不一致(false, nil)ではなくErrMalformedHashになることを検証する。
func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "not phc", hash: "plainhash"},
		{name: "wrong algorithm", hash: "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{name: "missing parts", hash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA"},
		{name: "bad salt encoding", hash: "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
		{name: "bad params", hash: "$argon2id$v=19$m=abc,t=3,p=2$c2FsdA$aGFzaA"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := VerifyPassword("secret123", test.hash)
			if !errors.Is(err, ErrMalformedHash) {
				t.Errorf("error = %v, want ErrMalformedHash", err)
			}
		})
	}
}
