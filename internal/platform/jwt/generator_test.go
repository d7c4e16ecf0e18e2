package jwtmw

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestCodec_RoundTrip は発行したトークンが直後に同じユーザーIDへ検証されることを確認します。
func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID uint
	}{
		{"user id 1", 1},
		{"user id 42", 42},
		{"user id 999", 999},
	}

	c := NewCodec("test-secret", time.Hour)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := c.GenerateToken(tt.userID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := c.VerifyToken(token)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.userID {
				t.Errorf("expected userID %d, got %d", tt.userID, got)
			}
		})
	}
}

// TestCodec_ExpiredToken は有効期限切れトークンがErrTokenExpiredで拒否されることを確認します。
func TestCodec_ExpiredToken(t *testing.T) {
	t.Parallel()

	// 過去に期限が切れるようマイナスのexpirationで発行する
	expired := NewCodec("test-secret", time.Hour)
	token := createTokenWithSecret("test-secret", 1, -time.Hour)

	_, err := expired.VerifyToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

// TestCodec_InvalidToken は改ざん・不正形式のトークンがErrTokenInvalidで拒否されることを確認します。
func TestCodec_InvalidToken(t *testing.T) {
	t.Parallel()

	c := NewCodec("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"malformed token", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"empty string", ""},
		{"wrong secret", createTokenWithSecret("wrong-secret", 1, time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.VerifyToken(tt.token)
			if !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("expected ErrTokenInvalid, got %v", err)
			}
		})
	}
}

// TestCodec_NoneAlgorithmRejected はnoneアルゴリズム（未署名）のトークンが拒否されることを確認します。
func TestCodec_NoneAlgorithmRejected(t *testing.T) {
	t.Parallel()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": float64(1),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenStr, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)

	c := NewCodec("test-secret", time.Hour)
	_, err := c.VerifyToken(tokenStr)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

// TestNewCodec_DefaultExpiration はexpirationが未指定（0以下）の場合に1時間が使われることを確認します。
func TestNewCodec_DefaultExpiration(t *testing.T) {
	t.Parallel()

	c := NewCodec("test-secret", 0)
	if c.expiration != DefaultExpiration {
		t.Errorf("expected expiration %v, got %v", DefaultExpiration, c.expiration)
	}
}

// createTokenWithSecret はテスト用に指定されたシークレットとユーザーIDで署名済みJWTトークンを生成します。
func createTokenWithSecret(secret string, userID uint, expiration time.Duration) string {
	claims := jwt.MapClaims{
		"sub": float64(userID),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(expiration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(secret))
	return signed
}
