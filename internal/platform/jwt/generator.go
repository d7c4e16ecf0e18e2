package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiration is the token lifetime used when no explicit duration is
// configured. Tokens are not refreshable; an expired token forces a new login.
const DefaultExpiration = time.Hour

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(userID uint) (string, error)
}

// Verifier defines the interface for JWT token verification.
type Verifier interface {
	// VerifyToken validates a signed token and returns its subject user ID.
	VerifyToken(tokenStr string) (uint, error)
}

// codec implements both Generator and Verifier with a shared secret.
type codec struct {
	secret     []byte
	expiration time.Duration
}

var (
	_ Generator = (*codec)(nil)
	_ Verifier  = (*codec)(nil)
)

// NewCodec creates a JWT codec with the provided secret and expiration duration.
// The secret is loaded once at startup and is immutable afterwards; rotating it
// invalidates all outstanding tokens.
func NewCodec(secret string, expiration time.Duration) *codec {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &codec{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed JWT token with standard claims.
func (c *codec) GenerateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(c.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken はトークンの署名と有効期限を検証し、subjectのユーザーIDを返します。
// 失敗理由はErrTokenExpired / ErrTokenInvalidとして区別されます（外部的にはどちらも401）。
func (c *codec) VerifyToken(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// 署名アルゴリズムをチェック（HMACのみ許可）
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return 0, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenInvalid
	}
	sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok {
		return 0, ErrTokenInvalid
	}

	return uint(sub), nil
}
