// Package jwtmw provides JWT issuance, verification, and the Gin middleware
// that resolves the authenticated identity for each request.
package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserID is the Gin context key holding the authenticated user's ID.
	ContextUserID = "userID"
	// ContextIdentity is the Gin context key holding the redacted identity record.
	ContextIdentity = "identity"

	bearerPrefix = "Bearer "
)

// Identity is the redacted user record attached to authenticated requests.
// It never carries the password hash.
type Identity struct {
	ID    uint
	Name  string
	Email string
}

// IdentityLoader resolves a verified token subject to its identity record.
// Implementations return ErrUnknownSubject when the user no longer exists.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, id uint) (*Identity, error)
}

// AuthRequired returns a Gin middleware function that validates the bearer
// token and attaches the resolved identity to the request context.
// 検証はリクエストごとに毎回行われ、デコード済みIDのキャッシュは行いません。
func AuthRequired(verifier Verifier, identities IdentityLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorizationヘッダーから "Bearer <token>" を取り出す
		//    （スキームは厳密一致、他のエンコーディングは受け付けない）
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, bearerPrefix)

		// 2. 署名と有効期限を検証
		//    検証エラーの詳細はログのみに残し、呼び出し元には公開しない
		userID, err := verifier.VerifyToken(tokenStr)
		if err != nil {
			slog.Warn("token verification failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 3. subjectをユーザーとして解決する
		//    アカウント削除済みの場合はフェイルクローズ（401）にする
		identity, err := identities.LoadIdentity(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, ErrUnknownSubject) {
				slog.Warn("token subject no longer exists", "user_id", userID, "remote_addr", c.ClientIP())
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			slog.Error("identity lookup failed", "error", err, "user_id", userID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.Set(ContextUserID, identity.ID)
		c.Set(ContextIdentity, identity)
		c.Next()
	}
}
