// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health はタスクAPIの死活監視用 /healthz エンドポイントを処理します。
// ロードバランサやデプロイ確認からのポーリングを想定しています。
func Health(c *gin.Context) {
	// 監視側が古い結果を見ないようキャッシュを禁止する
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
