package router

import (
	"github.com/gin-gonic/gin"

	authhandler "tasktracker/internal/feature/auth/transport/handler"
	taskhandler "tasktracker/internal/feature/tasks/transport/handler"
	"tasktracker/internal/platform/http/handler"
	jwtmw "tasktracker/internal/platform/jwt"
)

// NewRouter はすべてのエンドポイントを組み立てたGinエンジンを返します。
func NewRouter(auth *authhandler.AuthHandler, tasks *taskhandler.TaskHandler,
	verifier jwtmw.Verifier, identities jwtmw.IdentityLoader) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録（JWT 発行）
	r.POST("/register", auth.Register)
	// ログイン（JWT 発行）
	r.POST("/login", auth.Login)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	protected := r.Group("/tasks")
	protected.Use(jwtmw.AuthRequired(verifier, identities))
	{
		protected.POST("", tasks.Create)
		protected.GET("", tasks.List)
		protected.GET("/:id", tasks.Get)
		protected.PUT("/:id", tasks.Update)
		protected.DELETE("/:id", tasks.Delete)
	}

	return r
}
