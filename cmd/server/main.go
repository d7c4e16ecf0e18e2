package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"tasktracker/internal/app/router"
	authadapters "tasktracker/internal/feature/auth/adapters"
	authhandler "tasktracker/internal/feature/auth/transport/handler"
	authusecase "tasktracker/internal/feature/auth/usecase"
	taskadapters "tasktracker/internal/feature/tasks/adapters"
	taskhandler "tasktracker/internal/feature/tasks/transport/handler"
	taskusecase "tasktracker/internal/feature/tasks/usecase"
	"tasktracker/internal/platform/cache"
	"tasktracker/internal/platform/config"
	infradb "tasktracker/internal/platform/db"
	infraredis "tasktracker/internal/platform/redis"
	jwtmw "tasktracker/internal/platform/jwt"
)

func main() {
	cfg := config.Load()

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db := infradb.OpenDB(cfg)

	// Redis（無くてもキャッシュ無しで動作する）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Token codec
	codec := jwtmw.NewCodec(cfg.JWTSecret, cfg.JWTExpiration)

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	taskRepo := taskadapters.NewTaskPostgres(db)

	// Redisキャッシュでラップ
	cachedTaskRepo := cache.NewCachingTaskRepository(rdb, cfg.CacheTTL, taskRepo, "tasks")

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, codec)
	taskUC := taskusecase.NewTaskUsecase(cachedTaskRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	taskH := taskhandler.NewTaskHandler(taskUC)

	// ルータ生成
	r := router.NewRouter(authH, taskH, codec, authUC)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
