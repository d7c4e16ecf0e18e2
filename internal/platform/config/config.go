// Package config は環境変数からプロセス全体の設定を読み込みます。
// 設定は起動時に一度だけ読み込まれ、以降は不変として各コンストラクタへ渡されます。
package config

import (
	"os"
	"strconv"
	"time"

	jwtmw "tasktracker/internal/platform/jwt"
)

// Config はサーバープロセスの設定を保持します。
type Config struct {
	Port string // HTTPリッスンポート（例: "8080"）

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	// RunMigrations が true の場合、起動時にAutoMigrateを実行します。
	RunMigrations bool

	// JWTSecret はトークン署名鍵です。ローテーションすると既存トークンはすべて無効になります。
	JWTSecret     string
	JWTExpiration time.Duration

	RedisHost     string
	RedisPort     string
	RedisPassword string
	// CacheTTL はタスク一覧キャッシュの有効期限です。
	CacheTTL time.Duration
}

// Load は環境変数から設定を読み込みます。
func Load() Config {
	return Config{
		Port: getenv("PORT", "8080"),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiration: durationHours("JWT_EXPIRATION_HOURS", jwtmw.DefaultExpiration),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getenv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      5 * time.Minute,
	}
}

// getenv は環境変数を読み、未設定の場合はフォールバック値を返します。
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// durationHours は時間数の環境変数をtime.Durationへ変換します。
func durationHours(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	hours, err := strconv.Atoi(v)
	if err != nil || hours <= 0 {
		return fallback
	}
	return time.Duration(hours) * time.Hour
}
