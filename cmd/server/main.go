package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"account_backend/internal/app/config"
	"account_backend/internal/app/di"
	"account_backend/internal/app/router"
	accounthandler "account_backend/internal/feature/accounts/transport/handler"
	accountusecase "account_backend/internal/feature/accounts/usecase"
	"account_backend/internal/platform/db"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/platform/mail/brevo"
	infraredis "account_backend/internal/platform/redis"
	"account_backend/internal/platform/token"

	platformhttp "account_backend/internal/platform/http"
)

func main() {
	cfg := config.Load()

	// シークレット未設定チェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	if cfg.VerificationSecret == "" {
		log.Println("[WARN] VERIFICATION_SECRET is not set. Set a strong secret in production.")
	}

	// db
	gdb := db.OpenDB(cfg)

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to DB-backed sessions.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	accountRepo := di.NewAccountRepository(rdb, gdb, 0)
	sessionRepo := di.NewSessionRepository(rdb, gdb)

	// Platform
	codec := token.NewCodec(cfg.VerificationSecret, cfg.VerificationMaxAge)
	jwtGen := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration)
	notifier := brevo.NewNotifier(brevo.Config{
		APIKey:      cfg.BrevoAPIKey,
		BaseURL:     cfg.BrevoURL,
		SenderName:  cfg.SenderName,
		SenderEmail: cfg.SenderEmail,
		AppURL:      cfg.AppURL,
		Timeout:     cfg.MailTimeout,
	}, platformhttp.NewHTTPClient(cfg.MailTimeout))

	// Usecase
	accountUC := accountusecase.NewAccountUsecase(accountRepo, sessionRepo, codec, notifier, jwtGen, cfg.JWTExpiration)

	// Handler
	accountH := accounthandler.NewAccountHandler(accountUC)

	// Middleware
	authRequired := jwtmw.AuthRequired(cfg.JWTSecret, sessionRepo)
	requireVerified := jwtmw.RequireVerified(accountRepo)

	// ルータ生成
	r := router.NewRouter(accountH, authRequired, requireVerified)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
