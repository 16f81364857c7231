package router

import (
	"github.com/gin-gonic/gin"

	accounthandler "account_backend/internal/feature/accounts/transport/handler"
	"account_backend/internal/platform/http/handler"
)

// NewRouter assembles the gin engine. The auth and verified middlewares are
// injected so the router stays free of their dependencies.
func NewRouter(accounts *accounthandler.AccountHandler, authRequired, requireVerified gin.HandlerFunc) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規アカウント登録
	r.POST("/signup", accounts.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", accounts.Login)
	// メール検証リンク（トークンはメール内URLのパスで渡される）
	r.GET("/verify/:token", accounts.Verify)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(authRequired)
	{
		auth.POST("/logout", accounts.Logout)
		auth.POST("/resend-verification", accounts.ResendVerification)

		// 認証に加えてメール検証も必須のルート
		verified := auth.Group("/")
		verified.Use(requireVerified)
		{
			verified.GET("/dashboard", accounts.Dashboard)
		}
	}

	return r
}
