// Package handler はaccountsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/accounts/domain/entity"
	"account_backend/internal/feature/accounts/transport/http/dto"
	"account_backend/internal/feature/accounts/usecase"
	jwtmw "account_backend/internal/platform/jwt"
)

// AccountUsecase はアカウント操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AccountUsecase interface {
	// Signup は新規アカウントを登録し、検証メールの送信可否を返します。
	Signup(ctx context.Context, email, password, passwordConfirm string) (*entity.Account, bool, error)
	// Login はアカウントを認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, email, password, userAgent, ipAddress string) (string, error)
	// Logout は指定されたセッションを失効させます。
	Logout(ctx context.Context, sessionID string) error
	// Confirm は検証トークンでアカウントを検証済みに遷移させます。
	Confirm(ctx context.Context, token string) (*entity.Account, bool, error)
	// ResendVerification は検証メールを再送します。
	ResendVerification(ctx context.Context, accountID uint) (bool, error)
	// GetAccount はIDでアカウントを取得します。
	GetAccount(ctx context.Context, id uint) (*entity.Account, error)
}

// AccountHandler はアカウント操作のHTTPリクエストを処理します。
// AccountUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AccountHandler struct {
	accounts AccountUsecase
}

// NewAccountHandler はAccountHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAccountUsecaseを注入します。
func NewAccountHandler(accounts AccountUsecase) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Signup はアカウント登録APIエンドポイントを処理します。
// - リクエストJSONをSignupReqにバインド
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時は201を返却（検証メールの送信可否はemail_sentで報告）
func (h *AccountHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	account, emailSent, err := h.accounts.Signup(c.Request.Context(), req.Email, req.Password, req.PasswordConfirm)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "an account with this email already exists"})
		case errors.Is(err, usecase.ErrInvalidEmail),
			errors.Is(err, usecase.ErrPasswordTooShort),
			errors.Is(err, usecase.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("signup failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "signup failed"})
		}
		return
	}

	message := "account created, please check your email to verify your account"
	if !emailSent {
		// メール配信失敗はアカウント作成を失敗させない（ソフト警告）
		message = "account created, but the verification email could not be sent"
	}

	slog.Info("account signup successful", "account_id", account.ID, "email_sent", emailSent, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.SignupResponse{
		Message:   message,
		Account:   dto.NewAccountResponse(account),
		EmailSent: emailSent,
	})
}

// Login はログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（メール未登録とパスワード不一致を区別しない）
// - 認証成功時はJWTトークン付きで200を返却
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	token, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid email or password"})
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "login failed"})
		return
	}

	slog.Info("account login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Logout はログアウトAPIエンドポイントを処理します。
// AuthRequiredミドルウェアが設定したセッションIDを失効させます。
func (h *AccountHandler) Logout(c *gin.Context) {
	sessionID, ok := jwtmw.SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "login required"})
		return
	}

	if err := h.accounts.Logout(c.Request.Context(), sessionID); err != nil {
		slog.Error("logout failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "logout failed"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "you have been logged out"})
}

// Verify はメール検証APIエンドポイントを処理します。
// - トークン不正とアカウント不存在は外部には同一の400として返す（列挙攻撃対策）
// - 既に検証済みの場合は200（冪等成功、状態変更なし）
// - 検証成功時は200を返却
func (h *AccountHandler) Verify(c *gin.Context) {
	token := c.Param("token")

	account, alreadyVerified, err := h.accounts.Confirm(c.Request.Context(), token)
	if err != nil {
		// どちらの失敗かはログにのみ残し、レスポンスでは区別しない
		slog.Warn("email verification failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "the verification link is invalid or has expired"})
		return
	}

	if alreadyVerified {
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "your email is already verified"})
		return
	}

	slog.Info("email verified", "account_id", account.ID)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "email verified successfully"})
}

// ResendVerification は検証メール再送APIエンドポイントを処理します。
// 既に検証済みの場合は200で「検証済み」を報告します（エラーではない）。
func (h *AccountHandler) ResendVerification(c *gin.Context) {
	accountID, ok := jwtmw.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "login required"})
		return
	}

	emailSent, err := h.accounts.ResendVerification(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyVerified) {
			c.JSON(http.StatusOK, dto.MessageResponse{Message: "your email is already verified"})
			return
		}
		slog.Error("resend verification failed", "error", err, "account_id", accountID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to resend verification email"})
		return
	}

	if !emailSent {
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "verification email could not be sent, please try again later"})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "verification email sent, please check your inbox"})
}

// Dashboard は検証済みアカウント専用のダッシュボードエンドポイントを処理します。
// AuthRequiredとRequireVerifiedの両ミドルウェアを通過した後に到達します。
func (h *AccountHandler) Dashboard(c *gin.Context) {
	accountID, ok := jwtmw.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "login required"})
		return
	}

	account, err := h.accounts.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, usecase.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "account not found"})
			return
		}
		slog.Error("failed to load account", "error", err, "account_id", accountID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to load account"})
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}
