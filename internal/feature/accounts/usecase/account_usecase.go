// Package usecase はaccountsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"account_backend/internal/feature/accounts/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// AccountRepository はアカウントエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type AccountRepository interface {
	// Create は新しいアカウントをストレージに永続化します。
	// 同じメールアドレスのアカウントが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail は指定されたメールアドレスに一致するアカウントを取得します。
	// アカウントが存在しない場合、ErrAccountNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByID は指定されたIDに一致するアカウントを取得します。
	// アカウントが存在しない場合、ErrAccountNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Account, error)

	// MarkVerified はverified=falseの行に限定した単一行UPDATEで検証済みに遷移させます。
	// 行が遷移した場合はtrueを、既に検証済みだった場合はfalseを返します。
	// この条件付きUPDATEが同一アカウントへの同時confirmを直列化します。
	MarkVerified(ctx context.Context, id uint, at time.Time) (bool, error)
}

// VerificationTokenCodec はメール検証トークンの発行・検証を抽象化します。
type VerificationTokenCodec interface {
	// Issue は指定されたアカウントIDの署名済み検証トークンを生成します。
	Issue(accountID uint) (string, error)
	// Validate はトークンを検証し、埋め込まれたアカウントIDを返します。
	// 署名・用途・有効期限のいずれかが不正な場合はエラーを返します。
	Validate(token string) (uint, error)
}

// VerificationNotifier は検証リンクの配信を抽象化します。
// 配信失敗は呼び出し元で警告に降格され、アカウント作成を失敗させません。
type VerificationNotifier interface {
	SendVerificationLink(ctx context.Context, email, token string) error
}

// JWTGenerator はログイン用JWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたアカウントの署名済みJWTトークンを生成します。
	// sessionIDはjtiクレームとして埋め込まれます。
	GenerateToken(accountID uint, email, sessionID string) (string, error)
}

// accountUsecase はアカウントのビジネスロジックを実装します。
type accountUsecase struct {
	accounts   AccountRepository
	sessions   SessionRepository
	tokens     VerificationTokenCodec
	notifier   VerificationNotifier
	jwtGen     JWTGenerator
	sessionTTL time.Duration
}

// NewAccountUsecase はaccountUsecaseの新しいインスタンスを生成します。
func NewAccountUsecase(
	accounts AccountRepository,
	sessions SessionRepository,
	tokens VerificationTokenCodec,
	notifier VerificationNotifier,
	jwtGen JWTGenerator,
	sessionTTL time.Duration,
) *accountUsecase {
	return &accountUsecase{
		accounts:   accounts,
		sessions:   sessions,
		tokens:     tokens,
		notifier:   notifier,
		jwtGen:     jwtGen,
		sessionTTL: sessionTTL,
	}
}

// normalizeEmail はメールアドレスを保存用に正規化します（トリム＋小文字化）。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateEmail はメールアドレスの形式を検証します。
func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password, passwordConfirm string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if password != passwordConfirm {
		return ErrPasswordMismatch
	}
	return nil
}

// newSessionID は64文字の16進セッションIDを生成します。
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Signup はハッシュ化されたパスワードで新規アカウントを登録し、検証メールを送信します。
// メール配信の失敗はアカウント作成を失敗させず、戻り値のemailSentで報告されます。
func (u *accountUsecase) Signup(ctx context.Context, email, password, passwordConfirm string) (*entity.Account, bool, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, false, err
	}
	if err := validatePassword(password, passwordConfirm); err != nil {
		return nil, false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &entity.Account{Email: email, Password: string(hashed)}
	if err := u.accounts.Create(ctx, account); err != nil {
		return nil, false, err
	}

	// 検証メールはベストエフォート。失敗してもアカウント作成はコミット済み。
	emailSent := u.requestVerification(ctx, account)
	return account, emailSent, nil
}

// Login はアカウントを認証し、成功時にセッションを記録してJWTトークンを返します。
// タイミング攻撃を防止するため、アカウントが存在しない場合でもbcrypt比較を実行します。
func (u *accountUsecase) Login(ctx context.Context, email, password, userAgent, ipAddress string) (string, error) {
	account, err := u.accounts.FindByEmail(ctx, normalizeEmail(email))

	// アカウント未検出時のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = account.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// アカウント未検出とパスワード不一致を区別しない（列挙攻撃対策）
	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	sessionID, err := newSessionID()
	if err != nil {
		return "", err
	}

	now := time.Now()
	session := &entity.Session{
		ID:        sessionID,
		AccountID: account.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := u.jwtGen.GenerateToken(account.ID, account.Email, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}

// Logout は指定されたセッションを失効させます。
func (u *accountUsecase) Logout(ctx context.Context, sessionID string) error {
	return u.sessions.Revoke(ctx, sessionID)
}

// Confirm は検証トークンを検証し、対象アカウントを検証済みに遷移させます。
// 戻り値のalreadyVerifiedは、アカウントが既に検証済みだった（変更なしの冪等成功）ことを示します。
// 同一トークンで二度呼ばれても安全で、二度目はalreadyVerified=trueになります。
func (u *accountUsecase) Confirm(ctx context.Context, token string) (*entity.Account, bool, error) {
	accountID, err := u.tokens.Validate(token)
	if err != nil {
		// 不正・改ざん・期限切れはすべて単一のエラーに集約する
		return nil, false, ErrInvalidToken
	}

	account, err := u.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, false, ErrAccountNotFound
		}
		return nil, false, err
	}

	if account.Verified {
		// 冪等成功。VerifiedAtは再スタンプしない。
		return account, true, nil
	}

	now := time.Now().UTC()
	updated, err := u.accounts.MarkVerified(ctx, account.ID, now)
	if err != nil {
		return nil, false, err
	}
	if !updated {
		// 同時confirmとの競合に負けた。既に検証済みとして扱う。
		account, err = u.accounts.FindByID(ctx, accountID)
		if err != nil {
			return nil, false, err
		}
		return account, true, nil
	}

	account.Verified = true
	account.VerifiedAt = &now
	slog.Info("account email verified", "account_id", account.ID)
	return account, false, nil
}

// ResendVerification は検証メールを再送します。
// 以前発行したトークンは失効せず、それぞれ自身の有効期限まで有効なままです。
// 既に検証済みのアカウントにはErrAlreadyVerifiedを返します。
func (u *accountUsecase) ResendVerification(ctx context.Context, accountID uint) (bool, error) {
	account, err := u.accounts.FindByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	if account.Verified {
		return false, ErrAlreadyVerified
	}
	return u.requestVerification(ctx, account), nil
}

// GetAccount はIDでアカウントを取得します。
func (u *accountUsecase) GetAccount(ctx context.Context, id uint) (*entity.Account, error) {
	return u.accounts.FindByID(ctx, id)
}

// requestVerification は新しい検証トークンを発行し、配信を試みます。
// 配信結果はbooleanで返し、失敗はログに記録するだけでエラーにはしません。
func (u *accountUsecase) requestVerification(ctx context.Context, account *entity.Account) bool {
	token, err := u.tokens.Issue(account.ID)
	if err != nil {
		slog.Error("failed to issue verification token", "account_id", account.ID, "error", err)
		return false
	}
	if err := u.notifier.SendVerificationLink(ctx, account.Email, token); err != nil {
		slog.Warn("failed to send verification email", "account_id", account.ID, "error", err)
		return false
	}
	return true
}
