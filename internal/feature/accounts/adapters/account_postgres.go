// Package adapters はaccountsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"account_backend/internal/feature/accounts/domain/entity"
	"account_backend/internal/feature/accounts/usecase"
)

// uniqueViolation はPostgreSQLの一意制約違反のSQLSTATEコードです。
const uniqueViolation = "23505"

// accountPostgres はAccountRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type accountPostgres struct {
	db *gorm.DB
}

// accountPostgresがAccountRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.AccountRepository = (*accountPostgres)(nil)

// NewAccountPostgres は指定されたgorm.DB接続でaccountPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewAccountPostgres(db *gorm.DB) *accountPostgres {
	return &accountPostgres{db: db}
}

// Create はアカウントをデータベースに追加します。
// 同じメールアドレスのアカウントが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *accountPostgres) Create(ctx context.Context, a *entity.Account) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		// SQLSTATE 23505: ユニークキーの重複エントリ
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return usecase.ErrEmailAlreadyExists
		}
		// TranslateError有効時（テストのSQLiteドライバなど）はGORMが変換する
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでアカウントを取得します。
// アカウントが存在しない場合、usecase.ErrAccountNotFoundを返します。
func (r *accountPostgres) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByID はIDでアカウントを取得します。
// アカウントが存在しない場合、usecase.ErrAccountNotFoundを返します。
func (r *accountPostgres) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// MarkVerified はアカウントを検証済みに遷移させます。
// verified=falseの行だけを対象にした単一行UPDATEなので、同一アカウントへの
// 同時confirmのうち正確に1つだけが遷移し、VerifiedAtが二重に刻印されることはありません。
// 行が遷移した場合はtrueを返します。
func (r *accountPostgres) MarkVerified(ctx context.Context, id uint, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Account{}).
		Where("id = ? AND verified = ?", id, false).
		Updates(map[string]any{"verified": true, "verified_at": at})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
