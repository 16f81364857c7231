package usecase

import (
	"context"
	"time"

	"account_backend/internal/feature/accounts/domain/entity"
)

// mockAccountRepository is a func-field mock of the AccountRepository interface.
type mockAccountRepository struct {
	CreateFunc       func(ctx context.Context, account *entity.Account) error
	FindByEmailFunc  func(ctx context.Context, email string) (*entity.Account, error)
	FindByIDFunc     func(ctx context.Context, id uint) (*entity.Account, error)
	MarkVerifiedFunc func(ctx context.Context, id uint, at time.Time) (bool, error)
}

func (m *mockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	return nil
}

func (m *mockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrAccountNotFound
}

func (m *mockAccountRepository) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrAccountNotFound
}

func (m *mockAccountRepository) MarkVerified(ctx context.Context, id uint, at time.Time) (bool, error) {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, id, at)
	}
	return true, nil
}

// mockSessionRepository is a func-field mock of the SessionRepository interface.
type mockSessionRepository struct {
	CreateFunc               func(ctx context.Context, session *entity.Session) error
	FindByIDFunc             func(ctx context.Context, id string) (*entity.Session, error)
	RevokeFunc               func(ctx context.Context, id string) error
	RevokeAllByAccountIDFunc func(ctx context.Context, accountID uint) error
	DeleteExpiredFunc        func(ctx context.Context) (int64, error)
}

func (m *mockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrSessionNotFound
}

func (m *mockSessionRepository) Revoke(ctx context.Context, id string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, id)
	}
	return nil
}

func (m *mockSessionRepository) RevokeAllByAccountID(ctx context.Context, accountID uint) error {
	if m.RevokeAllByAccountIDFunc != nil {
		return m.RevokeAllByAccountIDFunc(ctx, accountID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return 0, nil
}

// mockTokenCodec is a func-field mock of the VerificationTokenCodec interface.
type mockTokenCodec struct {
	IssueFunc    func(accountID uint) (string, error)
	ValidateFunc func(token string) (uint, error)
}

func (m *mockTokenCodec) Issue(accountID uint) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(accountID)
	}
	return "mock-token", nil
}

func (m *mockTokenCodec) Validate(token string) (uint, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return 1, nil
}

// mockNotifier is a func-field mock of the VerificationNotifier interface.
type mockNotifier struct {
	SendVerificationLinkFunc func(ctx context.Context, email, token string) error
}

func (m *mockNotifier) SendVerificationLink(ctx context.Context, email, token string) error {
	if m.SendVerificationLinkFunc != nil {
		return m.SendVerificationLinkFunc(ctx, email, token)
	}
	return nil
}

// mockJWTGenerator is a func-field mock of the JWTGenerator interface.
type mockJWTGenerator struct {
	GenerateTokenFunc func(accountID uint, email, sessionID string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(accountID uint, email, sessionID string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(accountID, email, sessionID)
	}
	return "mock-jwt", nil
}
