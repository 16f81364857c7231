package jwtmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"account_backend/internal/feature/accounts/domain/entity"
	"account_backend/internal/feature/accounts/usecase"
)

const (
	// ContextAccountID is the gin context key holding the authenticated account ID.
	ContextAccountID = "accountID"
	// ContextSessionID is the gin context key holding the session ID (jti claim).
	ContextSessionID = "sessionID"
)

// SessionStore is the subset of the session repository the middleware needs.
type SessionStore interface {
	FindByID(ctx context.Context, id string) (*entity.Session, error)
}

// AccountFinder is the subset of the account repository the gate needs.
type AccountFinder interface {
	FindByID(ctx context.Context, id uint) (*entity.Account, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated accounts only. The secret is injected
// at construction instead of being read from ambient state. On top of the
// signature check, the session referenced by the jti claim must still exist
// and be neither revoked nor expired, which makes logout effective before the
// token's exp.
func AuthRequired(secret string, sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" {
			// Server misconfiguration (JWT secret not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 2. Parse and verify JWT signature
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			// Validation error or invalid token
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 3. Extract claims (payload)
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		jti, ok := claims["jti"].(string)
		if !ok || jti == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 4. The session must still be live; logout revokes it
		session, err := sessions.FindByID(c.Request.Context(), jti)
		if err != nil || !session.IsValid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextAccountID, uint(sub))
		c.Set(ContextSessionID, jti)

		// 5. Pass control to the next handler
		c.Next()
	}
}

// RequireVerified returns a Gin middleware that blocks authenticated but
// unverified accounts from verification-gated routes. The actual decision is
// usecase.DecideAccess; this middleware only maps the decision onto HTTP
// statuses, so every gated route shares one decision table.
func RequireVerified(accounts AccountFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, authenticated := AccountID(c)

		var verified bool
		if authenticated {
			account, err := accounts.FindByID(c.Request.Context(), accountID)
			if err != nil {
				// Account deleted out-of-band since the token was issued.
				authenticated = false
			} else {
				verified = account.Verified
			}
		}

		switch usecase.DecideAccess(authenticated, verified) {
		case usecase.AccessLoginRequired:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		case usecase.AccessVerificationRequired:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "please verify your email address to access this page",
			})
		default:
			c.Next()
		}
	}
}

// AccountID extracts the authenticated account ID set by AuthRequired.
func AccountID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextAccountID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// SessionID extracts the session ID set by AuthRequired.
func SessionID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextSessionID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
