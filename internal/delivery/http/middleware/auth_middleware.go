package middleware

import (
	"errors"
	"strings"

	"career-guidance/internal/domain/identity"
	"career-guidance/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const CtxIdentityKey = "identity"

type AuthMiddleware struct {
	jwt jwt.Validator
}

func NewAuthMiddleware(v jwt.Validator) *AuthMiddleware {
	return &AuthMiddleware{jwt: v}
}

// Middleware requires a bearer token and stores the caller's
// identity.Context in Locals.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return m.handler(func(c fiber.Ctx) (string, bool) {
		return bearerTokenFromHeader(c.Get("Authorization"))
	})
}

// QueryMiddleware reads the token from the "token" query parameter, for
// clients such as browsers opening a WebSocket that cannot set headers.
func (m *AuthMiddleware) QueryMiddleware() fiber.Handler {
	return m.handler(func(c fiber.Ctx) (string, bool) {
		if tok, ok := bearerTokenFromHeader(c.Get("Authorization")); ok {
			return tok, true
		}
		tok := strings.TrimSpace(c.Query("token"))
		return tok, tok != ""
	})
}

func (m *AuthMiddleware) handler(extract func(fiber.Ctx) (string, bool)) fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.jwt == nil {
			return NewAppError(fiber.StatusServiceUnavailable, "Authentication unavailable", nil, nil)
		}
		token, ok := extract(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxIdentityKey, m.jwt.Identity(claims))
		return c.Next()
	}
}

// IdentityFrom returns the caller set by the auth middleware, or an
// unauthenticated context.
func IdentityFrom(c fiber.Ctx) identity.Context {
	if ident, ok := c.Locals(CtxIdentityKey).(identity.Context); ok {
		return ident
	}
	return identity.Context{}
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
