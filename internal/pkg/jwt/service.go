package jwt

import (
	"errors"
	"strings"
	"time"

	"career-guidance/internal/domain/identity"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims are the fields read from identity provider tokens. The subject is
// the user id.
type Claims struct {
	Email     string   `json:"email,omitempty"`
	Name      string   `json:"name,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	TokenType string   `json:"token_type,omitempty"`

	jwtlib.RegisteredClaims
}

type Validator interface {
	ValidateToken(tokenString string) (Claims, error)
	Identity(claims Claims) identity.Context
}

// HMACService validates HS256 tokens shared with the identity provider.
type HMACService struct {
	secret    []byte
	issuer    string
	adminRole string
	now       func() time.Time
}

func NewHMACService(secret, issuer, adminRole string) *HMACService {
	return &HMACService{
		secret:    []byte(secret),
		issuer:    strings.TrimSpace(issuer),
		adminRole: strings.TrimSpace(adminRole),
		now:       time.Now,
	}
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(s.issuer))
	}

	var c Claims
	tok, err := jwtlib.NewParser(opts...).ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(c.Subject) == "" || c.TokenType == TokenTypeRefresh {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

func (s *HMACService) Identity(c Claims) identity.Context {
	ident := identity.Context{
		UserID:      strings.TrimSpace(c.Subject),
		Email:       c.Email,
		DisplayName: c.Name,
	}
	if s.adminRole != "" {
		for _, r := range c.Roles {
			if strings.EqualFold(r, s.adminRole) {
				ident.IsAdmin = true
				break
			}
		}
	}
	return ident
}

// GenerateAccessToken signs a token the way the identity provider does.
// It exists for tests and local tooling.
func (s *HMACService) GenerateAccessToken(subject, email, name string, roles []string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 || ttl <= 0 {
		return "", ErrTokenInvalid
	}
	now := s.now().UTC()
	c := Claims{
		Email:     email,
		Name:      name,
		Roles:     roles,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(s.secret)
}
