package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrUnknownRole  = errors.New("unknown role")
)

type Claims struct {
	Role string `json:"role"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateToken(subject, role string) (string, error)
	ValidateToken(tokenString string) (Claims, error)
}

func ValidRole(role string) bool {
	return role == RoleRecruiter || role == RoleAdmin
}

type HMACService struct {
	secret    []byte
	issuer    string
	expiresIn time.Duration

	now func() time.Time
}

func NewHMACService(secret, issuer string, expiresIn time.Duration) *HMACService {
	return &HMACService{
		secret:    []byte(secret),
		issuer:    issuer,
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

func (s *HMACService) GenerateToken(subject, role string) (string, error) {
	if len(s.secret) == 0 || s.expiresIn <= 0 || strings.TrimSpace(subject) == "" {
		return "", ErrTokenInvalid
	}
	if !ValidRole(role) {
		return "", ErrUnknownRole
	}

	now := s.now().UTC()
	c := Claims{
		Role: role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.expiresIn)),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(s.issuer))
	}
	p := jwtlib.NewParser(opts...)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
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
	if !ValidRole(c.Role) {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
