package security

import (
	"errors"
	"time"

	"hubsync/internal/sync/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid          = errors.New("token is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
)

// Claims carries the identity of a calling service.
type Claims struct {
	Service string `json:"service"`
	jwt.RegisteredClaims
}

// ServiceTokenValidator issues and validates the HMAC service tokens
// guarding the trigger API.
type ServiceTokenValidator struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

// NewServiceTokenValidator creates a new service token validator
func NewServiceTokenValidator(cfg *config.AuthConfig) (*ServiceTokenValidator, error) {
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("jwt secret key cannot be empty")
	}
	if cfg.JWTIssuer == "" {
		return nil, errors.New("jwt issuer cannot be empty")
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("token TTL must be positive")
	}

	return &ServiceTokenValidator{
		secretKey: []byte(cfg.JWTSecretKey),
		issuer:    cfg.JWTIssuer,
		ttl:       cfg.TokenTTL,
	}, nil
}

// GenerateToken issues a new token for the named calling service
func (s *ServiceTokenValidator) GenerateToken(service string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Service: service,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken validates a service token and returns its claims
func (s *ServiceTokenValidator) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrTokenSignatureInvalid
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Issuer != s.issuer {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
