package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey       string
	Issuer          string
	Audience        string
	Leeway          time.Duration
	TokenExpiration time.Duration
}

// JWTService validates tokens issued by the identity provider
type JWTService struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
		now:    time.Now,
	}
}

// Claims defines JWT token content
type Claims struct {
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email,omitempty"`
	Name              string `json:"name,omitempty"`
	Administrator     bool   `json:"administrator"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token the way the identity provider would. Used by the manage
// command and tests.
func (s *JWTService) GenerateToken(username, email, name string, administrator bool) (string, error) {
	now := s.now()
	claims := &Claims{
		PreferredUsername: username,
		Email:             email,
		Name:              name,
		Administrator:     administrator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Audience:  jwt.ClaimStrings{s.config.Audience},
			Subject:   username,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses the token and checks signature, issuer, audience, exp and iat
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrTokenNotFound
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(s.config.Leeway),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	if s.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(s.config.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.SecretKey), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrTokenInvalid
	}
	if claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: token has no iat claim", apperrors.ErrTokenInvalid)
	}
	if strings.TrimSpace(claims.PreferredUsername) == "" {
		return nil, apperrors.ErrMissingUsername
	}
	return claims, nil
}

// ExtractToken returns the token from an Authorization header using the JWT or Bearer scheme
func ExtractToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", apperrors.ErrTokenNotFound
	}

	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found {
		return "", apperrors.ErrInvalidFormat
	}
	switch strings.ToLower(scheme) {
	case "jwt", "bearer":
	default:
		return "", apperrors.ErrInvalidFormat
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.ErrInvalidFormat
	}
	return token, nil
}
