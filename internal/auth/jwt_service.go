package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"mapup/internal/model"
)

// ErrInvalidToken is returned for a session cookie that fails validation.
var ErrInvalidToken = errors.New("invalid session token")

// Claims are carried by the dashboard's own session cookie.
type Claims struct {
	SessionID string     `json:"sid"`
	Role      model.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs and validates session cookies.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateSessionToken signs a cookie value pointing at sessionID, valid for ttl.
func (s *JWTService) GenerateSessionToken(sessionID string, role model.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		SessionID: sessionID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a session cookie and returns its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RoleFromBackendToken reads a "role" claim from a token issued by the backend.
// The signature is not checked: the dashboard holds no key for backend tokens,
// and the role only decides which views to render.
func RoleFromBackendToken(token string) model.Role {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	if role, ok := claims["role"].(string); ok {
		return model.Role(role)
	}
	if user, ok := claims["user"].(map[string]interface{}); ok {
		if role, ok := user["role"].(string); ok {
			return model.Role(role)
		}
	}
	return ""
}
