// Package auth issues and verifies the bearer credentials of the API.
package auth

import (
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	defaultSecret        = "change_me"
	defaultExpireMinutes = 10080
)

// Claims carried by an access token. Subject is the user id as a decimal
// string.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Config is read from the environment once at startup.
type Config struct {
	Secret        string
	ExpireMinutes int
}

// ConfigFromEnv reads JWT_SECRET and ACCESS_TOKEN_EXPIRE_MINUTES, falling
// back to development defaults.
func ConfigFromEnv() Config {
	cfg := Config{Secret: os.Getenv("JWT_SECRET"), ExpireMinutes: defaultExpireMinutes}
	if cfg.Secret == "" {
		cfg.Secret = defaultSecret
	}
	if raw := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			cfg.ExpireMinutes = minutes
		}
	}
	return cfg
}

// IssueToken signs an HS256 access token for the given user.
func IssueToken(cfg Config, userID int64, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.ExpireMinutes) * time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// ParseToken verifies a token's signature and expiry and returns its claims.
func ParseToken(cfg Config, raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// UserID decodes the numeric subject of the claims.
func (c *Claims) UserID() (int64, error) {
	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "invalid token subject")
	}
	return userID, nil
}
