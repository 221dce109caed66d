package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/simpleblog/backend/internal/model"
)

// TokenCodec signs and verifies session tokens with a process-wide HMAC secret.
// Rotating the secret invalidates every outstanding token.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type sessionClaims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// NewTokenCodec builds a codec. A zero ttl issues tokens without an exp claim.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	if ttl < 0 {
		return nil, fmt.Errorf("%w: JWT_TTL must not be negative", ErrMisconfigured)
	}
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

func (c *TokenCodec) Issue(claim model.SessionClaim) (string, error) {
	now := c.now()
	claims := sessionClaims{
		UserID: claim.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatInt(claim.UserID, 10),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify returns ErrUnauthorized for every failure: empty, malformed,
// wrongly signed, expired, or carrying no user.
func (c *TokenCodec) Verify(tokenStr string) (*model.SessionClaim, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return nil, ErrUnauthorized
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	if claims.UserID <= 0 {
		return nil, ErrUnauthorized
	}

	return &model.SessionClaim{UserID: claims.UserID}, nil
}
