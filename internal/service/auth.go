package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/simpleblog/backend/internal/config"
	"github.com/simpleblog/backend/internal/db"
	"github.com/simpleblog/backend/internal/model"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 64
	minPasswordLength = 8
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrMisconfigured      = config.ErrMisconfigured
)

type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

// UserRepository is the credential store.
type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type AuthService struct {
	repo         UserRepository
	hasher       *PasswordHasher
	tokens       *TokenCodec
	allowSignup  bool
	cookieCfg    CookieConfig
	storeTimeout time.Duration
}

func NewAuthService(repo UserRepository, cfg config.AuthConfig, storeTimeout time.Duration) (*AuthService, error) {
	tokens, err := NewTokenCodec(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	cookieSameSite, err := parseSameSite(cfg.CookieSameSite)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SAMESITE", ErrMisconfigured)
	}
	if cookieSameSite == http.SameSiteNoneMode && !cfg.CookieSecure {
		return nil, fmt.Errorf("%w: SameSite=None requires Secure cookie", ErrMisconfigured)
	}

	cookieName := strings.TrimSpace(cfg.CookieName)
	if cookieName == "" {
		cookieName = "token"
	}
	cookiePath := cfg.CookiePath
	if strings.TrimSpace(cookiePath) == "" {
		cookiePath = "/"
	}

	return &AuthService{
		repo:         repo,
		hasher:       NewPasswordHasher(PasswordCost),
		tokens:       tokens,
		allowSignup:  cfg.AllowSignup,
		storeTimeout: storeTimeout,
		cookieCfg: CookieConfig{
			Name:     cookieName,
			Path:     cookiePath,
			Domain:   cfg.CookieDomain,
			Secure:   cfg.CookieSecure,
			SameSite: cookieSameSite,
			MaxAge:   int(cfg.JWTTTL.Seconds()),
		},
	}, nil
}

// EnsureAdmin creates the bootstrap account unless the username already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: ADMIN_USERNAME/ADMIN_PASSWORD are required", ErrMisconfigured)
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	_, err := s.repo.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return storeError(err)
	}

	if err := validateCredentials(username, password); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	if _, err := s.repo.CreateUser(ctx, username, hash); err != nil && !errors.Is(err, db.ErrDuplicate) {
		return storeError(err)
	}
	return nil
}

func (s *AuthService) AllowSignup() bool {
	return s.allowSignup
}

func (s *AuthService) CookieConfig() CookieConfig {
	return s.cookieCfg
}

// Register stores a new user and returns its public projection.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.PublicUser, error) {
	if !s.allowSignup {
		return nil, ErrForbidden
	}

	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.repo.CreateUser(ctx, username, hash)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, storeError(err)
	}

	public := user.Public()
	return &public, nil
}

// Login returns a signed session token. Unknown usernames and wrong
// passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", storeError(err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(model.SessionClaim{UserID: user.ID})
}

// Authorize is the gate decision for a presented token.
func (s *AuthService) Authorize(token string) (*model.AuthUser, error) {
	claim, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return &model.AuthUser{ID: claim.UserID}, nil
}

func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) != username {
		return ErrInvalidInput
	}
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return ErrInvalidInput
	}
	if strings.TrimSpace(password) == "" {
		return ErrInvalidInput
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordBytes {
		return ErrInvalidInput
	}
	return nil
}

func parseSameSite(value string) (http.SameSite, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return http.SameSiteLaxMode, nil
	}
	switch value {
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, ErrInvalidInput
	}
}

func withStoreTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func storeError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
