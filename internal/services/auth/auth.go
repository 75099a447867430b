// Package auth provides account signup, login and the logged-in session
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gungunaswani/GroomifyAI/internal/config"
	"github.com/gungunaswani/GroomifyAI/internal/models"
	"github.com/gungunaswani/GroomifyAI/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password signup accepts
const MinPasswordLength = 6

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidToken       = errors.New("invalid token")
)

// ValidationError carries the message shown next to the form
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is makes errors.Is(err, ErrValidation) match any validation failure
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// randRead is replaceable in tests
var randRead = rand.Read

func invalid(msg string) error { return &ValidationError{Message: msg} }

// Service handles authentication operations
type Service struct {
	cfg      *config.Config
	userRepo *storage.UserRepository
	current  *storage.CurrentUserStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new auth service
func NewService(cfg *config.Config, userRepo *storage.UserRepository, current *storage.CurrentUserStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:      cfg,
		userRepo: userRepo,
		current:  current,
		logger:   logger,
		now:      time.Now,
	}
}

// SignupInput contains registration data
type SignupInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	AcceptTerms     bool   `json:"accept_terms"`
}

// Validate checks the form in the order the messages are shown
func (in SignupInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" ||
		in.Password == "" || in.ConfirmPassword == "" {
		return invalid("Please fill in all fields.")
	}
	if in.Password != in.ConfirmPassword {
		return invalid("Passwords do not match.")
	}
	if len(in.Password) < MinPasswordLength {
		return invalid(fmt.Sprintf("Password must be at least %d characters long.", MinPasswordLength))
	}
	if !in.AcceptTerms {
		return invalid("Please accept the terms and conditions.")
	}
	return nil
}

// Signup creates a new account. It does not log the user in.
func (s *Service) Signup(ctx context.Context, input SignupInput) (*models.Account, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(input.Email)

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.NewAccount(strings.TrimSpace(input.Name), email, string(hash))
	if err := s.userRepo.Create(ctx, account); err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created", "account_id", account.ID)
	return account, nil
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	Account *models.Account
	Token   string
	Expires time.Time
}

// Login checks credentials, makes the account the current user and issues
// a session token
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, invalid("Please fill in all fields.")
	}

	account, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, storage.ErrAccountNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	expires := now.Add(s.cfg.SessionDuration)
	token, err := s.createToken(account, now, expires)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	if err := s.current.Set(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to set current user: %w", err)
	}

	s.logger.Info("login", "account_id", account.ID)
	return &LoginResult{Account: account, Token: token, Expires: expires}, nil
}

// Logout clears the current user. It never fails from the caller's point
// of view; storage errors are only logged.
func (s *Service) Logout(ctx context.Context) {
	if err := s.current.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear current user", "error", err)
	}
}

// Current returns the logged-in account
func (s *Service) Current(ctx context.Context) (*models.Account, error) {
	account, err := s.current.Get(ctx)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotLoggedIn
	}
	return account, nil
}

// ValidateToken verifies a session token. It only resolves while its
// subject is still the current user.
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*models.Account, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrSessionExpired
	}
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	account, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if account.ID != id {
		return nil, ErrNotLoggedIn
	}
	return account, nil
}

func (s *Service) createToken(account *models.Account, now, expires time.Time) (string, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", err
	}

	claims := jwt.RegisteredClaims{
		Subject:   account.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
		ID:        jti,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func generateJTI() (string, error) {
	b := make([]byte, 16)
	if _, err := randRead(b); err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
