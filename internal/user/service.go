package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/valmaiimtiyaz/artzybackend/internal/auth"
	"github.com/valmaiimtiyaz/artzybackend/internal/user/entity"
	userrepo "github.com/valmaiimtiyaz/artzybackend/internal/user/repo"
	"github.com/valmaiimtiyaz/artzybackend/pkg/database"
)

// Repository is the datastore surface the service needs; *repo.UserRepo implements it.
type Repository interface {
	Create(ctx context.Context, u *entity.User) (*entity.PublicUser, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetProfile(ctx context.Context, id int64) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, id int64, in entity.ProfileUpdate) (*entity.Profile, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

var (
	ErrEmailTaken        = errors.New("email already in use")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrEmailNotFound     = errors.New("email not found")
	ErrWrongPassword     = errors.New("wrong password")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidResetToken = errors.New("reset token invalid or expired")
)

// UserService orchestrates registration, login and profile flows.
type UserService struct {
	repo          Repository
	hasher        auth.PasswordHasher
	tokens        *auth.TokenService
	resetLinkBase string
	logger        *zap.SugaredLogger
}

func NewUserService(r Repository, hasher auth.PasswordHasher, tokens *auth.TokenService, resetLinkBase string, logger *zap.SugaredLogger) *UserService {
	if hasher == nil {
		hasher = auth.BcryptHasher{Cost: auth.DefaultCost}
	}
	return &UserService{repo: r, hasher: hasher, tokens: tokens, resetLinkBase: resetLinkBase, logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. An email that is already registered is
// rejected before hashing; the unique constraints catch concurrent signups.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*entity.PublicUser, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)

	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Create(ctx, &entity.User{Username: username, Email: email, PasswordHash: hash})
	if err != nil {
		if cerr := uniqueConflict(err); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login verifies credentials and returns a session token with the caller's profile.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *entity.Profile, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrEmailNotFound
		}
		return "", nil, fmt.Errorf("lookup email: %w", err)
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return "", nil, ErrWrongPassword
	}
	token, err := s.tokens.Issue(u.ID, auth.PurposeSession, auth.SessionTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u.Profile(), nil
}

// Profile returns the caller's own profile.
func (s *UserService) Profile(ctx context.Context, id auth.Identity) (*entity.Profile, error) {
	p, err := s.repo.GetProfile(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// UpdateProfile replaces the caller's mutable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, id auth.Identity, in entity.ProfileUpdate) (*entity.Profile, error) {
	in.Email = normalizeEmail(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	p, err := s.repo.UpdateProfile(ctx, id.UserID, in)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		if cerr := uniqueConflict(err); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// ForgotPassword issues a reset token for email and returns the reset link.
// Delivery is not implemented: the link is only written to the server log.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrEmailNotFound
		}
		return "", fmt.Errorf("lookup email: %w", err)
	}
	token, err := s.tokens.Issue(u.ID, auth.PurposeReset, auth.ResetTTL)
	if err != nil {
		return "", err
	}
	link := s.resetLinkBase + token
	s.logger.Infow("password reset link issued", "user_id", u.ID, "link", link)
	return link, nil
}

// ResetPassword sets a new password for the subject of a reset token.
func (s *UserService) ResetPassword(ctx context.Context, token, password string) error {
	claims, err := s.tokens.Verify(token, auth.PurposeReset)
	if err != nil {
		return ErrInvalidResetToken
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, claims.UserID, hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func uniqueConflict(err error) error {
	switch {
	case database.IsUniqueViolation(err, userrepo.EmailConstraint):
		return ErrEmailTaken
	case database.IsUniqueViolation(err, userrepo.UsernameConstraint):
		return ErrUsernameTaken
	}
	return nil
}
