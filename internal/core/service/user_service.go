package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fluxt/fluxt-api/internal/core/domain"
	"github.com/fluxt/fluxt-api/internal/core/ports"
	"github.com/fluxt/fluxt-api/internal/pkg/password"
	"github.com/fluxt/fluxt-api/internal/pkg/token"
)

// UserService implements account management and the password-action token
// flows.
type UserService struct {
	users  ports.UserRepository
	files  ports.FileRepository
	tokens *token.Codec
	hasher *password.Hasher
	mailer ports.Mailer
	logger zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	files ports.FileRepository,
	tokens *token.Codec,
	hasher *password.Hasher,
	mailer ports.Mailer,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:  users,
		files:  files,
		tokens: tokens,
		hasher: hasher,
		mailer: mailer,
		logger: logger,
	}
}

// Create inserts a passwordless account and sends the invite email. The
// explicit duplicate check keeps the 409 ahead of any side effect; the
// repository's unique index covers the remaining race.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	user := &domain.User{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Email:     strings.ToLower(input.Email),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		Enabled:   input.Enabled,
	}

	if err := s.checkDuplicate(ctx, user); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user created")

	s.sendCreated(user)
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Update applies a partial update. Email is immutable here.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Enabled != nil {
		user.Enabled = *input.Enabled
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account and detaches its uploads; the files themselves
// survive without an author.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.files.ClearAuthor(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// SendCreatedEmail re-sends the invite for an existing account.
func (s *UserService) SendCreatedEmail(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	s.sendCreated(user)
	return nil
}

// SendResetEmail issues a reset token for the account behind email.
func (s *UserService) SendResetEmail(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return err
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return err
	}
	s.mailer.SendPasswordReset(user, tok)
	return nil
}

// PasswordTokenState reports whether a set-password token is still usable.
func (s *UserService) PasswordTokenState(ctx context.Context, tok string) error {
	user, err := s.redeem(ctx, tok)
	if err != nil {
		return err
	}
	if user.PasswordHash != "" {
		return domain.ErrPasswordAlreadySet
	}
	return nil
}

// SetPassword completes the invite flow. The already-set guard makes the
// token effectively single-use even though the token itself never expires.
func (s *UserService) SetPassword(ctx context.Context, tok, pass string) error {
	user, err := s.redeem(ctx, tok)
	if err != nil {
		return err
	}
	if user.PasswordHash != "" {
		return domain.ErrPasswordAlreadySet
	}
	return s.writePassword(ctx, user, pass)
}

// ResetPassword overwrites the password. Deliberately no already-set guard:
// a valid reset token may be used again to re-set the password.
func (s *UserService) ResetPassword(ctx context.Context, tok, pass string) error {
	user, err := s.redeem(ctx, tok)
	if err != nil {
		return err
	}
	return s.writePassword(ctx, user, pass)
}

// checkDuplicate rejects a candidate whose email collides with a different
// account. Exported behaviour matches the storage constraint; both paths
// report domain.ErrDuplicateUser.
func (s *UserService) checkDuplicate(ctx context.Context, user *domain.User) error {
	n, err := s.users.CountByEmail(ctx, user.Email, user.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrDuplicateUser
	}
	return nil
}

// redeem maps any token failure to the same not-found the caller would see
// for an unknown subject, so token probing learns nothing.
func (s *UserService) redeem(ctx context.Context, tok string) (*domain.User, error) {
	subject, err := s.tokens.Redeem(tok)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return s.users.FindByID(ctx, subject)
}

func (s *UserService) writePassword(ctx context.Context, user *domain.User, pass string) error {
	digest, err := s.hasher.Hash(pass)
	if err != nil {
		return err
	}
	user.PasswordHash = digest
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password updated")
	return nil
}

func (s *UserService) sendCreated(user *domain.User) {
	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("issuing invite token failed")
		return
	}
	s.mailer.SendUserCreated(user, tok)
}
