// Package users implements registration, e-mail verification and login.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lleukocyte/travel-guide/internal/auth"
	apperrors "github.com/lleukocyte/travel-guide/internal/errors"
	"github.com/lleukocyte/travel-guide/internal/mailer"
	"github.com/lleukocyte/travel-guide/model"
)

// UserStore is the persistence the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	ActivateUser(ctx context.Context, email, code string) error
}

// Service manages user accounts.
type Service struct {
	store       UserStore
	hasher      *auth.PasswordHasher
	issuer      *auth.TokenIssuer
	sender      mailer.Sender
	codeLength  int
	sendTimeout time.Duration
	logger      *logrus.Entry
}

// NewService wires a user service.
func NewService(store UserStore, hasher *auth.PasswordHasher, issuer *auth.TokenIssuer, sender mailer.Sender, codeLength int, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		store:       store,
		hasher:      hasher,
		issuer:      issuer,
		sender:      sender,
		codeLength:  codeLength,
		sendTimeout: time.Minute,
		logger:      logger.WithField("component", "users"),
	}
}

// Register creates an inactive account and mails its verification code.
// A failed delivery is logged; the account is still created.
func (s *Service) Register(ctx context.Context, data model.UserCreate) (*model.User, error) {
	email := normalizeEmail(data.Email)

	hash, err := s.hasher.Hash(data.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	code, err := auth.GenerateCode(s.codeLength)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:            email,
		Username:         strings.TrimSpace(data.Username),
		PasswordHash:     hash,
		VerificationCode: code,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   email,
	}).Info("User registered")

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sendTimeout)
	defer cancel()
	if err := s.sender.SendVerificationCode(sendCtx, email, code); err != nil {
		s.logger.WithError(err).WithField("email", email).Error("Failed to send verification code")
	}

	return user, nil
}

// Verify activates the account when code matches the one that was mailed.
// Codes are compared case-insensitively.
func (s *Service) Verify(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := s.store.ActivateUser(ctx, email, code); err != nil {
		return err
	}
	s.logger.WithField("email", email).Info("User verified")
	return nil
}

// Login checks credentials and returns a bearer token. Unknown e-mails and
// wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, creds model.Credentials) (*model.Token, error) {
	user, err := s.store.GetUserByEmail(ctx, normalizeEmail(creds.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(user.PasswordHash, creds.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserNotActive
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &model.Token{AccessToken: token, TokenType: "bearer"}, nil
}

// Authenticate resolves a bearer token to its user. Tokens of deleted
// users are rejected with ErrInvalidToken.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.issuer.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, claims.Email())
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	if user.ID != claims.UserID {
		return nil, apperrors.ErrInvalidToken
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
