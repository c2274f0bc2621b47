// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-identity/internal/crypto"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/store"
	"github.com/MKhiriev/go-identity/internal/token"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/internal/validators"
	"github.com/MKhiriev/go-identity/models"
)

// idGenerator issues IDs for new accounts.
type idGenerator interface {
	Generate() (string, error)
}

// userIdentityService is the concrete implementation of UserIdentityService.
// All state is read-only after construction, so it is safe for concurrent use.
type userIdentityService struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
	tokens         token.Provider
	validator      validators.Validator
	ids            idGenerator

	now    func() time.Time
	logger *logger.Logger
}

// NewUserIdentityService constructs a UserIdentityService wired to its
// collaborators. IDs are time-ordered UUIDs.
func NewUserIdentityService(
	userRepository store.UserRepository,
	hasher crypto.PasswordHasher,
	tokens token.Provider,
	logger *logger.Logger,
) UserIdentityService {
	return &userIdentityService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		validator:      validators.NewUserValidator(),
		ids:            utils.NewUUIDGenerator(),
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
}

// Register creates a new account.
//
// Returns the new user ID or:
//   - ErrValidation if req fails validation.
//   - ErrUsernameExists if a live account already uses the username, including
//     when a concurrent registration wins the race to the unique index.
func (s *userIdentityService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}

	_, err := s.userRepository.FindByCondition(ctx, models.UserCondition{Username: req.Username, LiveOnly: true})
	switch {
	case err == nil:
		log.Debug().Str("username", req.Username).Msg("username is taken")
		return "", ErrUsernameExists
	case !errors.Is(err, store.ErrNoUserWasFound):
		return "", fmt.Errorf("error looking up username: %w", err)
	}

	salt, digest, err := s.digest(req.Password)
	if err != nil {
		return "", err
	}

	id, err := s.ids.Generate()
	if err != nil {
		return "", fmt.Errorf("error allocating user ID: %w", err)
	}

	now := s.now()
	user := models.User{
		ID:        id,
		Username:  req.Username,
		Password:  digest,
		Salt:      salt,
		Role:      models.RoleUser,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = s.userRepository.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameAlreadyExists) {
			return "", ErrUsernameExists
		}
		return "", fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", id).Msg("user registered")
	return id, nil
}

// Login authenticates an account and issues a token carrying its ID and role.
//
// An unknown username and a wrong password both return ErrInvalidCredentials
// after one digest comparison each; only the log tells them apart.
// DELETED and INACTIVE accounts get ErrAccountInactive once the password
// has matched. BANNED accounts are not refused here; their tokens are
// refused by IntrospectToken.
func (s *userIdentityService) Login(ctx context.Context, creds models.Credentials) (string, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, creds); err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}

	user, err := s.userRepository.FindByCondition(ctx, models.UserCondition{Username: creds.Username})
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			s.hasher.CompareDummy(creds.Password)
			log.Info().Str("username", creds.Username).Msg("login failed: username not found")
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("user search by username failed: %w", err)
	}

	match, err := s.hasher.Compare(user.Password, creds.Password, user.Salt)
	if err != nil {
		return "", fmt.Errorf("error comparing password digest: %w", err)
	}
	if !match {
		log.Info().Str("user_id", user.ID).Msg("login failed: password is incorrect")
		return "", ErrInvalidCredentials
	}

	if user.Status == models.StatusDeleted || user.Status == models.StatusInactive {
		log.Info().Str("user_id", user.ID).Str("status", string(user.Status)).Msg("login refused")
		return "", ErrAccountInactive
	}

	signed, err := s.tokens.Issue(ctx, models.TokenPayload{Subject: user.ID, Role: user.Role})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return signed, nil
}

// IntrospectToken verifies tokenString and resolves it against the stored
// account. The returned role is the account's current role, not the one
// embedded when the token was issued.
func (s *userIdentityService) IntrospectToken(ctx context.Context, tokenString string) (models.TokenPayload, error) {
	payload, ok := s.tokens.Verify(ctx, tokenString)
	if !ok || payload.Subject == "" {
		return models.TokenPayload{}, ErrInvalidToken
	}

	user, err := s.getUser(ctx, payload.Subject)
	if err != nil {
		return models.TokenPayload{}, err
	}

	switch user.Status {
	case models.StatusDeleted, models.StatusInactive, models.StatusBanned:
		logger.FromContext(ctx).Info().
			Str("user_id", user.ID).
			Str("status", string(user.Status)).
			Msg("token of inactive account")
		return models.TokenPayload{}, ErrAccountInactive
	}

	return models.TokenPayload{Subject: user.ID, Role: user.Role}, nil
}

func (s *userIdentityService) Profile(ctx context.Context, userID string) (models.UserProfile, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return models.UserProfile{}, err
	}

	return user.Profile(), nil
}

// Update applies a partial change to an account.
//
// Requesters may change their own account; admins may change any account.
// Role and Status may only be set by admins. A new username is checked for
// uniqueness and a new password is stored with a fresh salt.
func (s *userIdentityService) Update(ctx context.Context, requester models.Requester, userID string, patch models.UserPatch) error {
	log := logger.FromContext(ctx)

	if !requester.CanManage(userID) || (patch.IsAdministrative() && !requester.IsAdmin()) {
		log.Info().Str("requester", requester.Subject).Str("user_id", userID).Msg("update forbidden")
		return ErrForbidden
	}

	if err := s.validator.Validate(ctx, patch); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	update := models.UserUpdate{
		Role:      patch.Role,
		Status:    patch.Status,
		UpdatedAt: s.now(),
	}

	if patch.Username != nil && *patch.Username != user.Username {
		if err = s.ensureUsernameFree(ctx, *patch.Username, user.ID); err != nil {
			return err
		}
		update.Username = patch.Username
	}

	if patch.Password != nil {
		salt, digest, err := s.digest(*patch.Password)
		if err != nil {
			return err
		}
		update.Salt = &salt
		update.Password = &digest
	}

	if err = s.userRepository.Update(ctx, user.ID, update); err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			return ErrUsernameExists
		case errors.Is(err, store.ErrNoUserWasFound):
			return ErrNotFound
		}
		return fmt.Errorf("user update ended with error: %w", err)
	}

	return nil
}

// Delete soft-deletes an account: its status becomes DELETED and the row is
// kept. Requesters may delete their own account; admins may delete any.
func (s *userIdentityService) Delete(ctx context.Context, requester models.Requester, userID string) error {
	if !requester.CanManage(userID) {
		logger.FromContext(ctx).Info().Str("requester", requester.Subject).Str("user_id", userID).Msg("delete forbidden")
		return ErrForbidden
	}

	if err := s.userRepository.SoftDelete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrNotFound
		}
		return fmt.Errorf("user deletion ended with error: %w", err)
	}

	return nil
}

// getUser loads an account by ID, mapping absence to ErrNotFound.
func (s *userIdentityService) getUser(ctx context.Context, userID string) (models.User, error) {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("user search by ID failed: %w", err)
	}

	return user, nil
}

// ensureUsernameFree fails with ErrUsernameExists when a live account other
// than ownerID uses username.
func (s *userIdentityService) ensureUsernameFree(ctx context.Context, username, ownerID string) error {
	other, err := s.userRepository.FindByCondition(ctx, models.UserCondition{Username: username, LiveOnly: true})
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return nil
	case err != nil:
		return fmt.Errorf("error looking up username: %w", err)
	case other.ID != ownerID:
		return ErrUsernameExists
	}

	return nil
}

// digest returns a fresh salt and the digest of password under it.
func (s *userIdentityService) digest(password string) (salt, digest string, err error) {
	salt, err = s.hasher.GenerateSalt()
	if err != nil {
		return "", "", fmt.Errorf("error generating salt: %w", err)
	}

	digest, err = s.hasher.Hash(password, salt)
	if err != nil {
		return "", "", fmt.Errorf("error hashing password: %w", err)
	}

	return salt, digest, nil
}
