// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/domain/service"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	tokenSvc  service.TokenService
	logger    *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokenSvc service.TokenService,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		txManager: txManager,
		hasher:    hasher,
		tokenSvc:  tokenSvc,
		logger:    logger,
	}
}

// Register creates a client or seller account and mints the email
// verification token the mail collaborator delivers.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	role, ok := entity.ParseRole(input.Role)
	if !ok || role == entity.RoleAdmin {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "role must be client or seller")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	srv.logger.Info("Registering account", "email", email, "role", role)

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Email:        email,
		Name:         input.Name,
		Phone:        input.Phone,
		Address:      input.Address,
		Role:         role,
		PasswordHash: hash,
	}
	if role == entity.RoleSeller {
		user.SellerProfile = &entity.SellerProfile{
			Cuisine:       input.Cuisine,
			PriceRange:    input.PriceRange,
			BusinessHours: input.BusinessHours,
			Description:   input.Description,
		}
	}

	var verificationToken string

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return domainerrors.ErrUserAlreadyExists
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check existing email")
		}

		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		token, expiresAt, err := srv.tokenSvc.GenerateVerificationToken(user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to mint verification token")
		}
		verificationToken = token

		verification := &entity.EmailVerification{
			UserID:    user.ID,
			Token:     token,
			ExpiresAt: expiresAt,
		}

		return errors.Wrap(repoFactory.VerificationRepo().Create(ctx, verification), "failed to store verification record")
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to register account")
	}

	return &usecase.RegisterOutput{User: user, VerificationToken: verificationToken}, nil
}

// Login checks credentials and returns a token pair. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "login failed")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	access, refresh, err := srv.tokenSvc.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	srv.logger.Info("User logged in", "userID", user.ID, "role", user.Role)

	return &usecase.LoginOutput{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}

// VerifyEmail consumes a signed verification token. Invalid or expired
// tokens leave the user untouched; a replay of a consumed token reports the
// user as already verified.
func (srv *accountService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := srv.tokenSvc.ValidateVerificationToken(token)
	if err != nil {
		if errors.Is(err, service.ErrSecretMissing) {
			return errors.Wrap(domainerrors.ErrInternalError, "verification secret not configured")
		}

		return errors.Wrap(domainerrors.ErrVerificationToken, err.Error())
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrAlreadyVerified
			}

			return errors.Wrap(err, "failed to find user")
		}
		if user.Verified {
			return domainerrors.ErrAlreadyVerified
		}

		verificationRepo := repoFactory.VerificationRepo()

		verification, err := verificationRepo.FindByToken(ctx, token)
		if err != nil {
			if errors.Is(err, repository.ErrVerificationNotFound) {
				return domainerrors.ErrVerificationToken
			}

			return errors.Wrap(err, "failed to find verification record")
		}
		if verification.Expired(time.Now()) {
			return domainerrors.ErrVerificationToken
		}

		user.Verified = true
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to mark user verified")
		}

		return errors.Wrap(verificationRepo.Delete(ctx, verification.ID), "failed to consume verification record")
	})

	return errors.Wrap(err, "failed to verify email")
}

// ResolveIdentity maps an authenticated user id to a typed identity, failing
// closed when the user row is gone.
func (srv *accountService) ResolveIdentity(ctx context.Context, userID uuid.UUID) (*entity.Identity, error) {
	var identity *entity.Identity

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUnauthenticated
			}

			return errors.Wrap(err, "failed to find user")
		}
		identity = &entity.Identity{UserID: user.ID, Role: user.Role}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve identity")
	}

	return identity, nil
}

// GetProfile retrieves the complete user record including the seller profile.
func (srv *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get profile")
	}

	return user, nil
}

// UpdateProfile applies the non-nil profile fields.
func (srv *accountService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) error {
	srv.logger.Info("Updating profile", "userID", userID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Phone != nil {
			user.Phone = *input.Phone
		}
		if input.Address != nil {
			user.Address = *input.Address
		}

		if user.SellerProfile != nil {
			if input.Cuisine != nil {
				user.SellerProfile.Cuisine = *input.Cuisine
			}
			if input.PriceRange != nil {
				user.SellerProfile.PriceRange = *input.PriceRange
			}
			if input.BusinessHours != nil {
				user.SellerProfile.BusinessHours = *input.BusinessHours
			}
			if input.Description != nil {
				user.SellerProfile.Description = *input.Description
			}
		}

		return errors.Wrap(userRepo.Update(ctx, user), "failed to update user")
	})

	return errors.Wrap(err, "failed to update profile")
}
