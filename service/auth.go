package service

import (
	"cinemaverse/apperror"
	"cinemaverse/constants"
	"cinemaverse/helper"
	"cinemaverse/logger"
	"cinemaverse/model"
	"cinemaverse/repository"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jinzhu/copier"
)

const resetTokenTTL = time.Hour

type AuthService struct{ *Deps }

func (s *AuthService) Register(ctx context.Context, in model.RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	taken, err := s.UoW.Users.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.InvalidOperation("email %s is already registered", email)
	}
	hash, err := helper.HashPassword(in.Password, s.Settings.BcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	user := &model.User{}
	if err := copier.Copy(user, &in); err != nil {
		return nil, errors.Wrap(err, "map user")
	}
	user.Email = email
	user.Password = hash
	user.Role = constants.ROLE_CUSTOMER
	user.Active = true
	if err := s.UoW.Users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.InvalidOperation("email %s is already registered", email)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, in model.LoginInput) (*model.AuthResponse, error) {
	user, err := s.UoW.Users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized(constants.INVALID_CREDENTIALS)
		}
		return nil, err
	}
	if !helper.CheckPasswordHash(in.Password, user.Password) {
		return nil, apperror.Unauthorized(constants.INVALID_CREDENTIALS)
	}
	if !user.Active {
		return nil, apperror.Forbidden(constants.ACCOUNT_NOT_ACTIVE)
	}
	return s.issue(user)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.AuthResponse, error) {
	claims, err := s.Tokens.Parse(refreshToken, helper.TokenTypeRefresh)
	if err != nil {
		return nil, apperror.Unauthorized(constants.INVALID_TOKEN)
	}
	user, err := s.UoW.Users.FindByID(ctx, claims.UserId)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized(constants.INVALID_TOKEN)
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperror.Forbidden(constants.ACCOUNT_NOT_ACTIVE)
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*model.AuthResponse, error) {
	tokens, err := s.Tokens.Issue(model.TokenClaim{UserId: user.ID, Email: user.Email, Role: user.Role}, s.now())
	if err != nil {
		return nil, errors.Wrap(err, "sign tokens")
	}
	return &model.AuthResponse{TokenData: tokens, User: *user}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*model.User, error) {
	return s.UoW.Users.FindByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, in model.UpdateProfileInput) (*model.User, error) {
	user, err := s.UoW.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := copier.CopyWithOption(user, &in, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, errors.Wrap(err, "map profile")
	}
	if err := s.UoW.Users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, in model.ChangePasswordInput) error {
	user, err := s.UoW.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !helper.CheckPasswordHash(in.CurrentPassword, user.Password) {
		return apperror.Invalid("current password is incorrect")
	}
	hash, err := helper.HashPassword(in.NewPassword, s.Settings.BcryptCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	return s.UoW.Users.Updates(ctx, user.ID, map[string]any{"password": hash})
}

// ForgotPassword emails a reset link. Unknown addresses succeed silently.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.UoW.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil
		}
		return err
	}
	if !user.Active {
		return nil
	}
	token := &model.PasswordResetToken{
		UserId:    user.ID,
		Token:     helper.OpaqueToken(),
		ExpiresAt: s.now().Add(resetTokenTTL),
	}
	if err := s.UoW.ResetTokens.Create(ctx, token); err != nil {
		return err
	}
	link := fmt.Sprintf("%s/reset-password?token=%s", s.Settings.FrontendURL, url.QueryEscape(token.Token))
	if err := s.Accounts.SendPasswordReset(ctx, user.Email, user.FullName(), link); err != nil {
		logger.Log.WithError(err).WithField("user", user.ID).Error("failed to send password reset email")
		return errors.Wrap(err, "send password reset email")
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, in model.ResetPasswordInput) error {
	hash, err := helper.HashPassword(in.NewPassword, s.Settings.BcryptCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	now := s.now()
	return s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		token, err := tx.ResetTokens.FindOne(ctx, "token = ?", in.Token)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return apperror.Invalid("reset token is invalid")
			}
			return err
		}
		if token.UsedAt != nil {
			return apperror.InvalidOperation("reset token has already been used")
		}
		if !token.ExpiresAt.After(now) {
			return apperror.Invalid("reset token has expired")
		}
		if err := tx.ResetTokens.Updates(ctx, token.ID, map[string]any{"used_at": now}); err != nil {
			return err
		}
		return tx.Users.Updates(ctx, token.UserId, map[string]any{"password": hash})
	})
}
