package service

import (
	"cinemaverse/apperror"
	"cinemaverse/constants"
	"cinemaverse/helper"
	"cinemaverse/model"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func register(t *testing.T, f *fixture, email string) *model.User {
	t.Helper()
	u, err := f.svc.Auth.Register(f.ctx, model.RegisterInput{
		FirstName: "Ada", LastName: "Lovelace", Email: email, Password: "correct horse",
	})
	require.NoError(t, err)
	return u
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	u := register(t, f, "Ada@Example.com")
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, constants.ROLE_CUSTOMER, u.Role)
	assert.NotEqual(t, "correct horse", u.Password)

	_, err := f.svc.Auth.Register(f.ctx, model.RegisterInput{FirstName: "A", LastName: "L", Email: "ada@example.com", Password: "whatever1"})
	require.ErrorIs(t, err, apperror.ErrInvalidOperation)
	assert.Equal(t, http.StatusConflict, apperror.Status(err))
}

func TestRegisterConcurrentDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.insertBefore(t, "users", func(tx *gorm.DB) error {
		return tx.Create(&model.User{FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "x", Role: constants.ROLE_CUSTOMER}).Error
	})

	_, err := f.svc.Auth.Register(f.ctx, model.RegisterInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "correct horse"})
	require.ErrorIs(t, err, apperror.ErrInvalidOperation)
	assert.Equal(t, http.StatusConflict, apperror.Status(err))
	assert.Contains(t, apperror.Message(err), "already registered")
}

func TestLoginAndRefresh(t *testing.T) {
	f := newFixture(t)
	u := register(t, f, "ada@example.com")

	_, err := f.svc.Auth.Login(f.ctx, model.LoginInput{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	_, err = f.svc.Auth.Login(f.ctx, model.LoginInput{Email: "nobody@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	res, err := f.svc.Auth.Login(f.ctx, model.LoginInput{Email: "ADA@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	claims, err := f.svc.Tokens().Parse(res.AccessToken, helper.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserId)

	_, err = f.svc.Auth.Refresh(f.ctx, res.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized, "access tokens cannot refresh")
	refreshed, err := f.svc.Auth.Refresh(f.ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = f.svc.Users.SetActive(f.ctx, actorOf(f.admin), u.ID, false)
	require.NoError(t, err)
	_, err = f.svc.Auth.Login(f.ctx, model.LoginInput{Email: "ada@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestResetPassword(t *testing.T) {
	f := newFixture(t)
	register(t, f, "ada@example.com")

	require.NoError(t, f.svc.Auth.ForgotPassword(f.ctx, "unknown@example.com"))
	assert.Empty(t, f.mail.resets)

	require.NoError(t, f.svc.Auth.ForgotPassword(f.ctx, "ada@example.com"))
	require.Len(t, f.mail.resets, 1)
	link, err := url.Parse(f.mail.resets[0])
	require.NoError(t, err)
	token := link.Query().Get("token")
	require.NotEmpty(t, token)

	in := model.ResetPasswordInput{Token: token, NewPassword: "new password", RepeatPassword: "new password"}
	require.NoError(t, f.svc.Auth.ResetPassword(f.ctx, in))
	err = f.svc.Auth.ResetPassword(f.ctx, in)
	assert.Equal(t, http.StatusConflict, apperror.Status(err))

	_, err = f.svc.Auth.Login(f.ctx, model.LoginInput{Email: "ada@example.com", Password: "new password"})
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	u := register(t, f, "ada@example.com")

	err := f.svc.Auth.ChangePassword(f.ctx, u.ID, model.ChangePasswordInput{CurrentPassword: "nope", NewPassword: "brand new pw"})
	assert.ErrorIs(t, err, apperror.ErrInvalid)

	require.NoError(t, f.svc.Auth.ChangePassword(f.ctx, u.ID, model.ChangePasswordInput{CurrentPassword: "correct horse", NewPassword: "brand new pw"}))
	_, err = f.svc.Auth.Login(f.ctx, model.LoginInput{Email: "ada@example.com", Password: "brand new pw"})
	require.NoError(t, err)
}
