package services

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/models"
)

func seedManager(t *testing.T, f *fixture) *models.Manager {
	t.Helper()
	m, err := f.identity.RegisterManager(context.Background(), &models.RegisterManagerRequest{
		Fullname: "Sarah Manager", Age: models.NewFlexInt(40), Gender: models.GenderFemale,
		NIN: "CM0001", Email: "sarah@example.com", Phone: "0711000000", Password: "pw123456",
	})
	require.NoError(t, err)
	return m
}

func TestLoginBabysitter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seedBabysitter(t, "grace@example.com")

	res, err := f.auth.LoginBabysitter(ctx, &models.LoginRequest{Email: "grace@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleBabysitter, res.Role)

	claims := f.auth.ClaimsFromToken(res.Token)
	require.NotNil(t, claims)
	assert.Equal(t, b.ID, claims.UserID)

	_, err = f.auth.LoginBabysitter(ctx, &models.LoginRequest{Email: "grace@example.com", Password: "wrong"})
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.Equal(t, "Password is incorrect", apperr.MessageOf(err))

	_, err = f.auth.LoginBabysitter(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.Equal(t, "Email is not registered", apperr.MessageOf(err))

	_, err = f.auth.LoginBabysitter(ctx, &models.LoginRequest{Email: "grace@example.com"})
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	seedManager(t, f)

	res, err := f.auth.LoginManager(context.Background(), &models.LoginRequest{Email: "sarah@example.com", Password: "pw123456"})
	require.NoError(t, err)
	claims := f.auth.ClaimsFromToken(res.Token)
	require.NotNil(t, claims)

	require.NoError(t, f.auth.Logout(context.Background(), claims))
	ttl, ok := f.revoker.revoked[claims.ID]
	require.True(t, ok)
	assert.InDelta(t, (720 * time.Hour).Seconds(), ttl.Seconds(), 60)

	assert.NoError(t, f.auth.Logout(context.Background(), nil))
	assert.Nil(t, f.auth.ClaimsFromToken("garbage"))
}

func TestManagerTOTP(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := seedManager(t, f)

	setup, err := f.auth.SetupTOTP(ctx, m.ID)
	require.NoError(t, err)
	assert.Contains(t, setup.URL, "otpauth://")

	assert.Equal(t, "Invalid TOTP code", apperr.MessageOf(f.auth.EnableTOTP(ctx, m.ID, "000000x")))

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, f.auth.EnableTOTP(ctx, m.ID, code))

	login := &models.LoginRequest{Email: "sarah@example.com", Password: "pw123456"}
	_, err = f.auth.LoginManager(ctx, login)
	assert.Equal(t, "TOTP code is required", apperr.MessageOf(err))

	login.TOTPCode = "123"
	_, err = f.auth.LoginManager(ctx, login)
	assert.Equal(t, "Invalid TOTP code", apperr.MessageOf(err))

	login.TOTPCode = code
	res, err := f.auth.LoginManager(ctx, login)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	require.NoError(t, f.auth.DisableTOTP(ctx, m.ID, code))
	stored, err := f.db.managerByID(m.ID)
	require.NoError(t, err)
	assert.False(t, stored.TOTPEnabled)
	assert.Empty(t, stored.TOTPSecret)
}
