package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cms-report-api/internal/models"
	appErrors "github.com/noah-isme/cms-report-api/pkg/errors"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", nil)

	token, expiresAt, err := svc.IssueToken(lecturerSession, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	session, err := svc.ParseSession(token)
	require.NoError(t, err)
	assert.Equal(t, lecturerSession, session)
}

func TestTokenServiceRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenService("secret", nil).IssueToken(officeSession, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenService("other", nil).ParseSession(token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestTokenServiceRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("secret", nil)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.IssueToken(officeSession, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenService("secret", nil).ParseSession(token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestTokenServiceRejectsUnknownRole(t *testing.T) {
	claims := &models.SessionClaims{UserID: 3, Role: "visitor", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenService("secret", nil).ParseSession(token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestTokenServiceIssueRequiresValidSession(t *testing.T) {
	_, _, err := NewTokenService("secret", nil).IssueToken(models.Session{Role: models.RoleOffice}, time.Hour)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
