package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/cms-report-api/internal/models"
	appErrors "github.com/noah-isme/cms-report-api/pkg/errors"
)

const tokenIssuer = "cms-report-api"

// TokenService converts HS256 bearer tokens to sessions and back. Account
// management lives outside this service; it only trusts the shared secret.
type TokenService struct {
	secret    []byte
	validator *validator.Validate
	now       func() time.Time
}

// NewTokenService constructs the token service.
func NewTokenService(secret string, validate *validator.Validate) *TokenService {
	if validate == nil {
		validate = validator.New()
	}
	return &TokenService{secret: []byte(secret), validator: validate, now: time.Now}
}

// ParseSession validates a bearer token and returns the session it carries.
func (s *TokenService) ParseSession(tokenString string) (models.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return models.Session{}, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return models.Session{}, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	session := claims.Session()
	if err := s.validator.Struct(session); err != nil {
		return models.Session{}, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token claims")
	}
	return session, nil
}

// IssueToken signs a token for session valid for ttl.
func (s *TokenService) IssueToken(session models.Session, ttl time.Duration) (string, time.Time, error) {
	if err := s.validator.Struct(session); err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session")
	}
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(ttl)
	claims := &models.SessionClaims{
		UserID:   session.UserID,
		Username: session.Username,
		Role:     session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(session.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
