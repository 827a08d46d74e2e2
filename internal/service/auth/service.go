package auth

import (
	"context"
	"errors"

	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/talentindo/hrms-backend-go/internal/domain/auth"
	"github.com/talentindo/hrms-backend-go/internal/domain/user"
	"github.com/talentindo/hrms-backend-go/internal/pkg/jwt"
	"github.com/talentindo/hrms-backend-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.TokenPair, user.User, error)
	Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error

	GoogleRedirectURL(userAgent string) (url string, state string)
	GoogleLogin(ctx context.Context, code string) (auth.TokenPair, user.User, error)
}

type serviceImpl struct {
	userRepo      user.Repository
	jwtService    jwt.Service
	googleService oauth.GoogleService
}

func NewService(userRepo user.Repository, jwtService jwt.Service, googleService oauth.GoogleService) Service {
	return &serviceImpl{
		userRepo:      userRepo,
		jwtService:    jwtService,
		googleService: googleService,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenPair, user.User, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenPair{}, user.User{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenPair{}, user.User{}, auth.ErrInvalidCredentials
		}
		return auth.TokenPair{}, user.User{}, err
	}
	if u.PasswordHash == nil {
		return auth.TokenPair{}, user.User{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenPair{}, user.User{}, auth.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return auth.TokenPair{}, user.User{}, err
	}
	return pair, u, nil
}

func (s *serviceImpl) issueTokens(u user.User) (auth.TokenPair, error) {
	access, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Name, u.Email, u.EmployeeID, u.LegacyID)
	if err != nil {
		return auth.TokenPair{}, err
	}
	refresh, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenPair{}, err
	}
	return auth.TokenPair{
		AccessToken:      access,
		ExpiresAt:        expiresAt,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// Refresh rotates the token pair. The presented refresh token must still be
// valid and not revoked by a logout.
func (s *serviceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenPair{}, auth.ErrRefreshTokenRevoked
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}
	if err := jwxjwt.Validate(token); err != nil {
		return auth.TokenPair{}, auth.ErrTokenExpired
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}
	if claims["type"] != "refresh" {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenPair{}, err
	}

	// One-time use: the old refresh token dies with the rotation.
	s.jwtService.RevokeToken(refreshToken)

	return s.issueTokens(u)
}

func (s *serviceImpl) Logout(_ context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}

// GoogleRedirectURL returns the consent URL and the state it carries. The
// handler stores the state in a cookie so the callback can reject forged
// redirects.
func (s *serviceImpl) GoogleRedirectURL(userAgent string) (string, string) {
	state := s.googleService.GenerateState(userAgent)
	return s.googleService.RedirectURL(state), state
}

// GoogleLogin exchanges the callback code and signs in the matching account.
// Accounts are matched by verified email; unknown emails are rejected rather
// than auto-provisioned.
func (s *serviceImpl) GoogleLogin(ctx context.Context, code string) (auth.TokenPair, user.User, error) {
	token, err := s.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenPair{}, user.User{}, auth.ErrInvalidCredentials
	}

	info, err := s.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenPair{}, user.User{}, auth.ErrInvalidCredentials
	}
	if !info.VerifiedEmail {
		return auth.TokenPair{}, user.User{}, auth.ErrInvalidCredentials
	}

	u, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenPair{}, user.User{}, auth.ErrInvalidCredentials
		}
		return auth.TokenPair{}, user.User{}, err
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return auth.TokenPair{}, user.User{}, err
	}
	return pair, u, nil
}

// HashPassword is used by account provisioning.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
