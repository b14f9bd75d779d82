package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"hamperhouse/pkg/logger"
	"hamperhouse/storefront-service/internal/app/storefront/entity"
	"hamperhouse/storefront-service/internal/app/storefront/util"
)

// AuthService - вход единственного администратора витрины
type AuthService struct {
	username     string
	passwordHash string
	jwtManager   *util.JWTManager
}

func NewAuthService(username, passwordHash string, jwtManager *util.JWTManager) *AuthService {
	return &AuthService{
		username:     username,
		passwordHash: passwordHash,
		jwtManager:   jwtManager,
	}
}

// Login проверяет пароль по bcrypt хэшу из конфигурации и выдает JWT
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	passOK := util.CheckPassword(req.Password, s.passwordHash)
	if !userOK || !passOK {
		logger.Warn().Str("username", req.Username).Msg("Admin login rejected")
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(s.username, util.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &entity.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtManager.GetTokenDuration().Seconds()),
	}, nil
}

func (s *AuthService) ValidateToken(ctx context.Context, token string) (*util.JWTClaims, error) {
	return s.jwtManager.ValidateToken(token)
}
