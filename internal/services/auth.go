package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"newsroom/internal/logger"
	"newsroom/internal/models"
	"newsroom/internal/utils"

	"go.uber.org/zap"
)

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

type UserRepo interface {
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

func (s *AuthService) RegisterUser(ctx context.Context, input *models.User, plainPassword string) error {
	logger.Log.Info("Регистрация пользователя (service)", zap.String("username", input.Username), zap.String("email", input.Email))
	if exists, err := s.repo.IsUsernameTaken(ctx, input.Username); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки username", zap.Error(err))
		}
		return errors.New("имя пользователя уже занято")
	}
	if exists, err := s.repo.IsEmailTaken(ctx, input.Email); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки email", zap.Error(err))
		}
		return errors.New("адрес электронной почты уже зарегистрирован")
	}

	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля", zap.Error(err))
		return err
	}

	input.PasswordHash = hashed
	input.Role = "user"
	input.Roles = []string{"user"}
	if input.Provider == "" {
		input.Provider = "local"
	}
	if input.DisplayName == "" {
		input.DisplayName = strings.TrimSpace(input.FirstName + " " + input.LastName)
	}

	if err := s.repo.CreateUser(ctx, input); err != nil {
		logger.Log.Error("Ошибка создания пользователя", zap.Error(err))
		return err
	}
	logger.Log.Info("Пользователь зарегистрирован (service)", zap.String("username", input.Username))
	return nil
}

func (s *AuthService) LoginUser(
	ctx context.Context,
	username, password, jwtSecret string,
	accessTTL time.Duration,
) (string, *models.User, error) {
	logger.Log.Info("Попытка входа (service)", zap.String("username", username))
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Warn("Пользователь не найден (service)", zap.String("username", username), zap.Error(err))
		return "", nil, errors.New("пользователь не найден")
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Неверный пароль (service)", zap.String("username", username))
		return "", nil, errors.New("неверный пароль")
	}

	accessToken, err := utils.GenerateToken(jwtSecret, user.ID, user.Username, user.Role, accessTTL)
	if err != nil {
		logger.Log.Error("Ошибка генерации access-токена", zap.Error(err))
		return "", nil, err
	}

	logger.Log.Info("Вход выполнен (service)", zap.String("username", username))
	return accessToken, user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}
