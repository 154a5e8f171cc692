package repository

import (
	"context"
	"newsroom/internal/logger"
	"newsroom/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	logger.Log.Info("Создание пользователя (repo)", zap.String("username", user.Username), zap.String("email", user.Email))
	query := `
	INSERT INTO users (username, first_name, last_name, display_name, email, provider, profile_image_url, password_hash, role, roles)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, created`
	return r.db.QueryRow(ctx, query,
		user.Username,
		user.FirstName,
		user.LastName,
		user.DisplayName,
		user.Email,
		user.Provider,
		user.ProfileImageURL,
		user.PasswordHash,
		user.Role,
		user.Roles,
	).Scan(&user.ID, &user.Created)
}

func (r *UserRepository) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	logger.Log.Debug("Проверка username на уникальность (repo)", zap.String("username", username))
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, username).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки username (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	logger.Log.Debug("Проверка email на уникальность (repo)", zap.String("email", email))
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки email (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
	SELECT id, username, first_name, last_name, display_name, email, provider, profile_image_url, password_hash, role, roles, created, updated
	FROM users WHERE username = $1`
	var u models.User
	err := r.db.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.DisplayName,
		&u.Email, &u.Provider, &u.ProfileImageURL, &u.PasswordHash,
		&u.Role, &u.Roles, &u.Created, &u.Updated,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	query := `
	SELECT id, username, first_name, last_name, display_name, email, provider, profile_image_url, password_hash, role, roles, created, updated
	FROM users WHERE id = $1`
	var u models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.DisplayName,
		&u.Email, &u.Provider, &u.ProfileImageURL, &u.PasswordHash,
		&u.Role, &u.Roles, &u.Created, &u.Updated,
	)
	if err != nil {
		logger.Log.Error("Ошибка получения пользователя по ID (repo)", zap.Int("user_id", id), zap.Error(err))
		return nil, err
	}
	return &u, nil
}
