package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"newsroom/internal/config"
	"newsroom/internal/logger"
	"newsroom/internal/models"
	"newsroom/internal/reqctx"
	"newsroom/internal/services"
	helpers "newsroom/internal/utils/helpers"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "Данные регистрации"
// @Success 201 {string} string "Пользователь успешно зарегистрирован"
// @Failure 400 {string} string "Ошибка валидации"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("Ошибка декодирования JSON в Register", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	logger.Log.Info("Регистрация пользователя", zap.String("username", req.Username), zap.String("email", req.Email))

	if req.Username == "" || req.Password == "" {
		helpers.Error(w, http.StatusBadRequest, "Имя пользователя и пароль обязательны")
		return
	}

	user := &models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	if err := h.authService.RegisterUser(r.Context(), user, req.Password); err != nil {
		logger.Log.Warn("Ошибка регистрации", zap.String("username", req.Username), zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	helpers.JSON(w, http.StatusCreated, "Пользователь успешно зарегистрирован")
}

// Login godoc
// @Summary Вход пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Данные входа"
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "Неверные учётные данные"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("Ошибка декодирования JSON в Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Ошибка конфигурации")
		return
	}

	accessTTL, err := time.ParseDuration(cfg.AccessTokenTTL)
	if err != nil {
		accessTTL = 15 * time.Minute
	}

	token, user, err := h.authService.LoginUser(r.Context(), req.Username, req.Password, cfg.JWTSecret, accessTTL)
	if err != nil {
		logger.Log.Warn("Неудачная попытка входа", zap.String("username", req.Username), zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, "Неверные учётные данные")
		return
	}

	helpers.JSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	})
}

// Profile godoc
// @Summary Профиль текущего пользователя
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {string} string "Не авторизован"
// @Router /api/auth/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Не авторизован")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		logger.Log.Warn("Пользователь не найден", zap.Int("user_id", userID), zap.Error(err))
		helpers.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	helpers.JSON(w, http.StatusOK, user)
}
