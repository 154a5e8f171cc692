package handlers

import (
	"encoding/json"
	"html"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"newsroom/internal/logger"
	"newsroom/internal/models"
	"newsroom/internal/reqctx"
	"newsroom/internal/services"

	"go.uber.org/zap"
)

type PageHandler struct {
	authService *services.AuthService
	templateDir string
}

func NewPageHandler(authService *services.AuthService, templateDir string) *PageHandler {
	return &PageHandler{
		authService: authService,
		templateDir: templateDir,
	}
}

// Index отрисовывает оболочку приложения. Авторизованный пользователь получает
// экранированную проекцию своего профиля, аноним — nil.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	var safeUser *models.SafeUser

	if userID, ok := reqctx.GetUserID(r.Context()); ok {
		user, err := h.authService.GetUserByID(r.Context(), userID)
		if err != nil {
			// Токен валиден, а пользователя уже нет — отрисуем как анонима
			logger.WithCtx(r.Context()).Warn("Index: пользователь из токена не найден", zap.Int("user_id", userID), zap.Error(err))
		} else {
			safeUser = SanitizeUser(user)
		}
	}

	h.render(w, r, "index.html", http.StatusOK, map[string]any{
		"User": safeUser,
	})
}

// ServerError всегда отвечает 500 с фиксированным сообщением.
func (h *PageHandler) ServerError(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "500.html", http.StatusInternalServerError, map[string]any{
		"Error": "Oops! Something went wrong...",
	})
}

// NotFound отвечает 404 с согласованием содержимого по заголовку Accept.
// Ветка default обязательна: нераспознанный Accept получает plain text,
// а не пустой ответ.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	switch negotiateAccept(r.Header.Get("Accept")) {
	case acceptJSON:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Path not found"})
	case acceptHTML:
		h.render(w, r, "404.html", http.StatusNotFound, map[string]any{
			"URL": r.URL.RequestURI(),
		})
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Path not found"))
	}
}

// SanitizeUser экранирует все свободные текстовые поля профиля; created и
// roles — структурированные, отдаются без изменений.
func SanitizeUser(u *models.User) *models.SafeUser {
	return &models.SafeUser{
		DisplayName:     html.EscapeString(u.DisplayName),
		Provider:        html.EscapeString(u.Provider),
		Username:        html.EscapeString(u.Username),
		Created:         u.Created.String(),
		Roles:           u.Roles,
		ProfileImageURL: html.EscapeString(u.ProfileImageURL),
		Email:           html.EscapeString(u.Email),
		LastName:        html.EscapeString(u.LastName),
		FirstName:       html.EscapeString(u.FirstName),
	}
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, name string, status int, data map[string]any) {
	tmpl, err := template.ParseFiles(filepath.Join(h.templateDir, name))
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка шаблона", zap.String("template", name), zap.Error(err))
		http.Error(w, "Ошибка шаблона", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка отрисовки шаблона", zap.String("template", name), zap.Error(err))
	}
}

type acceptKind int

const (
	acceptHTML acceptKind = iota
	acceptJSON
	acceptOther
)

// negotiateAccept выбирает представление по первому знакомому типу в Accept.
// Пустой заголовок и */* трактуются как HTML.
func negotiateAccept(header string) acceptKind {
	if strings.TrimSpace(header) == "" {
		return acceptHTML
	}
	for _, part := range strings.Split(header, ",") {
		mediaType := strings.TrimSpace(part)
		if i := strings.IndexByte(mediaType, ';'); i >= 0 {
			mediaType = strings.TrimSpace(mediaType[:i])
		}
		switch strings.ToLower(mediaType) {
		case "text/html", "application/xhtml+xml", "*/*":
			return acceptHTML
		case "application/json", "text/json":
			return acceptJSON
		}
	}
	return acceptOther
}
