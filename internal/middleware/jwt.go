package middleware

import (
	"context"
	"net/http"
	"strings"

	"newsroom/internal/config"
	"newsroom/internal/logger"
	"newsroom/internal/reqctx"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// JWTAuth требует валидный access-токен; identity кладётся в контекст.
func JWTAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		ctx, ok := identityFromRequest(r)
		if !ok {
			logger.WithCtx(r.Context()).Warn("JWTAuth: отсутствует или неверный access token")
			http.Error(w, "Неверный или просроченный токен", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth прикладывает identity, если токен есть и валиден; иначе запрос
// продолжается анонимно. Используется на отрисовке index: страница доступна
// всем, но авторизованный пользователь получает свой профиль.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ctx, ok := identityFromRequest(r); ok {
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func identityFromRequest(r *http.Request) (context.Context, bool) {
	cfg, _ := config.LoadConfig()
	authHeader := r.Header.Get("Authorization")

	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		logger.WithCtx(r.Context()).Warn("JWT: неверный или просроченный токен", zap.Error(err))
		return nil, false
	}

	userID, ok1 := claims["user_id"].(float64)
	username, ok2 := claims["username"].(string)
	role, ok3 := claims["role"].(string)
	if !ok1 || !ok2 || !ok3 {
		logger.WithCtx(r.Context()).Warn("JWT: недопустимый payload", zap.Any("claims", claims))
		return nil, false
	}

	ctx := reqctx.WithUserID(r.Context(), int(userID))
	ctx = reqctx.WithUsername(ctx, username)
	ctx = reqctx.WithRole(ctx, role)
	return ctx, true
}
