package main

import (
	"net/http"
	_ "newsroom/docs"
	"newsroom/internal/app"
	"newsroom/internal/config"
	"newsroom/internal/logger"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

// @title Newsroom API
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @version 1.0
// @description Документация API Newsroom (статьи, загрузки, регистрация, логин).
// @BasePath /
func main() {
	cfg, err := config.LoadConfig()
	logger.InitLogger()
	defer logger.Log.Sync()

	if err != nil {
		logger.Log.Fatal("Ошибка загрузки конфига", zap.Error(err))
	}

	if warnings, err := cfg.Validate(); err != nil {
		logger.Log.Fatal("Невалидная конфигурация", zap.Error(err))
	} else {
		for _, warn := range warnings {
			logger.Log.Warn("Конфигурация", zap.String("warning", warn))
		}
	}

	router, err := app.InitApp(cfg)
	if err != nil {
		logger.Log.Fatal("Ошибка инициализации приложения", zap.Error(err))
	}

	logger.Log.Info("Сервер запущен", zap.String("port", cfg.Port))

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
	})

	if err := http.ListenAndServe(":"+cfg.Port, corsMiddleware.Handler(router)); err != nil {
		logger.Log.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
