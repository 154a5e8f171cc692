package app

import (
	"newsroom/internal/config"
	"newsroom/internal/db"
	"newsroom/internal/handlers"
	"newsroom/internal/repository"
	"newsroom/internal/routes"
	"newsroom/internal/services"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Репозитории
	userRepo := repository.NewUserRepository(conn)
	articleRepo := repository.NewArticleRepo(conn)

	// Сервисы
	authService := services.NewAuthService(userRepo)
	articleSvc := services.NewArticleService(articleRepo)
	uploadSvc := services.NewUploadService(cfg.UploadDir, cfg.PublicPrefix)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService)
	articleH := handlers.NewArticleHandler(articleSvc)
	uploadH := handlers.NewUploadHandler(uploadSvc, cfg.UploadMaxMB)
	pageH := handlers.NewPageHandler(authService, "web/templates")

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, authHandler, articleH, uploadH, pageH)

	return router, nil
}
