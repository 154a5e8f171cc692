package routes

import (
	"net/http"

	"newsroom/internal/handlers"
	"newsroom/internal/middleware"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// InitRoutes регистрирует маршруты. Порядок регистрации — часть контракта:
// catch-all index обязан идти последним, иначе он затенит 404 для
// несуществующих api-путей.
func InitRoutes(
	router *mux.Router,
	authHandler *handlers.AuthHandler,
	articleHandler *handlers.ArticleHandler,
	uploadHandler *handlers.UploadHandler,
	pageHandler *handlers.PageHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging)
	router.Use(middleware.Recoverer)

	// Страница серверной ошибки
	router.HandleFunc("/server-error", pageHandler.ServerError).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	api.HandleFunc("/articles", articleHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/articles/{id:[0-9]+}", articleHandler.GetByID).Methods(http.MethodGet)

	// --- Защищённые JWT ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuth)

	protected.HandleFunc("/auth/profile", authHandler.Profile).Methods(http.MethodGet)

	protected.HandleFunc("/articles", articleHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/articles/{id:[0-9]+}", articleHandler.Update).Methods(http.MethodPut, http.MethodPatch)
	protected.HandleFunc("/articles/{id:[0-9]+}", articleHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/uploads", uploadHandler.Upload).Methods(http.MethodPost)

	// Раздача загруженных файлов
	router.PathPrefix("/public/").Handler(
		http.StripPrefix("/public/", http.FileServer(http.Dir("public"))),
	).Methods(http.MethodGet)

	// Swagger — до catch-all, иначе его перехватит index
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// 404 для всех непойманных api/modules/lib путей
	router.HandleFunc("/{url:api|modules|lib}/{rest:.*}", pageHandler.NotFound).Methods(http.MethodGet)

	// Оболочка приложения — последним, дальше роутинг на клиенте
	router.PathPrefix("/").Handler(
		middleware.OptionalAuth(http.HandlerFunc(pageHandler.Index)),
	).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(pageHandler.NotFound)
}
