package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"newsroom/internal/logger"
	"newsroom/internal/models"
	"newsroom/internal/reqctx"
	"newsroom/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ArticleHandler struct {
	svc services.ArticleService
}

func NewArticleHandler(svc services.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// Create
// @Summary      Создать статью
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body   models.ArticleRequest  true  "Данные статьи"
// @Success      201   {object}  models.Article
// @Failure      400   {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Error("ошибка декодирования JSON при создании статьи", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	authorID := authorIDFromCtx(r)
	article, err := h.svc.Create(r.Context(), authorID, req)
	if err != nil {
		logger.WithCtx(r.Context()).Error("ошибка создания статьи", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.WithCtx(r.Context()).Info("статья успешно создана",
		zap.Int64("id", article.ID),
		zap.String("title", article.Title),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(article)
}

// GetAll
// @Summary      Список статей
// @Tags         articles
// @Produce      json
// @Param        limit   query  int  false  "Лимит (по умолчанию 20)"
// @Param        offset  query  int  false  "Смещение"
// @Success      200  {array}  models.Article
// @Router       /api/articles [get]
func (h *ArticleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	list, err := h.svc.GetAll(r.Context(), limit, offset)
	if err != nil {
		logger.WithCtx(r.Context()).Error("ошибка получения списка статей", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Ошибка получения статей")
		return
	}
	if list == nil {
		list = []*models.Article{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GetByID
// @Summary      Статья по ID
// @Tags         articles
// @Produce      json
// @Param        id   path  int  true  "ID статьи"
// @Success      200  {object}  models.Article
// @Failure      404  {object}  map[string]string
// @Router       /api/articles/{id} [get]
func (h *ArticleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	article, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Статья не найдена")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(article)
}

// Update
// @Summary      Обновить статью
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID статьи"
// @Param        body  body  models.ArticleRequest  true  "Данные статьи"
// @Success      200   {object}  models.Article
// @Failure      400   {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/articles/{id} [put]
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Error("ошибка декодирования JSON при обновлении статьи", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	article, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		logger.WithCtx(r.Context()).Error("ошибка обновления статьи", zap.Int64("id", id), zap.Error(err))
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(article)
}

// Delete
// @Summary      Удалить статью
// @Tags         articles
// @Param        id  path  int  true  "ID статьи"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		logger.WithCtx(r.Context()).Error("ошибка удаления статьи", zap.Int64("id", id), zap.Error(err))
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- helpers ---

func authorIDFromCtx(r *http.Request) *int64 {
	if userID, ok := reqctx.GetUserID(r.Context()); ok {
		id := int64(userID)
		return &id
	}
	return nil
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Невалидный ID")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
