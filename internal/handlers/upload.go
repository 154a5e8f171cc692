package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"newsroom/internal/logger"
	"newsroom/internal/models"
	"newsroom/internal/reqctx"
	"newsroom/internal/services"

	"go.uber.org/zap"
)

type UploadHandler struct {
	svc      *services.UploadService
	maxBytes int64
}

func NewUploadHandler(svc *services.UploadService, maxMB int) *UploadHandler {
	return &UploadHandler{
		svc:      svc,
		maxBytes: int64(maxMB) << 20,
	}
}

// Upload godoc
// @Summary Загрузка изображения в каталог пользователя
// @Tags uploads
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param uploadedFile formData file true "Файл изображения"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} map[string]string
// @Router /api/uploads [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	username, ok := reqctx.GetUsername(r.Context())
	if !ok {
		log.Warn("Загрузка без авторизации")
		writeMessage(w, http.StatusUnauthorized, "Требуется авторизация")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		log.Warn("Ошибка разбора multipart-формы", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, "Error occurred while uploading file")
		return
	}

	file, header, err := r.FormFile("uploadedFile")
	if err != nil {
		log.Warn("Поле uploadedFile не найдено", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, "Error occurred while uploading file")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	// Фильтр отрабатывает до того, как байты окажутся в дереве загрузок
	if err := h.svc.Filter(mimeType); err != nil {
		log.Warn("Файл отклонён фильтром", zap.String("filename", header.Filename), zap.String("mime", mimeType))
		writeMessage(w, http.StatusBadRequest, "Error occurred while uploading file")
		return
	}

	tmp, err := os.CreateTemp("", "newsroom-upload-*")
	if err != nil {
		log.Error("Не удалось создать временный файл", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Ошибка сохранения файла")
		return
	}
	tmpPath := tmp.Name()
	// После успешного rename удалять уже нечего — Remove станет no-op
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, file)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Error("Не удалось записать временный файл", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Ошибка сохранения файла")
		return
	}

	uploaded := &models.UploadedFile{
		FieldName:    "uploadedFile",
		OriginalName: header.Filename,
		TempPath:     tmpPath,
		Size:         size,
		MimeType:     mimeType,
	}

	stored, err := h.svc.Store(r.Context(), username, uploaded)
	if err != nil {
		// Ошибки файловой системы — это 500, а не 400: клиент прислал
		// корректный запрос, сломано окружение
		if errors.Is(err, services.ErrUploadRootConflict) {
			log.Error("Конфликт каталога загрузок", zap.Error(err))
		}
		writeMessage(w, http.StatusInternalServerError, "Ошибка сохранения файла")
		return
	}

	filesJSON, _ := json.Marshal(map[string]*models.UploadedFile{"uploadedFile": uploaded})

	resp := models.UploadResponse{
		UploadedURL:  stored.PublicURL,
		UploadedFile: stored.Path,
		File:         string(filesJSON),
		Message:      "File is uploaded to " + stored.PublicURL,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// writeMessage — ответ вида {"message": ...}; клиентский контроллер читает
// именно это поле.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
