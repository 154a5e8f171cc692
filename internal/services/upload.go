package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"

	"newsroom/internal/logger"
	"newsroom/internal/models"

	"go.uber.org/zap"
)

var (
	// ErrNotImage — файл отклонён фильтром ещё до записи в хранилище.
	ErrNotImage = errors.New("разрешены только изображения (gif, jpeg, png)")

	// ErrUploadRootConflict — по пути каталога пользователя лежит не каталог.
	// Это ошибка окружения, а не запроса: наверх уходит 500, не 400.
	ErrUploadRootConflict = errors.New("путь каталога загрузок занят файлом")
)

var imageMimeRE = regexp.MustCompile(`^image/(gif|jpe?g|png)$`)

// UploadService переносит принятые файлы в постоянное хранилище.
// Каталог назначения: <root>/<base64(username)>/, имя: <unixMillis>-<originalFilename>.
// Пространства разных пользователей не пересекаются, блокировки не нужны.
type UploadService struct {
	root         string
	publicPrefix string
	now          func() time.Time
}

func NewUploadService(root, publicPrefix string) *UploadService {
	return &UploadService{
		root:         root,
		publicPrefix: publicPrefix,
		now:          time.Now,
	}
}

// Filter — предикат «только изображения». Вызывается до того, как хоть один
// байт попадёт в дерево назначения.
func (s *UploadService) Filter(mimeType string) error {
	if !imageMimeRE.MatchString(mimeType) {
		return ErrNotImage
	}
	return nil
}

// Store переносит временный файл в каталог пользователя и возвращает
// постоянный путь вместе с публичным URL.
func (s *UploadService) Store(ctx context.Context, username string, file *models.UploadedFile) (*models.StoredFile, error) {
	log := logger.WithCtx(ctx)

	userEncode := base64.StdEncoding.EncodeToString([]byte(username))
	destDir := filepath.Join(s.root, userEncode)
	newFilename := fmt.Sprintf("%d-%s", s.now().UnixMilli(), filepath.Base(file.OriginalName))

	stat, err := os.Stat(destDir)
	switch {
	case err != nil && os.IsNotExist(err):
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			log.Error("Не удалось создать каталог пользователя", zap.String("dir", destDir), zap.Error(err))
			return nil, err
		}
	case err != nil:
		log.Error("Ошибка stat каталога пользователя", zap.String("dir", destDir), zap.Error(err))
		return nil, err
	case !stat.IsDir():
		log.Error("По пути каталога пользователя лежит не каталог", zap.String("dir", destDir))
		return nil, ErrUploadRootConflict
	}

	destFile := filepath.Join(destDir, newFilename)
	if err := os.Rename(file.TempPath, destFile); err != nil {
		log.Error("Не удалось перенести файл в хранилище",
			zap.String("from", file.TempPath),
			zap.String("to", destFile),
			zap.Error(err),
		)
		return nil, err
	}

	destURL := path.Join(s.publicPrefix, userEncode, newFilename)

	log.Info("Файл сохранён",
		zap.String("username", username),
		zap.String("file", destFile),
		zap.Int64("size", file.Size),
	)

	return &models.StoredFile{Path: destFile, PublicURL: destURL}, nil
}
