package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"newsroom/internal/logger"
	"newsroom/internal/models"
	"newsroom/internal/repository"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type ArticleService interface {
	Create(ctx context.Context, authorID *int64, req models.ArticleRequest) (*models.Article, error)
	GetAll(ctx context.Context, limit, offset int) ([]*models.Article, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Update(ctx context.Context, id int64, req models.ArticleRequest) (*models.Article, error)
	Delete(ctx context.Context, id int64) error
}

type articleService struct {
	repo   repository.ArticleRepo
	policy *bluemonday.Policy
}

func NewArticleService(repo repository.ArticleRepo) ArticleService {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt").OnElements("img")
	return &articleService{repo: repo, policy: p}
}

func (s *articleService) Create(ctx context.Context, authorID *int64, req models.ArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание статьи",
		zap.Any("author_id", authorID),
		zap.String("title", strings.TrimSpace(req.Title)),
	)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		err := errors.New("заголовок не может быть пустым")
		log.Warn("Валидация не пройдена: заголовок", zap.Error(err))
		return nil, err
	}
	if l := utf8.RuneCountInString(title); l > 255 {
		err := errors.New("длина заголовка не должна превышать 255 символов")
		log.Warn("Валидация не пройдена: заголовок", zap.Int("runes", l), zap.Error(err))
		return nil, err
	}

	a := &models.Article{
		AuthorID: authorID,
		Title:    title,
		Content:  s.policy.Sanitize(req.Content),
		ImageURL: strings.TrimSpace(req.ImageURL),
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		log.Error("Ошибка создания статьи (repo)", zap.Error(err))
		return nil, err
	}

	log.Info("Статья создана", zap.Int64("id", created.ID))
	return created, nil
}

func (s *articleService) GetAll(ctx context.Context, limit, offset int) ([]*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение списка статей", zap.Int("limit", limit), zap.Int("offset", offset))

	list, err := s.repo.GetAll(ctx, limit, offset)
	if err != nil {
		log.Error("Ошибка получения списка статей (repo)", zap.Error(err))
		return nil, err
	}

	log.Debug("Список статей получен", zap.Int("count", len(list)))
	return list, nil
}

func (s *articleService) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение статьи по ID", zap.Int64("id", id))

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("Статья не найдена (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *articleService) Update(ctx context.Context, id int64, req models.ArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление статьи", zap.Int64("id", id), zap.String("title", strings.TrimSpace(req.Title)))

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("Статья для обновления не найдена (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		err := errors.New("заголовок не может быть пустым")
		log.Warn("Валидация не пройдена: заголовок", zap.Error(err))
		return nil, err
	}

	a.Title = title
	a.Content = s.policy.Sanitize(req.Content)
	a.ImageURL = strings.TrimSpace(req.ImageURL)

	if err := s.repo.Update(ctx, a); err != nil {
		log.Error("Ошибка обновления статьи (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	log.Info("Статья обновлена", zap.Int64("id", id))
	return a, nil
}

func (s *articleService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("Удаление статьи", zap.Int64("id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("Ошибка удаления статьи (repo)", zap.Int64("id", id), zap.Error(err))
		return err
	}

	log.Info("Статья удалена", zap.Int64("id", id))
	return nil
}
