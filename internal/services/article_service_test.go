package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"newsroom/internal/models"
)

// Мок-репозиторий (заглушка)
type mockArticleRepo struct {
	articles map[int64]*models.Article
	nextID   int64
}

func newMockArticleRepo() *mockArticleRepo {
	return &mockArticleRepo{articles: make(map[int64]*models.Article), nextID: 1}
}

func (m *mockArticleRepo) Create(_ context.Context, a *models.Article) (*models.Article, error) {
	stored := *a
	stored.ID = m.nextID
	stored.Created = time.Now()
	stored.Updated = stored.Created
	m.articles[stored.ID] = &stored
	m.nextID++
	return &stored, nil
}

func (m *mockArticleRepo) GetAll(_ context.Context, limit, offset int) ([]*models.Article, error) {
	var list []*models.Article
	for _, a := range m.articles {
		list = append(list, a)
	}
	return list, nil
}

func (m *mockArticleRepo) GetByID(_ context.Context, id int64) (*models.Article, error) {
	a, ok := m.articles[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return a, nil
}

func (m *mockArticleRepo) Update(_ context.Context, a *models.Article) error {
	if _, ok := m.articles[a.ID]; !ok {
		return errors.New("not found")
	}
	m.articles[a.ID] = a
	return nil
}

func (m *mockArticleRepo) Delete(_ context.Context, id int64) error {
	delete(m.articles, id)
	return nil
}

func (m *mockArticleRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.articles[id]
	return ok, nil
}

func TestCreateArticle(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)

	created, err := svc.Create(context.Background(), nil, models.ArticleRequest{
		Title:   "  Первая статья  ",
		Content: "<p>Текст</p>",
	})
	if err != nil {
		t.Fatalf("ошибка создания статьи: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("статье не присвоен ID")
	}
	if created.Title != "Первая статья" {
		t.Errorf("заголовок не нормализован: %q", created.Title)
	}
}

func TestCreateArticle_EmptyTitle(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)

	_, err := svc.Create(context.Background(), nil, models.ArticleRequest{
		Title:   "   ",
		Content: "<p>Текст</p>",
	})
	if err == nil {
		t.Fatal("ожидалась ошибка валидации пустого заголовка")
	}
	if len(repo.articles) != 0 {
		t.Fatal("невалидная статья не должна сохраняться")
	}
}

func TestCreateArticle_SanitizesContent(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)

	created, err := svc.Create(context.Background(), nil, models.ArticleRequest{
		Title:   "XSS",
		Content: `<p>ок</p><script>alert(1)</script><img src="/a.png" alt="a">`,
	})
	if err != nil {
		t.Fatalf("ошибка создания статьи: %v", err)
	}
	if strings.Contains(created.Content, "<script>") {
		t.Errorf("script должен вырезаться: %q", created.Content)
	}
	if !strings.Contains(created.Content, "<img") {
		t.Errorf("img должен сохраняться: %q", created.Content)
	}
}

func TestUpdateArticle(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)

	created, err := svc.Create(context.Background(), nil, models.ArticleRequest{Title: "До", Content: "x"})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(context.Background(), created.ID, models.ArticleRequest{
		Title:    "После",
		Content:  "y",
		ImageURL: "/public/uploads/YWxpY2U=/1-a.png",
	})
	if err != nil {
		t.Fatalf("ошибка обновления: %v", err)
	}
	if updated.Title != "После" || updated.ImageURL == "" {
		t.Errorf("обновление не применилось: %+v", updated)
	}
}

func TestDeleteArticle(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)

	created, err := svc.Create(context.Background(), nil, models.ArticleRequest{Title: "Удалить", Content: "x"})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("ошибка удаления: %v", err)
	}
	if ok, _ := repo.Exists(context.Background(), created.ID); ok {
		t.Fatal("статья не удалена")
	}
}
