package client

import (
	"context"
	"errors"
	"fmt"

	"newsroom/internal/logger"
	"newsroom/internal/models"

	"go.uber.org/zap"
)

// ValidationSignal — сигнал вью «покажи ошибки валидации формы».
const ValidationSignal = "show-errors-check-validity"

// ArticleForm — вью-модель формы статьи. Поля формы биндятся напрямую,
// результаты и ошибки операций оседают в состоянии — вью наблюдает за ним.
// Повторов нет: одна попытка на действие пользователя.
type ArticleForm struct {
	Title    string
	Content  string
	ImageURL string

	// Error — текст последней ошибки удалённой операции
	Error string

	// Article — текущая статья (контекст detail), Articles — список (контекст list)
	Article  *models.Article
	Articles []*models.Article

	// UploadedFile/RejectedFile + ErrorMsg — состояние загрузки изображения
	UploadedFile *FileUpload
	RejectedFile *FileUpload
	ErrorMsg     string

	resource  *ArticleResource
	uploader  *Uploader
	navigate  func(path string)
	broadcast func(signal, form string)
}

func NewArticleForm(resource *ArticleResource, uploader *Uploader, navigate func(string), broadcast func(string, string)) *ArticleForm {
	if navigate == nil {
		navigate = func(string) {}
	}
	if broadcast == nil {
		broadcast = func(string, string) {}
	}
	return &ArticleForm{
		resource:  resource,
		uploader:  uploader,
		navigate:  navigate,
		broadcast: broadcast,
	}
}

// Create отправляет новую статью. Невалидная форма — только сигнал вью,
// никаких сетевых вызовов. Успех — переход на detail и очистка формы.
func (f *ArticleForm) Create(ctx context.Context, isValid bool) {
	f.Error = ""

	if !isValid {
		f.broadcast(ValidationSignal, "articleForm")
		return
	}

	article, err := f.resource.Save(ctx, models.ArticleRequest{
		Title:    f.Title,
		Content:  f.Content,
		ImageURL: f.ImageURL,
	})
	if err != nil {
		f.Error = err.Error()
		return
	}

	f.navigate(fmt.Sprintf("articles/%d", article.ID))

	f.Title = ""
	f.Content = ""
	f.ImageURL = ""
}

// Update сохраняет текущую статью; актуальный URL изображения копируется в
// статью перед отправкой.
func (f *ArticleForm) Update(ctx context.Context, isValid bool) {
	f.Error = ""

	if !isValid {
		f.broadcast(ValidationSignal, "articleForm")
		return
	}

	article := f.Article
	article.ImageURL = f.ImageURL

	updated, err := f.resource.Update(ctx, article.ID, models.ArticleRequest{
		Title:    article.Title,
		Content:  article.Content,
		ImageURL: article.ImageURL,
	})
	if err != nil {
		f.Error = err.Error()
		return
	}

	f.Article = updated
	f.navigate(fmt.Sprintf("articles/%d", updated.ID))
}

// Remove удаляет статью. С явным аргументом (контекст списка) из среза
// убирается ровно один элемент — по идентичности указателя, поиск индекса и
// одно удаление. Без аргумента удаляется текущая статья с переходом на список.
func (f *ArticleForm) Remove(ctx context.Context, article *models.Article) {
	f.Error = ""

	if article != nil {
		if err := f.resource.Delete(ctx, article.ID); err != nil {
			f.Error = err.Error()
			return
		}

		idx := -1
		for i, a := range f.Articles {
			if a == article {
				idx = i
				break
			}
		}
		if idx >= 0 {
			f.Articles = append(f.Articles[:idx], f.Articles[idx+1:]...)
		}
		return
	}

	if f.Article == nil {
		return
	}
	if err := f.resource.Delete(ctx, f.Article.ID); err != nil {
		f.Error = err.Error()
		return
	}
	f.navigate("articles")
}

// Find загружает список статей; при ошибке — пустой список и баннер ошибки.
func (f *ArticleForm) Find(ctx context.Context) {
	list, err := f.resource.Query(ctx)
	if err != nil {
		f.Articles = []*models.Article{}
		f.Error = err.Error()
		return
	}
	f.Articles = list
}

// FindOne загружает одну статью по идентификатору маршрута.
func (f *ArticleForm) FindOne(ctx context.Context, id int64) {
	article, err := f.resource.Get(ctx, id)
	if err != nil {
		f.Error = err.Error()
		return
	}
	f.Article = article
}

// UploadFile стартует загрузку изображения. Без файла — только фиксируем
// отклонённый (если есть). Прогресс пишется в file.Progress, успех кладёт
// публичный URL в ImageURL, ошибка с положительным HTTP-статусом — в ErrorMsg
// в виде "<status>: <body>"; транспортный обрыв (статус 0) не показывается.
func (f *ArticleForm) UploadFile(ctx context.Context, file *FileUpload, rejected []*FileUpload) {
	f.UploadedFile = file
	if len(rejected) > 0 {
		f.RejectedFile = rejected[0]
	}
	if file == nil {
		return
	}

	resp, err := f.uploader.Upload(ctx, file)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status > 0 {
			f.ErrorMsg = fmt.Sprintf("%d: %s", apiErr.Status, apiErr.Body)
		}
		return
	}

	logger.WithCtx(ctx).Info("Файл успешно загружен", zap.String("url", resp.UploadedURL))
	f.ImageURL = resp.UploadedURL
	file.Result = resp
}
