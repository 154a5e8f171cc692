package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"newsroom/internal/models"
)

func newUpload(name, contentType, content string) *FileUpload {
	return &FileUpload{
		Name:        name,
		ContentType: contentType,
		Content:     strings.NewReader(content),
	}
}

func TestUpload_ProgressAndResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("сервер не смог разобрать форму: %v", err)
		}
		f, fh, err := r.FormFile("uploadedFile")
		if err != nil {
			t.Errorf("нет поля uploadedFile: %v", err)
		} else {
			f.Close()
			if fh.Filename != "cat.png" {
				t.Errorf("имя файла: %q", fh.Filename)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.UploadResponse{
			UploadedURL: "/public/uploads/YWxpY2U=/1700000000000-cat.png",
			Message:     "File is uploaded to /public/uploads/YWxpY2U=/1700000000000-cat.png",
		})
	}))
	defer srv.Close()

	file := newUpload("cat.png", "image/png", "png-bytes")
	form := NewArticleForm(nil, NewUploader(srv.URL, "token", nil), nil, nil)

	form.UploadFile(context.Background(), file, nil)

	if form.ErrorMsg != "" {
		t.Fatalf("неожиданная ошибка: %q", form.ErrorMsg)
	}
	if got := atomic.LoadInt32(&file.Progress); got != 100 {
		t.Errorf("после отправки прогресс должен быть 100, получено %d", got)
	}
	if form.ImageURL != "/public/uploads/YWxpY2U=/1700000000000-cat.png" {
		t.Errorf("ImageURL: %q", form.ImageURL)
	}
	if file.Result == nil || file.Result.UploadedURL != form.ImageURL {
		t.Errorf("результат не записан в файл: %+v", file.Result)
	}
	if form.UploadedFile != file {
		t.Error("загружаемый файл должен оседать в состоянии формы")
	}
}

// Прогресс не убывает и не превышает 100
func TestProgressReader_Monotone(t *testing.T) {
	var seen []int32
	content := strings.Repeat("x", 1000)
	reader := &progressReader{
		r:     strings.NewReader(content),
		total: 1000,
		onProgress: func(loaded int64) {
			p := int32(100 * loaded / 1000)
			if p > 100 {
				p = 100
			}
			seen = append(seen, p)
		},
	}

	buf := make([]byte, 64)
	for {
		_, err := reader.Read(buf)
		if err != nil {
			break
		}
	}

	if len(seen) == 0 {
		t.Fatal("прогресс ни разу не обновился")
	}
	prev := int32(-1)
	for _, p := range seen {
		if p < prev {
			t.Fatalf("прогресс убыл: %d после %d", p, prev)
		}
		if p > 100 {
			t.Fatalf("прогресс вышел за 100: %d", p)
		}
		prev = p
	}
	if seen[len(seen)-1] != 100 {
		t.Errorf("финальный прогресс: %d", seen[len(seen)-1])
	}
}

func TestUploadFile_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad"))
	}))
	defer srv.Close()

	file := newUpload("cat.png", "image/png", "png-bytes")
	form := NewArticleForm(nil, NewUploader(srv.URL, "token", nil), nil, nil)

	form.UploadFile(context.Background(), file, nil)

	if form.ErrorMsg != "400: bad" {
		t.Errorf("ожидался формат \"<статус>: <тело>\", получено %q", form.ErrorMsg)
	}
	if form.ImageURL != "" {
		t.Errorf("при ошибке URL не должен выставляться: %q", form.ImageURL)
	}
}

// Транспортный обрыв (статуса нет) не показывается пользователю
func TestUploadFile_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // сервер уже остановлен, соединение оборвётся

	file := newUpload("cat.png", "image/png", "png-bytes")
	form := NewArticleForm(nil, NewUploader(srv.URL, "token", nil), nil, nil)

	form.UploadFile(context.Background(), file, nil)

	if form.ErrorMsg != "" {
		t.Errorf("транспортная ошибка не должна оседать в ErrorMsg: %q", form.ErrorMsg)
	}
}

func TestUploadFile_NoFile(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	rejected := newUpload("report.pdf", "application/pdf", "%PDF")
	form := NewArticleForm(nil, NewUploader(srv.URL, "token", nil), nil, nil)

	form.UploadFile(context.Background(), nil, []*FileUpload{rejected})

	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("без файла не должно быть сетевых вызовов, было %d", calls)
	}
	if form.RejectedFile != rejected {
		t.Error("отклонённый файл должен оседать в состоянии формы")
	}
}
