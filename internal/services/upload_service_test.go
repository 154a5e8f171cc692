package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"newsroom/internal/models"
)

func fixedNow() time.Time {
	return time.UnixMilli(1700000000000)
}

func newTestUploadService(t *testing.T) (*UploadService, string) {
	t.Helper()
	root := t.TempDir()
	svc := NewUploadService(root, "/public/uploads")
	svc.now = fixedNow
	return svc, root
}

func makeTempFile(t *testing.T, content string) string {
	t.Helper()
	tmp, err := os.CreateTemp(t.TempDir(), "upload-*")
	if err != nil {
		t.Fatalf("не удалось создать временный файл: %v", err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		t.Fatalf("не удалось записать временный файл: %v", err)
	}
	tmp.Close()
	return tmp.Name()
}

func TestFilter(t *testing.T) {
	svc, _ := newTestUploadService(t)

	for _, mime := range []string{"image/png", "image/jpeg", "image/jpg", "image/gif"} {
		if err := svc.Filter(mime); err != nil {
			t.Errorf("тип %s должен проходить фильтр, получено: %v", mime, err)
		}
	}
	for _, mime := range []string{"application/pdf", "text/html", "image/svg+xml", "video/mp4", ""} {
		if err := svc.Filter(mime); err == nil {
			t.Errorf("тип %s должен отклоняться фильтром", mime)
		}
	}
}

func TestStore_DeterministicPath(t *testing.T) {
	svc, root := newTestUploadService(t)

	tmpPath := makeTempFile(t, "png-bytes")
	stored, err := svc.Store(context.Background(), "alice", &models.UploadedFile{
		OriginalName: "cat.png",
		TempPath:     tmpPath,
		Size:         9,
		MimeType:     "image/png",
	})
	if err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}

	// base64("alice") == "YWxpY2U="
	wantPath := filepath.Join(root, "YWxpY2U=", "1700000000000-cat.png")
	if stored.Path != wantPath {
		t.Errorf("путь назначения: получено %q, ожидалось %q", stored.Path, wantPath)
	}
	if stored.PublicURL != "/public/uploads/YWxpY2U=/1700000000000-cat.png" {
		t.Errorf("публичный URL: получено %q", stored.PublicURL)
	}

	data, err := os.ReadFile(stored.Path)
	if err != nil {
		t.Fatalf("файл не найден в хранилище: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("содержимое файла повреждено: %q", data)
	}

	// временный файл перенесён, не скопирован
	if _, err := os.Stat(tmpPath); !os.IsNotExist(err) {
		t.Errorf("временный файл должен быть перемещён, stat: %v", err)
	}
}

func TestStore_UserNamespaces(t *testing.T) {
	svc, root := newTestUploadService(t)

	for _, username := range []string{"alice", "bob"} {
		tmpPath := makeTempFile(t, username)
		if _, err := svc.Store(context.Background(), username, &models.UploadedFile{
			OriginalName: "pic.jpg",
			TempPath:     tmpPath,
		}); err != nil {
			t.Fatalf("ошибка сохранения для %s: %v", username, err)
		}
	}

	aliceDir := filepath.Join(root, "YWxpY2U=")
	bobDir := filepath.Join(root, "Ym9i")
	for _, dir := range []string{aliceDir, bobDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("каталог пользователя отсутствует: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("в каталоге %s ожидался один файл, получено %d", dir, len(entries))
		}
	}
}

func TestStore_RootConflict(t *testing.T) {
	svc, root := newTestUploadService(t)

	// по пути каталога пользователя лежит обычный файл
	if err := os.WriteFile(filepath.Join(root, "YWxpY2U="), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tmpPath := makeTempFile(t, "data")
	_, err := svc.Store(context.Background(), "alice", &models.UploadedFile{
		OriginalName: "cat.png",
		TempPath:     tmpPath,
	})
	if err != ErrUploadRootConflict {
		t.Fatalf("ожидалась ErrUploadRootConflict, получено: %v", err)
	}

	// временный файл не должен быть потерян при ошибке окружения
	if _, err := os.Stat(tmpPath); err != nil {
		t.Errorf("временный файл должен остаться на месте: %v", err)
	}
}

func TestStore_BaseNameOnly(t *testing.T) {
	svc, root := newTestUploadService(t)

	tmpPath := makeTempFile(t, "data")
	stored, err := svc.Store(context.Background(), "alice", &models.UploadedFile{
		OriginalName: "../../etc/passwd",
		TempPath:     tmpPath,
	})
	if err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}

	want := filepath.Join(root, "YWxpY2U=", "1700000000000-passwd")
	if stored.Path != want {
		t.Errorf("имя файла должно усекаться до базового: %q", stored.Path)
	}
}
