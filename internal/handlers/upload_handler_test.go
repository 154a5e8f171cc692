package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"newsroom/internal/models"
	"newsroom/internal/reqctx"
	"newsroom/internal/services"
)

func multipartBody(t *testing.T, field, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func uploadRequest(t *testing.T, username, filename, contentType, content string) *http.Request {
	t.Helper()
	body, formType := multipartBody(t, "uploadedFile", filename, contentType, content)
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", formType)
	if username != "" {
		req = req.WithContext(reqctx.WithUsername(req.Context(), username))
	}
	return req
}

func TestUpload_Success(t *testing.T) {
	root := t.TempDir()
	h := NewUploadHandler(services.NewUploadService(root, "/public/uploads"), 10)

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "alice", "cat.png", "image/png", "png-bytes"))

	if rec.Code != http.StatusOK {
		t.Fatalf("статус: получено %d, тело: %s", rec.Code, rec.Body.String())
	}

	var resp models.UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("невалидный JSON: %v", err)
	}

	if !strings.HasPrefix(resp.UploadedURL, "/public/uploads/YWxpY2U=/") || !strings.HasSuffix(resp.UploadedURL, "-cat.png") {
		t.Errorf("uploadedURL: %q", resp.UploadedURL)
	}
	if resp.Message != "File is uploaded to "+resp.UploadedURL {
		t.Errorf("message: %q", resp.Message)
	}

	data, err := os.ReadFile(resp.UploadedFile)
	if err != nil {
		t.Fatalf("файл не сохранён: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("содержимое: %q", data)
	}

	// в поле file лежат сериализованные метаданные
	if !strings.Contains(resp.File, `"originalFilename":"cat.png"`) {
		t.Errorf("file: %q", resp.File)
	}
}

func TestUpload_RejectsNonImage(t *testing.T) {
	root := t.TempDir()
	h := NewUploadHandler(services.NewUploadService(root, "/public/uploads"), 10)

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "alice", "report.pdf", "application/pdf", "%PDF-1.4"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("статус: получено %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("невалидный JSON: %v", err)
	}
	if body["message"] == "" {
		t.Error("ожидалось фиксированное сообщение об ошибке")
	}

	// ни одного байта в дереве загрузок
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("дерево загрузок должно остаться пустым, найдено: %v", entries)
	}
}

func TestUpload_Unauthenticated(t *testing.T) {
	root := t.TempDir()
	h := NewUploadHandler(services.NewUploadService(root, "/public/uploads"), 10)

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "", "cat.png", "image/png", "png-bytes"))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("статус: получено %d", rec.Code)
	}
}

func TestUpload_MissingField(t *testing.T) {
	root := t.TempDir()
	h := NewUploadHandler(services.NewUploadService(root, "/public/uploads"), 10)

	body, formType := multipartBody(t, "somethingElse", "cat.png", "image/png", "png-bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", formType)
	req = req.WithContext(reqctx.WithUsername(req.Context(), "alice"))

	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("статус: получено %d", rec.Code)
	}
}
