package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync/atomic"

	"newsroom/internal/models"
)

// FileUpload — файл в процессе загрузки. Progress обновляется по мере
// отправки тела запроса: min(100, 100*отправлено/всего), не убывает.
type FileUpload struct {
	Name        string
	ContentType string
	Content     io.Reader

	Progress int32
	Result   *models.UploadResponse
}

// Uploader отправляет файл на /api/uploads полем uploadedFile.
type Uploader struct {
	url   string
	token string
	http  *http.Client
}

func NewUploader(baseURL, token string, httpClient *http.Client) *Uploader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Uploader{
		url:   strings.TrimRight(baseURL, "/") + "/api/uploads",
		token: token,
		http:  httpClient,
	}
}

func (u *Uploader) Upload(ctx context.Context, file *FileUpload) (*models.UploadResponse, error) {
	// Тело собирается заранее: так известен точный размер для прогресса
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="uploadedFile"; filename="`+file.Name+`"`)
	if file.ContentType != "" {
		header.Set("Content-Type", file.ContentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	total := int64(body.Len())
	reader := &progressReader{
		r:     &body,
		total: total,
		onProgress: func(loaded int64) {
			p := int32(100 * loaded / total)
			if p > 100 {
				p = 100
			}
			atomic.StoreInt32(&file.Progress, p)
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = total
	if u.token != "" {
		req.Header.Set("Authorization", "Bearer "+u.token)
	}

	resp, err := u.http.Do(req)
	if err != nil {
		return nil, &APIError{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	var out models.UploadResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type progressReader struct {
	r          io.Reader
	total      int64
	loaded     int64
	onProgress func(loaded int64)
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.loaded += int64(n)
		p.onProgress(p.loaded)
	}
	return n, err
}
