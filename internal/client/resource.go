package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"newsroom/internal/models"
)

// APIError — ошибка уровня HTTP: статус и тело ответа сервера.
// Status == 0 означает транспортную ошибку (ответ не получен).
type APIError struct {
	Status  int
	Body    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Body)
}

// ArticleResource — REST-клиент ресурса /api/articles.
type ArticleResource struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewArticleResource(baseURL, token string, httpClient *http.Client) *ArticleResource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ArticleResource{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

func (r *ArticleResource) Save(ctx context.Context, req models.ArticleRequest) (*models.Article, error) {
	var out models.Article
	if err := r.do(ctx, http.MethodPost, "/api/articles", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ArticleResource) Query(ctx context.Context) ([]*models.Article, error) {
	var out []*models.Article
	if err := r.do(ctx, http.MethodGet, "/api/articles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ArticleResource) Get(ctx context.Context, id int64) (*models.Article, error) {
	var out models.Article
	if err := r.do(ctx, http.MethodGet, fmt.Sprintf("/api/articles/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ArticleResource) Update(ctx context.Context, id int64, req models.ArticleRequest) (*models.Article, error) {
	var out models.Article
	if err := r.do(ctx, http.MethodPut, fmt.Sprintf("/api/articles/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ArticleResource) Delete(ctx context.Context, id int64) error {
	return r.do(ctx, http.MethodDelete, fmt.Sprintf("/api/articles/%d", id), nil, nil)
}

func (r *ArticleResource) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		// Ответа нет — транспортная ошибка, статус 0
		return &APIError{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Body: string(raw)}
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &msg); err == nil && msg.Message != "" {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		return json.Unmarshal(raw, out)
	}
	return nil
}
