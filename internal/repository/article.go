package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"newsroom/internal/models"
)

type ArticleRepo interface {
	Create(ctx context.Context, a *models.Article) (*models.Article, error)
	GetAll(ctx context.Context, limit, offset int) ([]*models.Article, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Update(ctx context.Context, a *models.Article) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type articleRepo struct{ db *pgxpool.Pool }

func NewArticleRepo(db *pgxpool.Pool) ArticleRepo { return &articleRepo{db: db} }

func (r *articleRepo) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	const q = `
		INSERT INTO articles (author_id, title, content, image_url)
		VALUES ($1,$2,$3,$4)
		RETURNING id, author_id, title, content, image_url, created, updated
	`

	var out models.Article
	err := r.db.QueryRow(ctx, q,
		a.AuthorID, // *int64 (nullable)
		a.Title,    // string
		a.Content,  // string
		a.ImageURL, // string
	).Scan(
		&out.ID,
		&out.AuthorID,
		&out.Title,
		&out.Content,
		&out.ImageURL,
		&out.Created,
		&out.Updated,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *articleRepo) GetAll(ctx context.Context, limit, offset int) ([]*models.Article, error) {
	const q = `
		SELECT id, author_id, title, content, image_url, created, updated
		FROM articles
		ORDER BY created DESC LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Article
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(
			&a.ID, &a.AuthorID, &a.Title, &a.Content, &a.ImageURL, &a.Created, &a.Updated,
		); err != nil {
			return nil, err
		}
		list = append(list, &a)
	}
	return list, nil
}

func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	const q = `
		SELECT id, author_id, title, content, image_url, created, updated
		FROM articles WHERE id=$1
	`
	var a models.Article
	if err := r.db.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.AuthorID, &a.Title, &a.Content, &a.ImageURL, &a.Created, &a.Updated,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *articleRepo) Update(ctx context.Context, a *models.Article) error {
	const q = `
		UPDATE articles
		SET title=$1,
		    content=$2,
		    image_url=$3,
		    updated=NOW()
		WHERE id=$4
	`
	_, err := r.db.Exec(ctx, q, a.Title, a.Content, a.ImageURL, a.ID)
	return err
}

func (r *articleRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM articles WHERE id=$1", id)
	return err
}

func (r *articleRepo) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)`
	var ok bool
	if err := r.db.QueryRow(ctx, q, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
