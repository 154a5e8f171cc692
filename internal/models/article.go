package models

import "time"

type Article struct {
	ID       int64     `db:"id"        json:"id"`
	AuthorID *int64    `db:"author_id" json:"authorId,omitempty"`
	Title    string    `db:"title"     json:"title"`
	Content  string    `db:"content"   json:"content"`
	ImageURL string    `db:"image_url" json:"imageURL"`
	Created  time.Time `db:"created"   json:"created"`
	Updated  time.Time `db:"updated"   json:"updated"`
}

// swagger:model ArticleRequest
type ArticleRequest struct {
	Title    string `json:"title"    example:"Как писать middleware в Go"`
	Content  string `json:"content"  example:"<p>Контент</p>"`
	ImageURL string `json:"imageURL" example:"/public/uploads/YWxpY2U=/1700000000000-cat.png"`
}
