package models

import "time"

type User struct {
	ID              int       `json:"id"`
	Username        string    `json:"username"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	DisplayName     string    `json:"display_name"`
	Email           string    `json:"email"`
	Provider        string    `json:"provider"`
	ProfileImageURL string    `json:"profile_image_url"`
	PasswordHash    string    `json:"-"`
	Role            string    `json:"role"`
	Roles           []string  `json:"roles"`
	Created         time.Time `json:"created"`
	Updated         time.Time `json:"updated"`
}

// SafeUser — экранированная проекция пользователя для шаблона index.
// Все свободные текстовые поля проходят HTML-экранирование; created и roles
// отдаются как есть.
type SafeUser struct {
	DisplayName     string   `json:"displayName"`
	Provider        string   `json:"provider"`
	Username        string   `json:"username"`
	Created         string   `json:"created"`
	Roles           []string `json:"roles"`
	ProfileImageURL string   `json:"profileImageURL"`
	Email           string   `json:"email"`
	LastName        string   `json:"lastName"`
	FirstName       string   `json:"firstName"`
}
