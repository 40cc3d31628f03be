package directory

import (
	"time"

	"golang.org/x/oauth2"
)

// User модель пользователя из DirectoryService
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // "client" или "professional"
	Phone string `json:"phone"`

	// OAuth-токены личного Google-календаря, если пользователь его подключил
	GoogleTokens *GoogleTokens `json:"google_tokens,omitempty"`
}

// GoogleTokens OAuth-токены пользователя для доступа к его календарю
type GoogleTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Expiry       int64  `json:"expiry"` // Unix-секунды
}

// OAuthToken конвертирует сохранённые токены в формат golang.org/x/oauth2
// nil означает, что пользователь не подключал свой календарь
func (g *GoogleTokens) OAuthToken() *oauth2.Token {
	if g == nil {
		return nil
	}
	return &oauth2.Token{
		AccessToken:  g.AccessToken,
		RefreshToken: g.RefreshToken,
		Expiry:       time.Unix(g.Expiry, 0),
	}
}

// IsProfessional возвращает true для учёток мастеров салона
func (u *User) IsProfessional() bool {
	return u.Role == "professional"
}

// ErrorResponse модель ошибки от DirectoryService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
