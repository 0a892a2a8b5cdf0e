package models

import "gorm.io/gorm"

// Account is the locally stored account record. Only the username lives in
// the database; the password is kept in the secret store under the username.
// At most one Account is expected to exist.
type Account struct {
	gorm.Model
	Username string `json:"username"`
}

type LoginData struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is issued by the backend login and refresh endpoints.
type TokenPair struct {
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token"`
}
