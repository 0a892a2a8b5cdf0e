package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/sp4c38/pizzatech-api/models"
	"gorm.io/gorm"
)

const accessTokenSuffix = "#access_token"

const refreshTokenSuffix = "#refresh_token"

// LoginAPI is the part of the backend client the session service needs.
type LoginAPI interface {
	CheckLogin(ctx context.Context, username, password string) (bool, error)
	Login(ctx context.Context, username, password, deviceDescription string) (*models.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

// SecretStore is the keychain interface: secrets addressed by key.
type SecretStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// SessionService decides on app start whether a previously stored account is
// still valid, and handles login and logout against the backend.
type SessionService struct {
	db      *gorm.DB
	secrets SecretStore
	api     LoginAPI
}

func NewSessionService(db *gorm.DB, secrets SecretStore, api LoginAPI) *SessionService {
	return &SessionService{db: db, secrets: secrets, api: api}
}

// StoredUsername returns the stored account's username. More than one stored
// account is tolerated with a warning; the first one wins.
func (s *SessionService) StoredUsername() (string, bool, error) {
	var accounts []models.Account
	if err := s.db.Order("id").Find(&accounts).Error; err != nil {
		return "", false, fmt.Errorf("load stored accounts: %w", err)
	}
	if len(accounts) == 0 {
		return "", false, nil
	}
	if len(accounts) > 1 {
		log.Printf("Warning: %d stored accounts found, only one should exist. Using the first one.", len(accounts))
	}
	return accounts[0].Username, true, nil
}

// StoredCredentials returns the stored username and its secret. A stored
// username without a secret violates a local invariant and is reported as
// corrupted state.
func (s *SessionService) StoredCredentials() (string, string, error) {
	username, found, err := s.StoredUsername()
	if err != nil {
		return "", "", err
	}
	if !found {
		return "", "", ErrNoStoredAccount
	}

	password, found, err := s.secrets.Get(username)
	if err != nil {
		return "", "", err
	}
	if !found {
		return "", "", fmt.Errorf("%w: username %q is stored but has no stored secret", ErrCorruptedState, username)
	}
	return username, password, nil
}

// CheckStoredAccountValid reports whether the stored credentials are still
// accepted by the backend. No stored username is the normal cold-start case
// and answers false without any network call.
func (s *SessionService) CheckStoredAccountValid(ctx context.Context) (bool, error) {
	username, password, err := s.StoredCredentials()
	if errors.Is(err, ErrNoStoredAccount) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.api.CheckLogin(ctx, username, password)
}

// Login verifies the credentials with the backend and stores them. The
// secret is written before the account row so a crash in between cannot
// produce a stored username without a stored secret.
func (s *SessionService) Login(ctx context.Context, username, password string) error {
	valid, err := s.api.CheckLogin(ctx, username, password)
	if err != nil {
		return err
	}
	if !valid {
		return ErrInvalidCredentials
	}

	if err := s.secrets.Set(username, password); err != nil {
		return err
	}
	if err := s.db.FirstOrCreate(&models.Account{}, models.Account{Username: username}).Error; err != nil {
		return fmt.Errorf("store account: %w", err)
	}

	// Delivery accounts additionally get a backend token pair for progress
	// pushes. Customer accounts don't exist on the token endpoints, so a
	// failure here is logged and ignored.
	tokens, err := s.api.Login(ctx, username, password, "pizzatech operator app")
	if err != nil {
		log.Println("No backend token pair issued for this account:", err)
		return nil
	}
	if err := s.secrets.Set(username+accessTokenSuffix, tokens.AccessToken); err != nil {
		return err
	}
	if err := s.secrets.Set(username+refreshTokenSuffix, tokens.RefreshToken); err != nil {
		return err
	}
	return nil
}

// AccessToken returns the stored backend access token of the logged-in
// account, if one was issued.
func (s *SessionService) AccessToken() (string, bool, error) {
	username, found, err := s.StoredUsername()
	if err != nil || !found {
		return "", false, err
	}
	return s.secrets.Get(username + accessTokenSuffix)
}

// RefreshTokens trades the stored refresh token for a new token pair, stores
// the pair and returns the new access token. Called when the backend refuses
// the stored access token as expired.
func (s *SessionService) RefreshTokens(ctx context.Context) (string, error) {
	username, found, err := s.StoredUsername()
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNoStoredAccount
	}

	refreshToken, found, err := s.secrets.Get(username + refreshTokenSuffix)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNoRefreshToken
	}

	tokens, err := s.api.RefreshToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if err := s.secrets.Set(username+accessTokenSuffix, tokens.AccessToken); err != nil {
		return "", err
	}
	if err := s.secrets.Set(username+refreshTokenSuffix, tokens.RefreshToken); err != nil {
		return "", err
	}
	return tokens.AccessToken, nil
}

// Logout removes the stored account. The account row goes first: deleting
// the secret first would leave a username without a secret behind if the
// process dies in between.
func (s *SessionService) Logout() error {
	username, found, err := s.StoredUsername()
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	if err := s.db.Where("username = ?", username).Delete(&models.Account{}).Error; err != nil {
		return fmt.Errorf("delete stored account: %w", err)
	}
	for _, key := range []string{username, username + accessTokenSuffix, username + refreshTokenSuffix} {
		if err := s.secrets.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
