// Package secrets is the keychain replacement: a small encrypted file store
// for passwords and tokens, keyed by username.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/scrypt"
)

const defaultPath = "secrets.json"

var ErrStoreCorrupted = errors.New("secret store file corrupted")

type storeFile struct {
	Salt    string            `json:"salt"`
	Entries map[string]string `json:"entries"`
}

type Store struct {
	path string
	key  []byte

	mu   sync.Mutex
	file storeFile
}

// NewStore opens (or creates) the secret store at path, deriving the
// encryption key from the passphrase and a per-file random salt.
func NewStore(path, passphrase string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}

	store := &Store{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &store.file); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreCorrupted, err)
		}
	case os.IsNotExist(err):
		salt := make([]byte, 16)
		if _, err := rand.Read(salt); err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
		store.file = storeFile{
			Salt:    base64.StdEncoding.EncodeToString(salt),
			Entries: map[string]string{},
		}
	default:
		return nil, fmt.Errorf("read secret store: %w", err)
	}

	if store.file.Entries == nil {
		store.file.Entries = map[string]string{}
	}

	salt, err := base64.StdEncoding.DecodeString(store.file.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: bad salt: %v", ErrStoreCorrupted, err)
	}
	store.key, err = scrypt.Key([]byte(passphrase), salt, 1<<15, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return store, nil
}

// Get returns the secret stored under key. A missing key is reported through
// the bool, not as an error.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, ok := s.file.Entries[key]
	if !ok {
		return "", false, nil
	}
	value, err := s.decrypt(encoded)
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, err := s.encrypt(value)
	if err != nil {
		return err
	}
	s.file.Entries[key] = encoded
	return s.save()
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.file.Entries[key]; !ok {
		return nil
	}
	delete(s.file.Entries, key)
	return s.save()
}

func (s *Store) encrypt(value string) (string, error) {
	gcm, err := s.cipher()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := gcm.Seal(nonce, nonce, []byte(value), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *Store) decrypt(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreCorrupted, err)
	}
	gcm, err := s.cipher()
	if err != nil {
		return "", err
	}
	if len(sealed) < gcm.NonceSize() {
		return "", fmt.Errorf("%w: entry too short", ErrStoreCorrupted)
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	value, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreCorrupted, err)
	}
	return string(value), nil
}

func (s *Store) cipher() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// save writes the store durably: temp file first, then rename, so a crash
// mid-write cannot leave a half-written store behind.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode secret store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".secrets-*")
	if err != nil {
		return fmt.Errorf("write secret store: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write secret store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write secret store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write secret store: %w", err)
	}
	return nil
}
