// Package auth implements reel's local-only accounts: a credential store that
// maps an e-mail address to the user's catalog API key, form validation and
// the sign-in/sign-up flows.
//
// Nothing here is secure. Keys are kept in plaintext in the local store and
// compared verbatim; the "account" only exists so that the API key does not
// have to be typed on every start.
package auth

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/five82/reel/internal/storage"
)

var (
	// ErrAlreadyExists is returned when registering a taken identifier.
	ErrAlreadyExists = errors.New("account already exists")
	// ErrInvalidCredentials is returned for any failed authentication.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Credential is one registered account.
type Credential struct {
	Identifier string `json:"email"`
	Secret     string `json:"password"`
}

// Store persists credentials and the remembered identifier.
type Store struct {
	kv *storage.Adapter
	mu sync.Mutex
}

// NewStore returns a credential store over kv.
func NewStore(kv *storage.Adapter) *Store {
	return &Store{kv: kv}
}

// NormalizeIdentifier trims and lowercases an identifier.
func NormalizeIdentifier(identifier string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(identifier))
}

// Register adds a credential. The identifier is normalised first.
func (s *Store) Register(identifier, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := NormalizeIdentifier(identifier)
	creds := s.load()
	for _, c := range creds {
		if c.Identifier == id {
			return ErrAlreadyExists
		}
	}
	creds = append(creds, Credential{Identifier: id, Secret: secret})

	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	s.kv.Write(storage.KeyCredentials, string(data))
	return nil
}

// Authenticate returns the stored secret when identifier (after
// normalisation) and secret both match a registered credential exactly.
func (s *Store) Authenticate(identifier, secret string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := NormalizeIdentifier(identifier)
	for _, c := range s.load() {
		if c.Identifier == id && c.Secret == secret {
			return c.Secret, nil
		}
	}
	return "", ErrInvalidCredentials
}

// Credentials returns every registered credential.
func (s *Store) Credentials() []Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Remembered returns the identifier saved by a "remember me" sign-in. It may
// name an account that no longer exists.
func (s *Store) Remembered() (string, bool) {
	v, ok := s.kv.Read(storage.KeyRemembered)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Remember saves identifier for prefilling the next sign-in.
func (s *Store) Remember(identifier string) {
	s.kv.Write(storage.KeyRemembered, NormalizeIdentifier(identifier))
}

// Forget clears the remembered identifier.
func (s *Store) Forget() {
	s.kv.Remove(storage.KeyRemembered)
}

// load decodes the persisted collection. Anything that is not a list of
// complete credentials reads as empty.
func (s *Store) load() []Credential {
	raw, ok := s.kv.Read(storage.KeyCredentials)
	if !ok {
		return nil
	}
	var entries []map[string]any
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil
	}
	creds := make([]Credential, 0, len(entries))
	for _, e := range entries {
		id, idOK := e["email"].(string)
		secret, secretOK := e["password"].(string)
		if !idOK || !secretOK {
			return nil
		}
		creds = append(creds, Credential{Identifier: id, Secret: secret})
	}
	return creds
}
