// Package session holds the authenticated API session: the signed-in user, their role and the backend token.
//
// The three values live in an injected Store so the same API client works against a browser cookie jar
// (web UI), a local file (CLI) or memory (tests). They are always written and cleared together.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fieldops/opsconsole/internal/ui/types"
)

// Store keys
const (
	KeyUser      = "user"
	KeyUserRole  = "userRole"
	KeyAuthToken = "authToken"
)

// Keys lists every key that makes up a session
var Keys = []string{KeyUser, KeyUserRole, KeyAuthToken}

var ErrNoSession = errors.New("not logged in")

// Store is a small string key/value store holding the session
type Store interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool)
	Set(key, value string) error
	// Clear removes the keys; clearing an absent key is not an error
	Clear(keys ...string) error
}

// Session is the decoded content of a Store
type Session struct {
	User  types.User
	Role  types.Role
	Token string
}

// Save stores the result of a successful login
func Save(store Store, login types.LoginResponse) error {
	if login.Token == "" {
		return fmt.Errorf("login response has no token")
	}
	userJSON, err := json.Marshal(login.User)
	if err != nil {
		return fmt.Errorf("could not encode user: %w", err)
	}

	role := login.User.Role
	if role == "" {
		role = types.RoleEmployee
		if login.User.IsStaff {
			role = types.RoleAdmin
		}
	}

	if err := store.Set(KeyUser, string(userJSON)); err != nil {
		return err
	}
	if err := store.Set(KeyUserRole, string(role)); err != nil {
		return err
	}
	return store.Set(KeyAuthToken, login.Token)
}

// Load reads the session. It returns ErrNoSession unless a token is present.
func Load(store Store) (*Session, error) {
	token, ok := store.Get(KeyAuthToken)
	if !ok || token == "" {
		return nil, ErrNoSession
	}

	s := &Session{Token: token}
	if role, ok := store.Get(KeyUserRole); ok {
		s.Role = types.Role(role)
	}
	if userJSON, ok := store.Get(KeyUser); ok && userJSON != "" {
		if err := json.Unmarshal([]byte(userJSON), &s.User); err != nil {
			return nil, fmt.Errorf("stored user is not valid JSON: %w", err)
		}
	}
	return s, nil
}

// Token returns the stored auth token, or "" when there is none
func Token(store Store) string {
	token, _ := store.Get(KeyAuthToken)
	return token
}

// Purge removes the whole session
func Purge(store Store) error {
	return store.Clear(Keys...)
}
