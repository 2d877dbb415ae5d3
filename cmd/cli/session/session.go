package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// User is the identity stored alongside the token. IsAdmin decides which
// commands the client offers; the server re-verifies on every request.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Session is the locally persisted login state.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ErrNotLoggedIn is returned when no session file exists.
var ErrNotLoggedIn = errors.New("not logged in; run 'miniboard login' first")

func sessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".miniboard", "session.json"), nil
}

// Save writes the session to ~/.miniboard/session.json with owner-only permissions.
func Save(s Session) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Load reads the stored session.
func Load() (Session, error) {
	var s Session
	path, err := sessionPath()
	if err != nil {
		return s, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, ErrNotLoggedIn
		}
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, err
	}
	if s.Token == "" {
		return s, ErrNotLoggedIn
	}
	return s, nil
}

// Clear removes the stored session.
func Clear() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
