// Package session persists the authenticated session between runs. The
// vault file on disk is encrypted with a key derived from a passphrase; an
// empty passphrase is allowed for users who prefer convenience over a
// prompt at every launch.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

var (
	// ErrNoSession means no vault file exists; the user has never logged in
	// or the session was cleared.
	ErrNoSession = errors.New("no stored session")
	// ErrDecrypt means the vault exists but could not be opened with the
	// given passphrase.
	ErrDecrypt = errors.New("failed to decrypt session vault (wrong passphrase?)")
)

// Session is the persisted state of a login: where, who, and the bearer
// token. The account password is never stored.
type Session struct {
	ServerURL string    `json:"server_url"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	SavedAt   time.Time `json:"saved_at"`
}

type vaultFile struct {
	Salt []byte `json:"salt"`
	Data []byte `json:"data"`
}

// Save encrypts the session under the passphrase and writes the vault file.
func Save(path string, passphrase []byte, s Session) error {
	salt, err := newSalt()
	if err != nil {
		return err
	}
	plaintext, err := json.Marshal(s)
	if err != nil {
		return err
	}
	sealed, err := seal(deriveKey(passphrase, salt), plaintext)
	if err != nil {
		return err
	}
	data, err := json.Marshal(vaultFile{Salt: salt, Data: sealed})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Load reads and decrypts the vault file. Missing file → ErrNoSession;
// wrong passphrase → ErrDecrypt.
func Load(path string, passphrase []byte) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	var vf vaultFile
	if err := json.Unmarshal(data, &vf); err != nil {
		return nil, fmt.Errorf("corrupt session vault: %w", err)
	}

	plaintext, err := open(deriveKey(passphrase, vf.Salt), vf.Data)
	if err != nil {
		return nil, ErrDecrypt
	}

	var s Session
	if err := json.Unmarshal(plaintext, &s); err != nil {
		return nil, fmt.Errorf("corrupt session data: %w", err)
	}
	return &s, nil
}

// Clear removes the vault file. Used on logout and when the server rejects
// the stored credential during session restore.
func Clear(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
