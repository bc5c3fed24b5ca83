package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.enc")
	want := Session{
		ServerURL: "https://mon.example.net",
		Email:     "noc@example.net",
		Token:     "tok-abc123",
		SavedAt:   time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}

	if err := Save(path, []byte("hunter2"), want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path, []byte("hunter2"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *got != want {
		t.Errorf("Load() = %+v, want %+v", *got, want)
	}
}

func TestLoadWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.enc")
	if err := Save(path, []byte("right"), Session{Token: "t"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	_, err := Load(path, []byte("wrong"))
	if !errors.Is(err, ErrDecrypt) {
		t.Errorf("Load() with wrong passphrase: got %v, want ErrDecrypt", err)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.enc"), nil)
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("Load() of missing vault: got %v, want ErrNoSession", err)
	}
}

func TestEmptyPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.enc")
	if err := Save(path, []byte(""), Session{Token: "t"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	s, err := Load(path, []byte(""))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Token != "t" {
		t.Errorf("Token = %q, want %q", s.Token, "t")
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.enc")
	if err := Save(path, nil, Session{Token: "t"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := Clear(path); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, err := Load(path, nil); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load() after Clear: got %v, want ErrNoSession", err)
	}
	// Clearing an already-missing vault is not an error.
	if err := Clear(path); err != nil {
		t.Errorf("Clear() of missing vault: %v", err)
	}
}
