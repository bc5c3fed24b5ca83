package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error: %v", err)
	}
	if dir == "" {
		t.Fatal("GetConfigDir() returned empty string")
	}
	// Should end with "junowatch"
	if filepath.Base(dir) != "junowatch" {
		t.Errorf("expected dir to end with 'junowatch', got %q", filepath.Base(dir))
	}
}

func TestGetConfigDirXDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG test not applicable on Windows")
	}
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error: %v", err)
	}
	expected := filepath.Join(tmp, "junowatch")
	if dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestGetDataDir(t *testing.T) {
	dir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir() error: %v", err)
	}
	if dir == "" {
		t.Fatal("GetDataDir() returned empty string")
	}
	if filepath.Base(dir) != "junowatch" {
		t.Errorf("expected dir to end with 'junowatch', got %q", filepath.Base(dir))
	}
}

func TestGetSessionPath(t *testing.T) {
	path, err := GetSessionPath()
	if err != nil {
		t.Fatalf("GetSessionPath() error: %v", err)
	}
	if filepath.Base(path) != "session.enc" {
		t.Errorf("expected path to end with 'session.enc', got %q", filepath.Base(path))
	}
}

func TestGetLogPath(t *testing.T) {
	path, err := GetLogPath()
	if err != nil {
		t.Fatalf("GetLogPath() error: %v", err)
	}
	if filepath.Base(path) != "junowatch.log" {
		t.Errorf("expected path to end with 'junowatch.log', got %q", filepath.Base(path))
	}
}
