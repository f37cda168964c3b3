package i18n

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(map[string]string{PreferenceKey: "en"})

	if v, _ := s.Get(ctx, PreferenceKey); v != "en" {
		t.Errorf("Get = %q, want en", v)
	}
	_ = s.Set(ctx, PreferenceKey, "es")
	if v, _ := s.Get(ctx, PreferenceKey); v != "es" {
		t.Errorf("Get = %q, want es", v)
	}
	if v, _ := s.Get(ctx, "other"); v != "" {
		t.Errorf("Get(other) = %q, want empty", v)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "prefs.toml")
	s := NewFileStore(path)

	if v, err := s.Get(ctx, PreferenceKey); err != nil || v != "" {
		t.Fatalf("Get on missing file = %q, %v", v, err)
	}
	if err := s.Set(ctx, PreferenceKey, "en"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "preferredLanguage") {
		t.Errorf("file content = %q", data)
	}

	if v, err := NewFileStore(path).Get(ctx, PreferenceKey); err != nil || v != "en" {
		t.Errorf("Get after reopen = %q, %v", v, err)
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("= = ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Get(context.Background(), PreferenceKey); err == nil {
		t.Error("expected decode error")
	}
}
