package auth

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeKeyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestKeySet_Allow(t *testing.T) {
	t.Parallel()

	path := writeKeyFile(t, "# service keys\nalpha-key\n\nbeta-key\n")
	ks := NewKeySet(path, log.New(os.Stderr, "", 0))
	if err := ks.Refresh(); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	tests := []struct {
		name string
		key  string
		want bool
	}{
		{name: "configured key", key: "alpha-key", want: true},
		{name: "second configured key", key: "beta-key", want: true},
		{name: "unknown key", key: "gamma-key", want: false},
		{name: "comment line is not a key", key: "# service keys", want: false},
		{name: "empty key", key: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ks.Allow(tt.key); got != tt.want {
				t.Errorf("Allow(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestKeySet_EmptySetAcceptsAnyKey(t *testing.T) {
	t.Parallel()

	ks := NewKeySet("", nil)
	if err := ks.Refresh(); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if !ks.Allow("anything") {
		t.Error("Allow() = false with no keys configured, want true")
	}
	if !ks.Allow("") {
		t.Error("Allow(\"\") = false with no keys configured, want true")
	}
}

func TestKeySet_MissingFileClearsSet(t *testing.T) {
	t.Parallel()

	path := writeKeyFile(t, "alpha-key\n")
	ks := NewKeySet(path, nil)
	if err := ks.Refresh(); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if ks.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ks.Len())
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := ks.Refresh(); err != nil {
		t.Fatalf("Refresh() after removal error = %v", err)
	}
	if ks.Len() != 0 {
		t.Errorf("Len() = %d after key file removal, want 0", ks.Len())
	}
	if !ks.Allow("anything") {
		t.Error("Allow() = false after key file removal, want development fallback")
	}
}

func TestKeySet_RefreshPicksUpChanges(t *testing.T) {
	t.Parallel()

	path := writeKeyFile(t, "old-key\n")
	ks := NewKeySet(path, nil)
	if err := ks.Refresh(); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if !ks.Allow("old-key") {
		t.Fatal("Allow(old-key) = false before rotation")
	}

	if err := os.WriteFile(path, []byte("new-key\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := ks.Refresh(); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if ks.Allow("old-key") {
		t.Error("Allow(old-key) = true after rotation, want false")
	}
	if !ks.Allow("new-key") {
		t.Error("Allow(new-key) = false after rotation, want true")
	}
}

func TestKeySet_StartLoadsImmediately(t *testing.T) {
	t.Parallel()

	path := writeKeyFile(t, "alpha-key\n")
	ks := NewKeySet(path, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ks.Start(ctx, time.Hour)

	if !ks.Allow("alpha-key") {
		t.Error("Allow() = false right after Start, want immediate load")
	}
	if ks.Allow("other") {
		t.Error("Allow(other) = true, want false")
	}
}
