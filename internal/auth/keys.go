// Package auth holds the API-key set guarding the HTTP surface. The set
// is an explicitly owned cache with a Refresh method; a ticker goroutine
// started via Start keeps it current.
package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// KeySet is a reloadable set of accepted API keys. An empty set accepts
// any key: the explicit development-mode fallback.
type KeySet struct {
	path   string
	logger *log.Logger

	mu   sync.RWMutex
	keys map[string]struct{}
}

// NewKeySet creates a KeySet backed by the file at path: one key per
// line, blank lines and #-comments ignored. An empty path means no keys
// are configured.
func NewKeySet(path string, logger *log.Logger) *KeySet {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &KeySet{
		path:   path,
		logger: logger,
		keys:   map[string]struct{}{},
	}
}

// Refresh reloads the key set from disk. A missing file clears the set
// rather than failing, so removing the file switches back to
// development mode.
func (k *KeySet) Refresh() error {
	if k.path == "" {
		return nil
	}

	f, err := os.Open(k.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			k.replace(nil)
			return nil
		}
		return fmt.Errorf("opening key file: %w", err)
	}
	defer f.Close()

	keys := map[string]struct{}{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keys[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading key file: %w", err)
	}

	k.replace(keys)
	return nil
}

// Start refreshes once immediately, then on the given interval until the
// context is canceled. Refresh failures keep the previous set and are
// logged.
func (k *KeySet) Start(ctx context.Context, interval time.Duration) {
	if err := k.Refresh(); err != nil {
		k.logger.Printf("[keys] initial load failed: %v", err)
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := k.Refresh(); err != nil {
					k.logger.Printf("[keys] refresh failed: %v", err)
				}
			}
		}
	}()
}

// Allow reports whether the presented key is accepted. With no keys
// configured every key is accepted.
func (k *KeySet) Allow(key string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if len(k.keys) == 0 {
		return true
	}
	_, ok := k.keys[key]
	return ok
}

// Len returns the number of configured keys.
func (k *KeySet) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys)
}

func (k *KeySet) replace(keys map[string]struct{}) {
	if keys == nil {
		keys = map[string]struct{}{}
	}
	k.mu.Lock()
	k.keys = keys
	k.mu.Unlock()
}
