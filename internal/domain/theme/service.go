// internal/domain/theme/service.go
package theme

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/canteen-backend/internal/infrastructure/storage"
)

// Key is the storage key of the theme preference
const Key = "theme"

// Persisted values
const (
	Dark  = "dark"
	Light = "light"
)

// DarkClass is the document-level class applied in dark mode
const DarkClass = "dark"

// Applier applies or removes the document-level dark marker
type Applier func(dark bool)

// Store holds one client's light/dark preference
type Store struct {
	storage storage.Store
	logger  logrus.FieldLogger
	apply   Applier

	mu   sync.Mutex
	dark bool
}

// NewStore restores the persisted preference. Anything other than "light"
// or "dark" (including no value) means dark mode.
func NewStore(ctx context.Context, kv storage.Store, logger logrus.FieldLogger, apply Applier) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Store{storage: kv, logger: logger, apply: apply, dark: true}

	value, err := kv.Get(ctx, Key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		logger.WithError(err).Warn("Failed to read theme preference")
	case value == Light:
		s.dark = false
	}

	s.applyMarker(s.dark)
	return s
}

// DarkMode reports whether dark mode is on
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// DocumentClass returns the class to put on the document root
func (s *Store) DocumentClass() string {
	if s.DarkMode() {
		return DarkClass
	}
	return ""
}

// ToggleDarkMode flips the flag, persists it and applies the marker
func (s *Store) ToggleDarkMode(ctx context.Context) bool {
	s.mu.Lock()
	s.dark = !s.dark
	dark := s.dark

	value := Light
	if dark {
		value = Dark
	}
	if err := s.storage.Set(ctx, Key, value); err != nil {
		s.logger.WithError(err).Warn("Failed to persist theme preference")
	}
	s.mu.Unlock()

	s.applyMarker(dark)
	return dark
}

func (s *Store) applyMarker(dark bool) {
	if s.apply != nil {
		s.apply(dark)
	}
}
