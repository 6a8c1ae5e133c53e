package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/canteen-backend/internal/infrastructure/storage"
	"github.com/your-org/canteen-backend/internal/pkg/logger"
)

func TestBootstrap(t *testing.T) {
	tests := []struct {
		name     string
		stored   *string
		wantDark bool
	}{
		{name: "unset defaults to dark", stored: nil, wantDark: true},
		{name: "dark", stored: strPtr("dark"), wantDark: true},
		{name: "light", stored: strPtr("light"), wantDark: false},
		{name: "unrecognized defaults to dark", stored: strPtr("sepia"), wantDark: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemoryStore()
			if tc.stored != nil {
				require.NoError(t, kv.Set(ctx, Key, *tc.stored))
			}

			var applied []bool
			s := NewStore(ctx, kv, logger.Discard(), func(dark bool) { applied = append(applied, dark) })

			assert.Equal(t, tc.wantDark, s.DarkMode())
			assert.Equal(t, []bool{tc.wantDark}, applied)
		})
	}
}

func TestToggleDarkMode(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	var applied []bool
	s := NewStore(ctx, kv, logger.Discard(), func(dark bool) { applied = append(applied, dark) })
	assert.Equal(t, DarkClass, s.DocumentClass())

	assert.False(t, s.ToggleDarkMode(ctx))
	assert.Equal(t, "", s.DocumentClass())
	value, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	assert.Equal(t, Light, value)

	assert.True(t, s.ToggleDarkMode(ctx))
	value, err = kv.Get(ctx, Key)
	require.NoError(t, err)
	assert.Equal(t, Dark, value)

	assert.Equal(t, []bool{true, false, true}, applied)

	// a fresh store sees the persisted value
	assert.True(t, NewStore(ctx, kv, logger.Discard(), nil).DarkMode())
}

func strPtr(s string) *string { return &s }

type readOnlyStore struct {
	*storage.MemoryStore
}

func (readOnlyStore) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestToggleDarkMode_WriteFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	var applied []bool
	s := NewStore(ctx, readOnlyStore{storage.NewMemoryStore()}, logger.Discard(), func(dark bool) { applied = append(applied, dark) })

	assert.False(t, s.ToggleDarkMode(ctx))
	assert.False(t, s.DarkMode())
	assert.Equal(t, []bool{true, false}, applied)
}
