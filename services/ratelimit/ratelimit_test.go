package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfigs() map[Category]Config {
	return map[Category]Config{
		CategoryGameAction: {
			Window:        50 * time.Millisecond,
			MaxRequests:   3,
			BlockDuration: 80 * time.Millisecond,
		},
	}
}

func TestAllow(t *testing.T) {
	t.Run("admits up to the limit and rejects the next", func(t *testing.T) {
		l := NewLimiter(testConfigs())
		defer l.Close()

		for i := 0; i < 3; i++ {
			assert.True(t, l.Allow("conn-1", CategoryGameAction), "request %d", i)
		}
		assert.False(t, l.Allow("conn-1", CategoryGameAction))
	})

	t.Run("rejects everything during the block window", func(t *testing.T) {
		l := NewLimiter(testConfigs())
		defer l.Close()

		for i := 0; i < 4; i++ {
			l.Allow("conn-1", CategoryGameAction)
		}
		// Blocked now, even after the sliding window itself has passed
		time.Sleep(60 * time.Millisecond)
		assert.False(t, l.Allow("conn-1", CategoryGameAction))
	})

	t.Run("admits again after the block expires", func(t *testing.T) {
		l := NewLimiter(testConfigs())
		defer l.Close()

		for i := 0; i < 4; i++ {
			l.Allow("conn-1", CategoryGameAction)
		}
		time.Sleep(100 * time.Millisecond)
		assert.True(t, l.Allow("conn-1", CategoryGameAction))
	})

	t.Run("identities are independent", func(t *testing.T) {
		l := NewLimiter(testConfigs())
		defer l.Close()

		for i := 0; i < 4; i++ {
			l.Allow("conn-1", CategoryGameAction)
		}
		assert.False(t, l.Allow("conn-1", CategoryGameAction))
		assert.True(t, l.Allow("conn-2", CategoryGameAction))
	})

	t.Run("unconfigured categories are never limited", func(t *testing.T) {
		l := NewLimiter(testConfigs())
		defer l.Close()

		for i := 0; i < 100; i++ {
			assert.True(t, l.Allow("conn-1", Category("unknown")))
		}
	})
}

func TestSweep(t *testing.T) {
	l := NewLimiter(testConfigs())
	defer l.Close()

	l.Allow("conn-1", CategoryGameAction)
	assert.Equal(t, 1, len(l.entries))

	// Idle threshold is 2x the largest window/block (160ms here)
	time.Sleep(200 * time.Millisecond)
	l.sweep()
	assert.Equal(t, 0, len(l.entries), "idle identities are purged")
}

func TestDefaultConfigs(t *testing.T) {
	configs := DefaultConfigs()
	for _, category := range []Category{CategoryGlobal, CategoryRoomCreation, CategoryGameAction} {
		cfg, exists := configs[category]
		assert.True(t, exists, "category %s", category)
		assert.Greater(t, cfg.MaxRequests, 0)
		assert.Greater(t, cfg.Window, time.Duration(0))
	}
}
