package ratelimit

import (
	"log"
	"sync"
	"time"

	game_constants "Cuatrico/constants/game"
)

// Category of inbound events, each rate limited independently per identity.
type Category string

const (
	CategoryGlobal       Category = "global"
	CategoryRoomCreation Category = "room_creation"
	CategoryGameAction   Category = "game_action"
)

// Config tunes one category's sliding window.
type Config struct {
	Window        time.Duration
	MaxRequests   int
	BlockDuration time.Duration
}

// DefaultConfigs returns the tuning from the game constants.
func DefaultConfigs() map[Category]Config {
	return map[Category]Config{
		CategoryGlobal: {
			Window:        game_constants.GlobalWindow,
			MaxRequests:   game_constants.GlobalMax,
			BlockDuration: game_constants.GlobalBlock,
		},
		CategoryRoomCreation: {
			Window:        game_constants.RoomCreateWindow,
			MaxRequests:   game_constants.RoomCreateMax,
			BlockDuration: game_constants.RoomCreateBlock,
		},
		CategoryGameAction: {
			Window:        game_constants.GameActionWindow,
			MaxRequests:   game_constants.GameActionMax,
			BlockDuration: game_constants.GameActionBlock,
		},
	}
}

type entry struct {
	timestamps   []time.Time
	blockedUntil time.Time
	lastSeen     time.Time
}

// Limiter is the per-connection sliding-window admission control. It is the
// system's sole backpressure mechanism: it protects each room's single-writer
// session from a per-identity flood, it does no cross-identity coordination.
type Limiter struct {
	mu      sync.Mutex
	configs map[Category]Config
	entries map[string]*entry
	stop    chan struct{}
	once    sync.Once
}

func NewLimiter(configs map[Category]Config) *Limiter {
	return &Limiter{
		configs: configs,
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}
}

// Allow checks and records one request for (identity, category). State
// mutation for one identity is atomic under the limiter lock. While a block
// window is active every request is rejected unconditionally.
func (l *Limiter) Allow(identity string, category Category) bool {
	cfg, known := l.configs[category]
	if !known {
		// Unconfigured categories are never limited
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	key := identity + "|" + string(category)
	e, exists := l.entries[key]
	if !exists {
		e = &entry{}
		l.entries[key] = e
	}
	e.lastSeen = now

	if now.Before(e.blockedUntil) {
		return false
	}

	// Prune timestamps that fell out of the window
	cutoff := now.Add(-cfg.Window)
	kept := e.timestamps[:0]
	for _, ts := range e.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	e.timestamps = kept

	if len(e.timestamps) >= cfg.MaxRequests {
		e.blockedUntil = now.Add(cfg.BlockDuration)
		log.Printf("[RATELIMIT] Identity %s blocked on %s for %v", identity, category, cfg.BlockDuration)
		return false
	}

	e.timestamps = append(e.timestamps, now)
	return true
}

// StartSweeper launches the periodic purge of idle identities and expired
// blocks so the entry map stays bounded. Stop it with Close.
func (l *Limiter) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.sweep()
			case <-l.stop:
				return
			}
		}
	}()
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, e := range l.entries {
		idle := now.Sub(e.lastSeen)
		if idle > l.maxWindow()*2 && now.After(e.blockedUntil) {
			delete(l.entries, key)
		}
	}
}

func (l *Limiter) maxWindow() time.Duration {
	var max time.Duration
	for _, cfg := range l.configs {
		if cfg.Window > max {
			max = cfg.Window
		}
		if cfg.BlockDuration > max {
			max = cfg.BlockDuration
		}
	}
	return max
}

func (l *Limiter) Close() {
	l.once.Do(func() { close(l.stop) })
}
