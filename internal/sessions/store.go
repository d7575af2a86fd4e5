package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"ulascansenturk/clima/internal/lookup"
)

// Factory builds the controller for a new session.
type Factory func() *lookup.WeatherLookup

type sessionEntry struct {
	lookup     *lookup.WeatherLookup
	expiration time.Time
}

// Store keeps one WeatherLookup per browser session. Entries expire after
// ttl without access and are closed by the cleanup loop.
type Store struct {
	sessions        map[string]*sessionEntry
	mutex           sync.Mutex
	factory         Factory
	ttl             time.Duration
	cleanupInterval time.Duration
	done            chan struct{}
	closeOnce       sync.Once
}

func NewStore(factory Factory, ttl, cleanupInterval time.Duration) *Store {
	store := &Store{
		sessions:        make(map[string]*sessionEntry),
		factory:         factory,
		ttl:             ttl,
		cleanupInterval: cleanupInterval,
		done:            make(chan struct{}),
	}

	go store.startCleanup()

	return store
}

// Get returns the controller for id and extends its expiration.
func (m *Store) Get(id string) (*lookup.WeatherLookup, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, exists := m.sessions[id]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.expiration) {
		delete(m.sessions, id)
		entry.lookup.Close()
		return nil, false
	}

	entry.expiration = time.Now().Add(m.ttl)
	return entry.lookup, true
}

// GetOrCreate returns the session for id, or a new session with a fresh id
// when id is unknown or expired.
func (m *Store) GetOrCreate(id string) (string, *lookup.WeatherLookup) {
	if id != "" {
		if l, ok := m.Get(id); ok {
			return id, l
		}
	}

	newID := uuid.NewString()
	l := m.factory()

	m.mutex.Lock()
	m.sessions[newID] = &sessionEntry{
		lookup:     l,
		expiration: time.Now().Add(m.ttl),
	}
	m.mutex.Unlock()

	log.Debug().Str("session_id", newID).Msg("session created")

	return newID, l
}

func (m *Store) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return len(m.sessions)
}

// Close stops the cleanup loop and closes every session.
func (m *Store) Close() {
	m.closeOnce.Do(func() {
		close(m.done)

		m.mutex.Lock()
		defer m.mutex.Unlock()

		for id, entry := range m.sessions {
			entry.lookup.Close()
			delete(m.sessions, id)
		}
	})
}

func (m *Store) startCleanup() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
		}

		m.mutex.Lock()
		now := time.Now()
		for k, v := range m.sessions {
			if now.After(v.expiration) {
				v.lookup.Close()
				delete(m.sessions, k)
			}
		}
		m.mutex.Unlock()
	}
}
