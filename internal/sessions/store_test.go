package sessions_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"ulascansenturk/clima/internal/lookup"
	"ulascansenturk/clima/internal/sessions"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type SessionStoreTestSuite struct {
	suite.Suite
	store   *sessions.Store
	created int
	mu      sync.Mutex
}

func (s *SessionStoreTestSuite) factory() *lookup.WeatherLookup {
	s.mu.Lock()
	s.created++
	s.mu.Unlock()
	return lookup.NewWeatherLookup(nil, nil, time.Second)
}

func (s *SessionStoreTestSuite) newStore(ttl time.Duration) {
	s.created = 0
	s.store = sessions.NewStore(s.factory, ttl, 20*time.Millisecond)
}

func (s *SessionStoreTestSuite) TearDownTest() {
	s.store.Close()
}

func (s *SessionStoreTestSuite) TestGetUnknownSession() {
	s.newStore(time.Minute)

	l, ok := s.store.Get("nonexistent")
	s.False(ok)
	s.Nil(l)
}

func (s *SessionStoreTestSuite) TestGetOrCreateIssuesUUID() {
	s.newStore(time.Minute)

	id, l := s.store.GetOrCreate("")
	s.NotNil(l)
	_, err := uuid.Parse(id)
	s.NoError(err)
	s.Equal(1, s.store.Len())
}

func (s *SessionStoreTestSuite) TestGetOrCreateReusesSession() {
	s.newStore(time.Minute)

	id, first := s.store.GetOrCreate("")
	sameID, second := s.store.GetOrCreate(id)

	s.Equal(id, sameID)
	s.Same(first, second)
	s.Equal(1, s.created)
}

func (s *SessionStoreTestSuite) TestUnknownIDGetsFreshSession() {
	s.newStore(time.Minute)

	id, _ := s.store.GetOrCreate("forged-id")
	s.NotEqual("forged-id", id)
	s.Equal(1, s.store.Len())
}

func (s *SessionStoreTestSuite) TestSessionsAreIsolated() {
	s.newStore(time.Minute)

	id1, l1 := s.store.GetOrCreate("")
	id2, l2 := s.store.GetOrCreate("")

	s.NotEqual(id1, id2)
	s.NotSame(l1, l2)
	s.Equal(2, s.store.Len())
}

func (s *SessionStoreTestSuite) TestExpiration() {
	s.store = sessions.NewStore(s.factory, 50*time.Millisecond, time.Hour)

	id, l := s.store.GetOrCreate("")

	time.Sleep(75 * time.Millisecond)

	_, ok := s.store.Get(id)
	s.False(ok)

	_, err := l.Submit(context.Background(), lookup.Request{City: "Managua", CountryCode: "NI"})
	s.True(errors.Is(err, lookup.ErrClosed))
}

func (s *SessionStoreTestSuite) TestAccessExtendsExpiration() {
	s.store = sessions.NewStore(s.factory, 80*time.Millisecond, time.Hour)

	id, _ := s.store.GetOrCreate("")
	for i := 0; i < 4; i++ {
		time.Sleep(40 * time.Millisecond)
		_, ok := s.store.Get(id)
		s.Require().True(ok)
	}
}

func (s *SessionStoreTestSuite) TestAutomaticCleanup() {
	s.newStore(50 * time.Millisecond)

	_, l := s.store.GetOrCreate("")
	s.Equal(1, s.store.Len())

	s.Eventually(func() bool {
		return s.store.Len() == 0
	}, time.Second, 10*time.Millisecond)

	_, err := l.Submit(context.Background(), lookup.Request{City: "Lima", CountryCode: "PE"})
	s.True(errors.Is(err, lookup.ErrClosed))
}

func (s *SessionStoreTestSuite) TestCloseClosesSessions() {
	s.newStore(time.Minute)

	_, l := s.store.GetOrCreate("")
	s.store.Close()
	s.store.Close()

	s.Equal(0, s.store.Len())
	_, err := l.Submit(context.Background(), lookup.Request{City: "Lima", CountryCode: "PE"})
	s.True(errors.Is(err, lookup.ErrClosed))
}

func (s *SessionStoreTestSuite) TestConcurrentAccess() {
	s.newStore(time.Minute)

	id, expected := s.store.GetOrCreate("")
	iterations := 100

	done := make(chan bool)
	for i := 0; i < iterations; i++ {
		go func() {
			gotID, l := s.store.GetOrCreate(id)
			s.Equal(id, gotID)
			s.Same(expected, l)
			done <- true
		}()
	}

	for i := 0; i < iterations; i++ {
		<-done
	}

	s.Equal(1, s.store.Len())
}

func TestSessionStoreTestSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreTestSuite))
}
