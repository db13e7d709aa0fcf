package web

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/agriscan/internal/scan"
)

// fakeClock lets tests move the store's notion of time.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClockedStore(ttl time.Duration, max int) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(ttl, max)
	s.now = clock.now
	return s, clock
}

func TestStore_CreateIssuesUUIDs(t *testing.T) {
	s := NewStore(0, 0)
	a := s.Create()
	b := s.Create()

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, s.Has(a.ID))
	assert.Equal(t, scan.StatusReady, a.Status)
	assert.Equal(t, 2, s.Len())
}

func TestStore_HasRejectsUnknownIDs(t *testing.T) {
	s := NewStore(0, 0)
	s.Create()

	assert.False(t, s.Has(""))
	assert.False(t, s.Has("attacker-chosen"))
	assert.False(t, s.Has(uuid.NewString()))
	assert.Equal(t, 1, s.Len())
}

func TestStore_GetReturnsSameSession(t *testing.T) {
	s := NewStore(0, 0)
	id := s.Create().ID
	assert.Equal(t, s.Get(id), s.Get(id))
	assert.Equal(t, 1, s.Len())
}

func TestStore_UpdateKeepsReturnedSessionOnError(t *testing.T) {
	s := NewStore(0, 0)
	id := s.Create().ID
	boom := errors.New("boom")
	got, err := s.Update(id, func(sess scan.Session) (scan.Session, error) {
		sess.LastError = "failed"
		return sess, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "failed", got.LastError)
	assert.Equal(t, "failed", s.Get(id).LastError)
}

func TestStore_UpdatesSerialize(t *testing.T) {
	s := NewStore(0, 0)
	id := s.Create().ID
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Update(id, func(sess scan.Session) (scan.Session, error) {
				sess.LastError += "x"
				return sess, nil
			})
		}()
	}
	wg.Wait()
	assert.Len(t, s.Get(id).LastError, 50)
}

func TestStore_IdleSessionsExpire(t *testing.T) {
	s, clock := newClockedStore(time.Hour, 0)
	idle := s.Create().ID
	clock.advance(40 * time.Minute)
	active := s.Create().ID
	clock.advance(30 * time.Minute)

	assert.False(t, s.Has(idle))
	assert.True(t, s.Has(active))

	clock.advance(2 * time.Hour)
	assert.Equal(t, 1, s.Sweep())
	assert.Zero(t, s.Len())
}

func TestStore_AccessKeepsSessionAlive(t *testing.T) {
	s, clock := newClockedStore(time.Hour, 0)
	id := s.Create().ID
	for i := 0; i < 3; i++ {
		clock.advance(50 * time.Minute)
		s.Get(id)
	}
	assert.True(t, s.Has(id))
}

func TestStore_CapEvictsLeastRecentlySeen(t *testing.T) {
	s, clock := newClockedStore(time.Hour, 3)
	first := s.Create().ID
	clock.advance(time.Second)
	second := s.Create().ID
	clock.advance(time.Second)
	third := s.Create().ID
	clock.advance(time.Second)
	s.Get(first)

	clock.advance(time.Second)
	fourth := s.Create().ID

	assert.Equal(t, 3, s.Len())
	assert.False(t, s.Has(second))
	assert.True(t, s.Has(first))
	assert.True(t, s.Has(third))
	assert.True(t, s.Has(fourth))
}
