package memory

import (
	"time"

	"inspire-it-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds per-browser session state. Sessions expire after
// an hour of inactivity; there is no persistence across sessions.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

// GetOrCreate returns the live session for the ID, creating and seeding a
// fresh one when absent. Fetching also refreshes the TTL.
func (r *SessionRepository) GetOrCreate(sessionID string) *store.Session {
	if sess, found := r.Get(sessionID); found {
		sess.EnsureDefaults()
		r.Save(sess)
		return sess
	}
	sess := &store.Session{ID: sessionID}
	sess.EnsureDefaults()
	r.Save(sess)
	return sess
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
