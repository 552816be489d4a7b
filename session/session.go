package session

import (
	"sync"
	"time"

	"banquet-admin/model"

	"github.com/google/uuid"
)

// Session is the server-side record of a signed-in user. It lives from login
// until logout, expiry or server restart.
type Session struct {
	Id        string
	Login     string
	Name      string
	Role      string
	Token     string
	StartedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type Store struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore keeps sessions for ttl after login, matching the token lifetime.
// A zero ttl keeps them until logout.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

func (s *Store) Start(user model.UserData) Session {
	now := s.now()
	sess := &Session{
		Id:        uuid.NewString(),
		Login:     user.Login,
		Name:      user.Name,
		Role:      user.Role,
		StartedAt: now,
	}
	if s.ttl > 0 {
		sess.ExpiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	s.sessions[sess.Id] = sess
	s.mu.Unlock()

	return *sess
}

// SetToken records the token issued for the session; it is forwarded as-is to
// the booking API.
func (s *Store) SetToken(id, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.Expired(s.now()) {
		return false
	}
	sess.Token = token
	return true
}

// Get returns live sessions only; an expired one is reported as absent even
// before Sweep removes it.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || sess.Expired(s.now()) {
		return Session{}, false
	}
	return *sess, true
}

func (s *Store) End(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Sweep removes expired sessions and returns their ids.
func (s *Store) Sweep() []string {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []string
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			expired = append(expired, id)
		}
	}
	return expired
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
