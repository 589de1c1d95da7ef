package http

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/formava/formava-lms/internal/content"
	"github.com/formava/formava-lms/internal/evaluation"
)

// ActiveSession ties an in-memory evaluation session to its owner and scope.
type ActiveSession struct {
	ID      string
	UserID  string
	Scope   content.Scope
	Session *evaluation.Session
	Grader  evaluation.Grader

	lastTouch time.Time
}

// SessionRegistry holds live evaluation sessions. Sessions are ephemeral:
// abandoning one leaves nothing behind but a map entry, which the sweeper
// clears after the idle TTL. The registry lock also serializes access to any
// one session, which otherwise does no locking of its own.
type SessionRegistry struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*ActiveSession
}

var ErrSessionNotFound = errors.New("session not found")

func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{ttl: ttl, sessions: map[string]*ActiveSession{}}
}

func (r *SessionRegistry) Put(as *ActiveSession) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	as.ID = uuid.NewString()
	as.lastTouch = time.Now()
	r.sessions[as.ID] = as
	return as.ID
}

// With runs fn against the session while holding the registry lock. Only the
// owning user can touch a session.
func (r *SessionRegistry) With(id, userID string, fn func(*ActiveSession) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	as, ok := r.sessions[id]
	if !ok || as.UserID != userID {
		return ErrSessionNotFound
	}
	as.lastTouch = time.Now()
	return fn(as)
}

func (r *SessionRegistry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Sweep drops sessions idle longer than the TTL and reports how many went.
func (r *SessionRegistry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, as := range r.sessions {
		if now.Sub(as.lastTouch) > r.ttl {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}
