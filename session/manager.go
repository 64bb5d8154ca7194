package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const CookieName = "menu_session"

// Manager maps the session cookie to a Store entry.
type Manager struct {
	store  Store
	ttl    time.Duration
	secure bool
	log    zerolog.Logger
}

func NewManager(store Store, ttl time.Duration, secure bool, log zerolog.Logger) *Manager {
	return &Manager{store: store, ttl: ttl, secure: secure, log: log}
}

// Load returns the session for r, or a fresh one when the cookie is missing,
// expired or the store fails.
func (m *Manager) Load(r *http.Request) *Session {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return &Session{id: uuid.NewString()}
	}
	data, err := m.store.Get(r.Context(), c.Value)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.log.Warn().Err(err).Msg("load session")
		}
		return &Session{id: uuid.NewString()}
	}
	return &Session{id: c.Value, stored: true, data: data}
}

// Renew moves the session to a new id; the old entry is dropped on Save.
func (m *Manager) Renew(s *Session) {
	if s.oldID == "" {
		s.oldID = s.id
	}
	s.id = uuid.NewString()
}

// Save stores s and refreshes the cookie. A new session without a login flag
// or flashes is not stored and gets no cookie.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, s *Session) error {
	if s.empty() {
		return nil
	}
	if s.oldID != "" {
		if err := m.store.Delete(r.Context(), s.oldID); err != nil {
			m.log.Warn().Err(err).Msg("drop renewed session")
		}
		s.oldID = ""
	}
	if err := m.store.Put(r.Context(), s.id, s.data); err != nil {
		return err
	}
	s.stored = true
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.id,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
