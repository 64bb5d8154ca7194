// Package session keeps the per-browser admin login flag and flash messages.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Store for an unknown or expired session id.
var ErrNotFound = errors.New("session not found")

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Data is the state stored for one session id.
type Data struct {
	LoggedIn bool    `json:"logged_in"`
	Flashes  []Flash `json:"flashes,omitempty"`
}

// Store persists session data by id.
type Store interface {
	Get(ctx context.Context, id string) (Data, error)
	Put(ctx context.Context, id string, data Data) error
	Delete(ctx context.Context, id string) error
}

// Session is the request-scoped view of a stored session.
type Session struct {
	id    string
	oldID string
	// stored is set when the session was read from the Store.
	stored bool
	data   Data
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) LoggedIn() bool {
	return s.data.LoggedIn
}

func (s *Session) SetLoggedIn(v bool) {
	s.data.LoggedIn = v
}

func (s *Session) AddFlash(category, message string) {
	s.data.Flashes = append(s.data.Flashes, Flash{Category: category, Message: message})
}

// empty reports whether s carries nothing worth persisting.
func (s *Session) empty() bool {
	return !s.stored && s.oldID == "" && !s.data.LoggedIn && len(s.data.Flashes) == 0
}

// PopFlashes returns the queued flashes and clears the queue.
func (s *Session) PopFlashes() []Flash {
	f := s.data.Flashes
	s.data.Flashes = nil
	return f
}
