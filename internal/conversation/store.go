// Package conversation holds in-memory dialogue sessions keyed by user ID.
//
// A session lives from the moment a user starts configuring a guild until a
// final blueprint is extracted or the conversation fails. Nothing is persisted;
// a process restart drops every open session.
package conversation

import (
	"sync"

	"architect/internal/brain"
)

// Session is one user's open dialogue and the guild it will reconfigure.
type Session struct {
	// UserID is the Discord user ID this session belongs to.
	UserID string

	// GuildID is the guild to rebuild, fixed at session creation.
	GuildID string

	// messages is the ordered turn history. messages[0] is always the
	// system instruction turn.
	messages []brain.Message
}

// Store is a process-wide map from user ID to an open Session.
// All methods are safe for concurrent use, but callers must not process two
// turns for the same user concurrently; turn ordering within a session is
// the caller's responsibility.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Start opens a new session for the given user.
// ErrSessionExists is returned when the user already has one; the existing
// session is left untouched.
func (s *Store) Start(userID, guildID, instruction string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[userID]; ok {
		return ErrSessionExists
	}

	s.sessions[userID] = &Session{
		UserID:  userID,
		GuildID: guildID,
		messages: []brain.Message{
			{Role: brain.RoleSystem, Content: instruction},
		},
	}
	return nil
}

// Exists reports whether the given user has an open session.
func (s *Store) Exists(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sessions[userID]
	return ok
}

// GuildID returns the guild bound to the user's session.
func (s *Store) GuildID(userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return "", ErrNoSession
	}
	return sess.GuildID, nil
}

// Append adds a turn to the user's session history.
func (s *Store) Append(userID string, msg brain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return ErrNoSession
	}

	sess.messages = append(sess.messages, msg)
	return nil
}

// History returns a copy of the user's ordered turn history.
func (s *Store) History(userID string) ([]brain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}

	history := make([]brain.Message, len(sess.messages))
	copy(history, sess.messages)
	return history, nil
}

// End removes the user's session. Ending an absent session is a no-op.
func (s *Store) End(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}
