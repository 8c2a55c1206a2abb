// Package session holds the logged-in teacher for the duration of a request or CLI invocation.
package session

import (
	"context"
	"errors"
)

// ErrNoSession is returned when no teacher is logged in; callers should send the user back to login.
var ErrNoSession = errors.New("sessão expirada: faça login novamente")

type Session struct {
	TeacherID   int    `json:"professor_id" mapstructure:"professor_id"`
	TeacherName string `json:"professor_nome" mapstructure:"professor_nome"`
}

func (s Session) IsZero() bool {
	return s.TeacherID == 0
}

// Store persists a Session between invocations.
type Store interface {
	Set(s Session) error
	// Get returns ErrNoSession when the store is empty.
	Get() (Session, error)
	Clear() error
}

type ctxKey struct{}

func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok || s.IsZero() {
		return Session{}, ErrNoSession
	}
	return s, nil
}

// MemoryStore keeps the Session in memory.
type MemoryStore struct {
	s Session
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Set(s Session) error {
	m.s = s
	return nil
}

func (m *MemoryStore) Get() (Session, error) {
	if m.s.IsZero() {
		return Session{}, ErrNoSession
	}
	return m.s, nil
}

func (m *MemoryStore) Clear() error {
	m.s = Session{}
	return nil
}
