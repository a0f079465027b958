package service

import "strings"

const (
	SessionHeader  = "x-session-id"
	DefaultSession = "default-session"
)

// SessionIdentity names the owner of a cart. It is client supplied and not authenticated.
type SessionIdentity struct {
	id string
}

func NewSessionIdentity(raw string) SessionIdentity {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultSession
	}
	return SessionIdentity{id: raw}
}

func (s SessionIdentity) String() string {
	if s.id == "" {
		return DefaultSession
	}
	return s.id
}
