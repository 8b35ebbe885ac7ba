package session

import (
	"github.com/dmitrijs2005/campushub/internal/client/models"
)

// Status is the coarse session state consumed by the route guard.
type Status int

const (
	// StatusLoading means the stored session has not been read yet.
	StatusLoading Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Snapshot is a consistent, detached copy of the session state.
type Snapshot struct {
	Status Status

	// User is nil unless Status is StatusAuthenticated.
	User *models.User

	// Busy is true while a mutation is talking to the store.
	Busy bool
}

// IsAuthenticated reports whether a user is signed in.
func (s Snapshot) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated && s.User != nil
}
