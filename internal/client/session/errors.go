package session

import "errors"

var (
	ErrNoStore            = errors.New("session store is required")
	ErrNotInitialized     = errors.New("session not initialized")
	ErrAlreadyInitialized = errors.New("session already initialized")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrStorageRead        = errors.New("session storage read failed")
	ErrStorageWrite       = errors.New("session storage write failed")
)
