package conversation

import "errors"

// ErrSessionExists indicates that the user already has an open session.
var ErrSessionExists = errors.New("a session already exists for this user")

// ErrNoSession indicates that the user has no open session.
var ErrNoSession = errors.New("no session exists for this user")
