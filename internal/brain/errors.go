package brain

import "errors"

// ErrEmptyAPIKey indicates that no API key was provided.
var ErrEmptyAPIKey = errors.New("API key must be set")

// ErrNoCompletion indicates that the API returned no choices.
var ErrNoCompletion = errors.New("no completion returned")
