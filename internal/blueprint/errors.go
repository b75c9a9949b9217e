package blueprint

import "errors"

// ErrNotTerminal indicates that the reply carries no fenced JSON block and is
// ordinary conversational text.
var ErrNotTerminal = errors.New("reply contains no terminal blueprint block")

// ErrUnclosedFence indicates that the opening fence marker is present but no
// closing fence follows it.
var ErrUnclosedFence = errors.New("blueprint block is missing its closing fence")

// ErrInvalidPayload indicates that the fenced text failed to parse as a
// Blueprint.
var ErrInvalidPayload = errors.New("blueprint block does not parse")
