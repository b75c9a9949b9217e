package blueprint

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	openingFence = "```json"
	closingFence = "```"
)

// Extract inspects an assistant reply for the terminal fenced JSON block and
// parses it into a Blueprint.
//
// A reply without the opening fence marker is ordinary conversation and yields
// ErrNotTerminal. When the marker is present, the text strictly between the
// first marker and the first subsequent closing fence is parsed; prose outside
// the fences is ignored. A missing closing fence yields ErrUnclosedFence; an
// unparsable payload yields an error wrapping ErrInvalidPayload. The first
// matching fence always wins, even if the marker appears mid-prose.
func Extract(reply string) (*Blueprint, error) {
	start := strings.Index(reply, openingFence)
	if start < 0 {
		return nil, ErrNotTerminal
	}

	payload := reply[start+len(openingFence):]
	end := strings.Index(payload, closingFence)
	if end < 0 {
		return nil, ErrUnclosedFence
	}
	payload = payload[:end]

	var bp Blueprint
	if err := json.Unmarshal([]byte(payload), &bp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	return &bp, nil
}
