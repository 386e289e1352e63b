package weights

import (
	"errors"
	"fmt"
)

// ErrTopologyMismatch reports that a weight file was written for a different
// topology than the network it is being loaded into.
var ErrTopologyMismatch = errors.New("weight file topology does not match network topology")

// TagError carries both topology tags of a mismatch. It unwraps to
// ErrTopologyMismatch.
type TagError struct {
	File    string // tag read from the stream
	Network string // canonical descriptor of the receiving network
}

// Error implements the error interface.
func (e *TagError) Error() string {
	return fmt.Sprintf("weights: file topology %q, network topology %q: %v", e.File, e.Network, ErrTopologyMismatch)
}

// Unwrap lets errors.Is match ErrTopologyMismatch.
func (e *TagError) Unwrap() error { return ErrTopologyMismatch }
