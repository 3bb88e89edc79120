package wizard

import "errors"

// ValidationError blocks a transition before any external call is
// made. It is always user-correctable.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ErrBusy is returned when an advance or reset arrives while another
// action is still in flight. One action per session at a time.
var ErrBusy = errors.New("another action is already in flight")
