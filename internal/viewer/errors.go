package viewer

import "fmt"

// InitError reports a fatal failure while bringing up the window,
// the GL context or the GPU resources.
type InitError struct {
	Stage string
	Err   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Stage, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
