package xmap

import (
	"errors"
	"fmt"
)

// ErrInvalidFloor matches any *InvalidFloorError via errors.Is.
var ErrInvalidFloor = errors.New("invalid floor")

// ErrNotInitialized is returned by operations that need the renderer,
// scene and camera before InitView has run.
var ErrNotInitialized = errors.New("xmap: view not initialized")

// InvalidFloorError reports a floor index the attached model cannot resolve.
type InvalidFloorError struct {
	Floor int
}

func (e *InvalidFloorError) Error() string {
	return fmt.Sprintf("invalid floor %d", e.Floor)
}

// Is makes errors.Is(err, ErrInvalidFloor) true for every InvalidFloorError.
func (e *InvalidFloorError) Is(target error) bool {
	return target == ErrInvalidFloor
}
