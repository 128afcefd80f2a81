package monitor

import "errors"

var (
	// ErrSurfaceUnavailable is returned by the constructors when no drawing
	// surface can be obtained. The engine must not be used.
	ErrSurfaceUnavailable = errors.New("wheelmon: cannot get drawing surface")

	// ErrInvalidMode is returned by Trigger when manual mode is off.
	ErrInvalidMode = errors.New("wheelmon: Trigger works only when manual mode is enabled")
)
