package loop

import "errors"

var (
	// ErrStopped is returned once the loop has exited.
	ErrStopped = errors.New("loop: stopped")

	// ErrQueueFull is returned when an event is dropped because the queue is full.
	ErrQueueFull = errors.New("loop: event queue full")
)
