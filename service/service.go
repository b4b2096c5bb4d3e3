// Package service runs the long-lived infrastructure around the game loop:
// the game-services platform and the audio output. Services are started in
// dependency order and stopped in reverse.
package service

// Service is one infrastructure subsystem
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) - configuration resolved by the caller
//  3. Start() - connect, launch goroutines
//  4. [frame loop]
//  5. Stop() - release resources; safe to call more than once
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init and Start first
	Dependencies() []string

	Init(args ...any) error
	Start() error
	Stop() error
}

// Optional is implemented by services whose failure to start leaves the game
// running without them
type Optional interface {
	Optional() bool
}
