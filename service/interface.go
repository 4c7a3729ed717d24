package service

// Service defines the lifecycle interface for long-lived subsystems
// Services own resources such as the audio speaker or an HTTP listener
//
// Lifecycle:
//  1. Construction (via New* constructor)
//  2. Start() - acquire resources, launch goroutines
//  3. [runtime operation]
//  4. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Start begins service operation
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}
