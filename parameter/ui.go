package parameter

// Sandbox Maze
const (
	// SandboxWidth, SandboxHeight size the generated maze (rounded down to odd)
	SandboxWidth  = 61
	SandboxHeight = 23

	// SandboxBraiding opens loops so the agent has alternatives
	SandboxBraiding = 0.35
)

// Sandbox Timing
const (
	// SandboxTickMillis is the simulation and redraw period
	SandboxTickMillis = 50

	// SandboxAgentStride is ticks between agent steps
	SandboxAgentStride = 2
)

// Layout & Margins
const (
	// TopMargin for the status line
	TopMargin = 1

	// BottomMargin for the key help line
	BottomMargin = 1
)
