package parameter

// Path Service
const (
	// ServerAddr is the default listen address of the path service
	ServerAddr = ":8080"

	// ServerBudgetCap bounds per-request max_expansions overrides
	ServerBudgetCap = 20000

	// ServerShutdownSeconds is how long in-flight requests may drain on stop
	ServerShutdownSeconds = 5
)

// ServerCoordLimit bounds |x| and |y| of requested cells so cost sums cannot overflow
const ServerCoordLimit = 1 << 30
