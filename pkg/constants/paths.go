package constants

// Fixed infrastructure paths; the engagement API is wired in internal/router.
const (
	PathHealth = "/health"
	PathReady  = "/ready"
)
