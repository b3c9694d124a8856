package main

import "github.com/scholartools/scholar-mcp/internal/s2"

// Exit codes for CLI use.
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitNotFound     = 2 // Entity did not resolve upstream
	ExitAccessDenied = 3 // Missing/invalid API key or restricted resource
	ExitRateLimited  = 4 // Upstream rate limit exceeded
)

// exitCodeFor maps a classified client error to an exit code.
func exitCodeFor(err error) int {
	switch {
	case s2.IsNotFound(err):
		return ExitNotFound
	case s2.IsAccessDenied(err):
		return ExitAccessDenied
	case s2.IsRateLimited(err):
		return ExitRateLimited
	default:
		return ExitError
	}
}
