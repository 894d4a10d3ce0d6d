// Package pipeline provides an ordered, fallible chain of content agents.
//
// The pipeline package offers a convenient way to transform a query using a
// series of agents. Each agent in the chain produces an output from the
// previous agent's output, so execution is inherently serial: step i+1 never
// observes any state until step i has fully completed.
//
// The pipeline stops on the first encountered error. The returned error
// identifies the failing step by index and name and carries the history
// accumulated so far, so callers can inspect partial results.
//
// Every run operates on its own ExecutionState; a single Pipeline value may
// serve concurrent runs as long as the configured options and the agents'
// client handles are safe for concurrent use.
package pipeline
