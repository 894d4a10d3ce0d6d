// Package agent provides the capability contract every pipeline step must
// satisfy, together with the concrete content-transformation agents.
//
// An agent binds a persona (system prompt) to a completion-capable client.
// Agents are stateless across invocations: their only state is the fixed
// configuration given at construction. Duplicating an agent yields an
// independent value with the same name and persona; the underlying client
// handle is shared by all duplicates, is read-only, and must be safe for
// concurrent use.
//
// Agents never retry their own failures. They translate collaborator errors
// into the package error taxonomy and return them to the pipeline.
package agent
