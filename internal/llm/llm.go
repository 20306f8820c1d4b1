// Package llm provides the completion backends and the priority router that
// dispatches text-generation requests between them.
package llm

import (
	"context"
	"fmt"
)

// Backend is the capability interface every completion backend implements.
type Backend interface {
	// Name identifies the backend in logs and spans.
	Name() string
	// Generate produces raw text for the prompt under the given system
	// instruction. Callers requesting structured output embed the schema in
	// the instruction and enforce it themselves.
	Generate(ctx context.Context, prompt, instruction string) (string, error)
}

// Completer is the narrow interface stages use to issue completion requests.
// *Router implements it.
type Completer interface {
	Run(ctx context.Context, prompt, instruction string, priority bool) (string, error)
}

// BackendError wraps a terminal backend failure.
type BackendError struct {
	Backend string
	Cause   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("completion backend %s failed: %v", e.Backend, e.Cause)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}
