package llm

import (
	"context"

	"go.uber.org/zap"
)

// Router dispatches completion requests between a primary (cloud) and a
// fallback (local) backend. Primary failure is always recoverable by falling
// back; only a fallback failure is terminal.
type Router struct {
	primary  Backend
	fallback Backend
	logger   *zap.Logger
}

// NewRouter creates a router. primary may be nil, in which case every
// request goes straight to the fallback backend.
func NewRouter(primary, fallback Backend, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{primary: primary, fallback: fallback, logger: logger}
}

// Run executes the request. When priority is set the primary backend is
// attempted first and any failure (including throttling) falls back to the
// local backend with the same prompt. Non-priority requests go straight to
// the local backend.
func (r *Router) Run(ctx context.Context, prompt, instruction string, priority bool) (string, error) {
	if priority && r.primary != nil {
		text, err := r.primary.Generate(ctx, prompt, instruction)
		if err == nil {
			return text, nil
		}
		r.logger.Warn("primary backend failed, falling back",
			zap.String("backend", r.primary.Name()),
			zap.Error(err))
	}

	text, err := r.fallback.Generate(ctx, prompt, instruction)
	if err != nil {
		return "", &BackendError{Backend: r.fallback.Name(), Cause: err}
	}
	return text, nil
}
