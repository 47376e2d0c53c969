package completion

import (
	"context"
	"fmt"

	"wellness/planner/internal/config"
)

const (
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
)

// Router dispatches a request to the client registered for its provider.
type Router struct {
	clients map[string]Invoker
}

func NewRouter(clients map[string]Invoker) *Router {
	return &Router{clients: clients}
}

// NewRouterFromConfig registers the OpenAI and Groq clients.
func NewRouterFromConfig(cfg config.CompletionConfig) *Router {
	return NewRouter(map[string]Invoker{
		ProviderOpenAI: NewClient(ProviderOpenAI, cfg.OpenAI),
		ProviderGroq:   NewClient(ProviderGroq, cfg.Groq),
	})
}

func (r *Router) Complete(ctx context.Context, req Request) (string, error) {
	c, ok := r.clients[req.Provider]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, req.Provider)
	}
	return c.Complete(ctx, req)
}
