package public

import "github.com/panaderia-next/internal/provider"

// Handler serves the storefront and customer-facing API.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
