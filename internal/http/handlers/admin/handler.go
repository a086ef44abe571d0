package admin

import "github.com/panaderia-next/internal/provider"

// Handler serves the staff-facing admin API.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
