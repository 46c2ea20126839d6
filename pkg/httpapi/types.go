// Package httpapi exposes the append-only record stream's diagnostic
// surface over HTTP: health, stats, and an explain dump, plus a
// Prometheus /metrics endpoint. It carries no key-value CRUD surface;
// that's outside this record/transport core's domain.
package httpapi

// APIResponse is the standard JSON envelope for every handler in this
// package.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the HTTP control plane.
type ServerConfig struct {
	Port int
	Bind string
}
