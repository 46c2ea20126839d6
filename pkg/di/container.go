// Package di provides a minimal dependency injection container handing
// out the HTTP control plane's server factory, so cmd/staabler's serve
// command (and its tests) can substitute a fake starter without
// depending on httpapi directly.
package di

import (
	"github.com/idleman/staabler/pkg/httpapi"
	"github.com/idleman/staabler/pkg/logstream"
)

// ServerStarter starts the HTTP control plane for an opened stream.
type ServerStarter interface {
	StartServer(stream *logstream.Stream, report *logstream.RecoveryReport, config httpapi.ServerConfig) error
}

// ServerFactory creates ServerStarters.
type ServerFactory interface {
	CreateServerStarter() ServerStarter
}

// DefaultServerFactory is the production ServerFactory, wired to
// httpapi.StartServer.
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory.
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter.
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &defaultServerStarter{}
}

type defaultServerStarter struct{}

func (s *defaultServerStarter) StartServer(stream *logstream.Stream, report *logstream.RecoveryReport, config httpapi.ServerConfig) error {
	return httpapi.StartServer(stream, report, config)
}

// Container holds the dependencies cmd/staabler wires together.
type Container struct {
	serverFactory ServerFactory
}

// NewContainer creates a new dependency injection container.
func NewContainer() *Container {
	return &Container{
		serverFactory: NewServerFactory(),
	}
}

// GetServerFactory returns the server factory.
func (c *Container) GetServerFactory() ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing).
func (c *Container) SetServerFactory(factory ServerFactory) {
	c.serverFactory = factory
}
