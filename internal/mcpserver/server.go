// Package mcpserver exposes the raga explorer as MCP tools served over
// SSE/HTTP, so that assistants can ask for graha bhedam results directly.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/graha/internal/explore"
)

// Version is reported to MCP clients during initialization.
const Version = "0.1.0"

// Server is the in-process MCP server. Every tool call reads the explorer's
// current catalog, so a reload is visible to the next call.
type Server struct {
	explorer *explore.Explorer
	mcp      *mcp.Server
	addr     string
	srv      *http.Server
	ln       net.Listener
}

// NewServer creates a server for x that will listen on addr (host:port; a
// zero port picks a free one).
func NewServer(x *explore.Explorer, addr string) *Server {
	s := &Server{
		explorer: x,
		mcp: mcp.NewServer(
			&mcp.Implementation{Name: "graha", Version: Version},
			nil,
		),
		addr: addr,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.registerRotationTools()
	s.registerCatalogTools()
}

// Start begins serving over SSE/HTTP. It returns once the listener is bound.
func (s *Server) Start(ctx context.Context) error {
	handler := mcp.NewSSEHandler(func(_ *http.Request) *mcp.Server {
		return s.mcp
	}, nil)

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("mcpserver: listen on %s: %w", s.addr, err)
	}
	s.ln = ln
	s.srv = &http.Server{Handler: handler}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "mcpserver: serve error: %v\n", err)
		}
	}()
	return nil
}

// Addr returns the listener address, useful for tests with port 0.
func (s *Server) Addr() net.Addr {
	if s.ln != nil {
		return s.ln.Addr()
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
