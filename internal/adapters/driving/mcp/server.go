package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// Name is the implementation name reported to clients.
	Name = "sercha-tagger"

	// Version is the MCP server version.
	Version = "0.1.0"

	// shutdownTimeout bounds how long an HTTP server waits for in-flight
	// tag_directory calls after its context is cancelled.
	shutdownTimeout = 30 * time.Second
)

// instructions tells clients how the tools relate.
const instructions = `Use tag_directory to extract ranked keywords from the PDF and EPUB files under a
directory, or rank_text for a single piece of text. When a run archive is configured,
list_runs and find_keyword query earlier runs and tagger://runs/{runId} holds their documents.`

// Server exposes the tagging and history services to MCP clients.
// One Server serves either a single stdio session or any number of HTTP sessions.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer validates ports and registers the tools and resources they support.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: Name, Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
	}
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves one client over stdin/stdout, the transport desktop assistants
// use when they launch the tagger as a subprocess. Logs must go to stderr.
// It blocks until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr. Every session shares
// the same services, so concurrent tag_directory calls run side by side.
// Cancelling ctx stops accepting connections and waits up to shutdownTimeout
// for running calls before returning.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		shutdownErr <- httpServer.Shutdown(shutdownCtx)
	}()

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownErr
}
