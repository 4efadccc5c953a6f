package mcpserver

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ajilantony/copilot-agentops-mcp/internal/catalog"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/logging"
)

// ServerName is the implementation name announced during initialization.
const ServerName = "copilot-agentops-mcp"

const instructions = `Search and install GitHub Copilot customization artifacts
(chat modes, instructions, prompts, agents) and collections from the remote
catalog into a repository's .github directory.

Always show search results to the user and get explicit confirmation before
calling install_artifact. Never set overwrite without the user's consent.`

// shutdownTimeout bounds the graceful stop of the HTTP transport.
const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Version is announced to clients.
	Version string
	// Logger receives tool and transport logs. Never point it at stdout
	// when serving over stdio.
	Logger *slog.Logger
}

// Server wires catalog operations to MCP tools.
type Server struct {
	catalog *catalog.Service
	server  *mcp.Server
	logger  *slog.Logger
}

// New creates a Server with every tool registered.
func New(svc *catalog.Service, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscard()
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		catalog: svc,
		server: mcp.NewServer(
			&mcp.Implementation{Name: ServerName, Version: version},
			&mcp.ServerOptions{Instructions: instructions},
		),
		logger: logger,
	}
	s.registerTools()
	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Run serves a single session over transport until the client disconnects
// or ctx is cancelled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	if err := s.server.Run(ctx, transport); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "mcp session ended")
	}
	return nil
}

// Handler returns the streamable HTTP handler. All sessions share this
// server's tools and catalog.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// ServeHTTP listens on addr and serves the streamable HTTP transport until
// ctx is cancelled.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", addr)
	}
	return s.serveListener(ctx, ln)
}

func (s *Server) serveListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server starting", "transport", "http", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http transport")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "stopping http transport")
	}
	s.logger.Info("mcp server stopped")
	return nil
}
