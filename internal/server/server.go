package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/moviesrv/moviesrv/internal/config"
)

// Server streams files below a root directory over HTTP. Construct with
// New; the zero value is not usable.
type Server struct {
	root    string
	console io.Writer // throughput readout sink, stdout in production

	httpServer *http.Server
	listener   net.Listener
}

// New builds a server for the given media directory.
func New(root string) *Server {
	s := &Server{
		root:    root,
		console: os.Stdout,
	}
	s.httpServer = &http.Server{
		Handler:     s,
		ReadTimeout: 10 * time.Second,
		// Streaming responses run as long as the media plays; a write
		// deadline would cut long movies off mid-play.
		WriteTimeout:   0,
		IdleTimeout:    30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	return s
}

// Listen binds the listening socket. Kept separate from Serve so a bind
// failure surfaces synchronously at startup.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.Port))
	if err != nil {
		return fmt.Errorf("failed to bind port %d: %w", config.Port, err)
	}
	s.listener = ln
	return nil
}

// Serve accepts connections on the bound socket until Shutdown. Returns
// nil after a clean shutdown.
func (s *Server) Serve() error {
	if err := s.httpServer.Serve(s.listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight responses
// up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
