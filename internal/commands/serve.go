package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"tasktrack/internal/api"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/logger"
	"tasktrack/internal/service"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd implements the serve command. It runs the HTTP API until the
// context is cancelled.
type ServeCmd struct {
	addr string
}

// SetAddr sets the listen address (for testing).
func (c *ServeCmd) SetAddr(addr string) {
	c.addr = addr
}

func (c *ServeCmd) Name() string       { return "serve" }
func (c *ServeCmd) Aliases() []string  { return nil }
func (c *ServeCmd) Synopsis() string   { return "Run the HTTP API" }
func (c *ServeCmd) Usage() string      { return "tasktrack serve [--addr <host:port>]" }
func (c *ServeCmd) NeedsService() bool { return true }

// LogFormat implements LogFormatter.
func (c *ServeCmd) LogFormat() logger.Format { return logger.FormatJSON }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "", "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	addr := c.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to listen on %s: %v\n", addr, err)
		return exitcode.BackendError
	}

	log := slog.Default().With("component", "server")
	server := &http.Server{
		Handler:           api.NewRouter(svc, log),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "listening on http://%s\n", listener.Addr())
	}
	log.Info("server starting", "addr", listener.Addr().String(), "backend", cfg.Backend)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(errOut, "error: server failed: %v\n", err)
			return exitcode.BackendError
		}
		return exitcode.Success
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(errOut, "error: shutdown failed: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
