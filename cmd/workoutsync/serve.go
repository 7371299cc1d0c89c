package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"tailscale.com/tsnet"

	"github.com/claude/workoutsync/internal/mcp"
	"github.com/claude/workoutsync/internal/server"
)

var cmdServe = &command{
	name:    "serve",
	summary: "run the compile/load preview API (on the tailnet when tailscale is enabled)",
	run: func(ctx context.Context, e *env, args []string) error {
		l, err := e.loader()
		if err != nil {
			return err
		}
		training, err := e.training(l)
		if err != nil {
			return err
		}
		srv := server.New(l, training, e.cfg.Server.APIKey, e.log)

		// Start server: tsnet or plain HTTP
		var listener net.Listener
		if e.cfg.Tailscale.Enabled {
			ts := &tsnet.Server{
				Hostname: e.cfg.Tailscale.Hostname,
				Dir:      e.cfg.Tailscale.StateDir,
			}
			if err := ts.Start(); err != nil {
				return fmt.Errorf("tsnet start: %w", err)
			}
			defer ts.Close()

			listener, err = ts.Listen("tcp", ":80")
			if err != nil {
				return fmt.Errorf("tsnet listen: %w", err)
			}
			e.log.Info("tsnet server starting", "hostname", e.cfg.Tailscale.Hostname)
		} else {
			addr := fmt.Sprintf("%s:%d", e.cfg.Server.Host, e.cfg.Server.Port)
			listener, err = net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			e.log.Info("server starting", "addr", addr)
		}

		httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}
		errc := make(chan error, 1)
		go func() {
			if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
			close(errc)
		}()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		e.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			e.log.Error("shutdown error", "error", err)
		}
		e.log.Info("server stopped")
		return nil
	},
}

var cmdMCP = &command{
	name:    "mcp",
	summary: "serve the compile_workout and training_load MCP tools over stdio",
	run: func(ctx context.Context, e *env, args []string) error {
		l, err := e.loader()
		if err != nil {
			return err
		}
		training, err := e.training(l)
		if err != nil {
			return err
		}
		return mcp.Serve(ctx, mcp.New(l, training, Version, e.log))
	},
}
