package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantumrishi/rishi/internal/chat"
	"github.com/quantumrishi/rishi/internal/httpapi"
	"github.com/quantumrishi/rishi/internal/plan"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the plan and chat HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, logConsole)
		if err != nil {
			return err
		}
		defer rt.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			rt.cfg.Addr = addr
		}

		chatCfg := chat.DefaultConfig()
		chatCfg.TTL = rt.cfg.ChatSessionTTL
		chats := chat.NewManager(rt.provider, chatCfg, rt.log)
		plans := plan.NewService(rt.provider, plan.DefaultConfig())

		srv := &http.Server{
			Addr:        rt.cfg.Addr,
			Handler:     httpapi.NewServer(plans, chats, rt.log).WithOriginPatterns(rt.cfg.WSOrigins...).Routes(),
			ReadTimeout: 30 * time.Second,
			// Chat replies stream over SSE, so writes are not bounded.
			WriteTimeout: 0,
			IdleTimeout:  120 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if chatCfg.TTL > 0 {
			go chats.Run(ctx, chatCfg.TTL/2)
		}

		errCh := make(chan error, 1)
		go func() {
			rt.log.Info("server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}
		stop()

		rt.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		rt.log.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides RISHI_ADDR)")
}
