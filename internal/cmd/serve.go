package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/colorparser/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the color conversions over HTTP",
	Long: `Serve the conversions as a JSON API:

  GET /convert?value=...&to=hex|rgb|hsl
  GET /convert/{op}?value=...      (op: hex-to-rgb, rgb-to-hsl, ...)
  GET /palette?value=...           (requires --palette)
  GET /swatch?value=...&size=...   (PNG)
  GET /status, /healthz`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address (host:port)")
	serveCmd.Flags().String("palette", "", "Palette database written by 'batch --format sqlite'")
	serveCmd.Flags().String("cache-control", "public, max-age=86400", "Cache-Control header for conversion responses")
	serveCmd.Flags().Duration("shutdown-timeout", 5*time.Second, "Graceful shutdown timeout")

	mustBind(serveCmd,
		[2]string{"serve.addr", "addr"},
		[2]string{"serve.palette", "palette"},
		[2]string{"serve.cache_control", "cache-control"},
		[2]string{"serve.shutdown_timeout", "shutdown-timeout"},
	)
}

func runServe(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	addr := viper.GetString("serve.addr")
	palettePath := viper.GetString("serve.palette")
	shutdownTimeout := viper.GetDuration("serve.shutdown_timeout")

	h, err := server.NewConvertHandler(server.Config{
		PalettePath:  palettePath,
		CacheControl: viper.GetString("serve.cache_control"),
	}, logger)
	if err != nil {
		return err
	}
	defer h.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{Addr: addr, Handler: h.Handler(), ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("conversion server listening", "addr", addr, "palette", palettePath)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "converted", h.Status().TotalConverted, "failed", h.Status().TotalFailed)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
