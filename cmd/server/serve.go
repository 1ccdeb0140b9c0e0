package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/limchang/cafe-test/internal/history"
	"github.com/limchang/cafe-test/internal/middleware"
	"github.com/limchang/cafe-test/internal/order"
	"github.com/limchang/cafe-test/internal/service"
	"github.com/limchang/cafe-test/internal/settings"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Connect server and the static frontend",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	prefs := settings.New(store)
	if err := prefs.Load(ctx); err != nil {
		return err
	}
	log := history.New(store)
	if err := log.Load(ctx); err != nil {
		return err
	}

	board := order.NewBoard(order.NewMenu(), order.Config{
		UndoWindow:   cfg.GetUndoWindow(),
		NoticeTTL:    cfg.GetNoticeTTL(),
		HighlightTTL: cfg.GetHighlightTTL(),
	})
	defer board.Close()
	board.AddGroup()

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(service.NewOrderServiceHandler(service.NewOrderService(board, prefs), interceptors))
	mux.Handle(service.NewHistoryServiceHandler(service.NewHistoryService(log, board, prefs), interceptors))
	mux.Handle(service.NewSettingsServiceHandler(service.NewSettingsService(prefs, board.Menu()), interceptors))

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	staticDir, err := filepath.Abs(cfg.Server.StaticPath)
	if err != nil {
		return fmt.Errorf("failed to resolve static path: %w", err)
	}
	slog.Info("Serving static files", "path", staticDir)
	mux.HandleFunc("/", staticHandler(staticDir))

	handler := middleware.Metrics(middleware.RequestLogging(middleware.CORS(mux)))

	// h2c serves HTTP/2 without TLS for Connect clients.
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

// staticHandler serves the frontend. Unknown paths fall back to index.html.
func staticHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/cafesync.v1.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	}
}
