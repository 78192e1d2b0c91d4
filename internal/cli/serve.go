package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/banna-commits/winnow/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only status HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openHistory(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run history unavailable (%v), /api/runs disabled\n", err)
		db = nil
	} else {
		defer db.Close()
	}

	srv := server.New(cfg, db, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "winnow serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  memory: %s\n", cfg.Memory.Dir)
		if db != nil {
			fmt.Fprintf(os.Stderr, "  history: %s\n", db.Path)
		}
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
